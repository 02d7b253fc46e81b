package curve25519

import (
	"sync"

	"github.com/AlexanderYastrebov/curve25519/field"
	fasthex "github.com/tmthrgd/go-hex"
)

// feFromHex returns the field element encoded by the 64-character
// little-endian hex string s. It panics on malformed input.
func feFromHex(s string) *field.Element {
	v, err := new(field.Element).SetBytes(fasthex.MustDecodeString(s))
	if err != nil {
		panic(err)
	}
	return v
}

var (
	feOne = new(field.Element).One()

	// edwardsD is d = -121665/121666.
	edwardsD = feFromHex("a3785913ca4deb75abd841414d0a700098e879777940c78c73fe6f2bee6c0352")
	// edwardsD2 is 2*d.
	edwardsD2 = feFromHex("59f1b226949bd6eb56b183829a14e00030d1f3eef2808e19e7fcdf56dcd90624")

	// feMinusOne is p - 1.
	feMinusOne = feFromHex("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	// sqrtM1 is the non-negative square root of -1.
	sqrtM1 = feFromHex("b0a00e4a271beec478e42fad0618432fa7d7fb3d99004d2b0bdfc14f8024832b")

	// invSqrtAMinusD is 1/sqrt(a-d) with a = -1.
	invSqrtAMinusD = feFromHex("ea405d80aafdc899be72415a17162f9d40d801fe917bc216a2fcafcf05896c78")
	// sqrtADMinusOne is sqrt(a*d - 1).
	sqrtADMinusOne = feFromHex("1b2e7b49a0f6977ebd54781b0c8e9daffdd1f531c9fc3c0fac48832bbf316937")
	// oneMinusDSq is 1 - d^2.
	oneMinusDSq = feFromHex("76c15f94c1097ce20f355ecd38a1812ce4df70beddab9499d7e0b3b2a8729002")
	// dMinusOneSq is (d - 1)^2.
	dMinusOneSq = feFromHex("204ded44aa5aad3199191eb02c4a9ed2eb4e9b522fd3dc4c41226cf67ab36859")

	// montgomeryA is the coefficient A = 486662 of the Montgomery form
	// v^2 = u^3 + A*u^2 + u.
	montgomeryA = new(field.Element).Mult32(feOne, 486662)
	// montgomeryAPlus24 is (A + 2)/4, the ladder constant.
	montgomeryAPlus24 uint32 = 121666
)

// generatorBytes is the compressed Edwards basepoint, with y = 4/5.
var generatorBytes = CompressedEdwardsY{
	0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
}

var generator = mustDecompress(&generatorBytes)

// eightTorsion lists the eight points of the torsion subgroup E[8], with
// eightTorsion[i] = i * eightTorsion[1]. Even indices form E[4].
var eightTorsion = [8]*EdwardsPoint{
	mustDecompressHex("0100000000000000000000000000000000000000000000000000000000000000"),
	mustDecompressHex("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a"),
	mustDecompressHex("0000000000000000000000000000000000000000000000000000000000000080"),
	mustDecompressHex("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05"),
	mustDecompressHex("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"),
	mustDecompressHex("26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc85"),
	mustDecompressHex("0000000000000000000000000000000000000000000000000000000000000000"),
	mustDecompressHex("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac03fa"),
}

func mustDecompress(c *CompressedEdwardsY) *EdwardsPoint {
	p, err := c.Decompress()
	if err != nil {
		panic(err)
	}
	return p
}

func mustDecompressHex(s string) *EdwardsPoint {
	var c CompressedEdwardsY
	copy(c[:], fasthex.MustDecodeString(s))
	return mustDecompress(&c)
}

// generatorTable is the radix-16 table of the basepoint used by
// ScalarBaseMult.
var generatorTable = sync.OnceValue(func() *EdwardsBasepointTable {
	return NewEdwardsBasepointTable(generator, 4)
})

// generatorNafTable holds the odd multiples B, 3B, ..., 127B of the
// basepoint for variable-time double-base multiplication.
var generatorNafTable = sync.OnceValue(func() *nafLookupTable8 {
	t := new(nafLookupTable8)
	t.FromExtended(generator)
	return t
})
