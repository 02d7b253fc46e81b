package curve25519

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/AlexanderYastrebov/curve25519/field"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
	"pgregory.net/rapid"
)

var groupOrder, _ = new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

func decodeHex(s string) []byte {
	return fasthex.MustDecodeString(s)
}

func scalarFromUint64(n uint64) *Scalar {
	return new(Scalar).SetUint64(n)
}

// scalarFromBigInt returns n mod l.
func scalarFromBigInt(n *big.Int) *Scalar {
	var buf [64]byte
	copy(buf[:], bigIntBytes(new(big.Int).Mod(n, groupOrder)))

	s, err := new(Scalar).SetUniformBytes(buf[:])
	if err != nil {
		panic(err)
	}
	return s
}

func scalarToBigInt(s *Scalar) *big.Int {
	return new(big.Int).SetBytes(reverse(s.Bytes()))
}

func randomScalar(t testing.TB) *Scalar {
	s, err := new(Scalar).SetRandom(rand.Reader)
	require.NoError(t, err)
	return s
}

func randomScalars(t testing.TB, n int) []*Scalar {
	out := make([]*Scalar, n)
	for i := range out {
		out[i] = randomScalar(t)
	}
	return out
}

func randomPoints(t testing.TB, n int) []*EdwardsPoint {
	out := make([]*EdwardsPoint, n)
	for i := range out {
		out[i] = new(EdwardsPoint).ScalarBaseMult(randomScalar(t))
	}
	return out
}

func randUint64() uint64 {
	var num uint64
	err := binary.Read(rand.Reader, binary.NativeEndian, &num)
	if err != nil {
		panic(err)
	}
	return num
}

func drawScalar(t *rapid.T, label string) *Scalar {
	b := rapid.SliceOfN(rapid.Byte(), 64, 64).Draw(t, label)
	s, err := new(Scalar).SetUniformBytes(b)
	if err != nil {
		panic(err)
	}
	return s
}

func fieldElementFromUint64(n uint64) *field.Element {
	var nb [8]byte
	binary.LittleEndian.PutUint64(nb[:], n)
	return fieldElementFromBytes(nb[:])
}

func fieldElementFromString(s string) *field.Element {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid fieldElement string")
	}
	return fieldElementFromBytes(bigIntBytes(n))
}

func fieldElementFromBytes(x []byte) *field.Element {
	var buf [32]byte
	copy(buf[:], x)
	fe, err := new(field.Element).SetBytes(buf[:])
	if err != nil {
		panic(err)
	}
	return fe
}

func bigIntBytes(n *big.Int) []byte {
	if n == nil || n.Sign() < 0 {
		panic("n must be non-negative")
	}
	if n.BitLen() > 255 {
		panic("n must be less than 2^255")
	}
	var buf [32]byte
	return reverse(n.FillBytes(buf[:]))
}

func reverse(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// refScalar returns the filippo.io/edwards25519 scalar equal to s.
func refScalar(s *Scalar) *edwards25519.Scalar {
	r, err := edwards25519.NewScalar().SetCanonicalBytes(s.Bytes())
	if err != nil {
		panic(err)
	}
	return r
}

func refScalars(scalars []*Scalar) []*edwards25519.Scalar {
	out := make([]*edwards25519.Scalar, len(scalars))
	for i, s := range scalars {
		out[i] = refScalar(s)
	}
	return out
}

// refPoint returns the filippo.io/edwards25519 point equal to p.
func refPoint(p *EdwardsPoint) *edwards25519.Point {
	r, err := new(edwards25519.Point).SetBytes(p.Bytes())
	if err != nil {
		panic(err)
	}
	return r
}

func refPoints(points []*EdwardsPoint) []*edwards25519.Point {
	out := make([]*edwards25519.Point, len(points))
	for i, p := range points {
		out[i] = refPoint(p)
	}
	return out
}

// naiveSum returns sum(scalars[i] * points[i]) one term at a time.
func naiveSum(scalars []*Scalar, points []*EdwardsPoint) *EdwardsPoint {
	sum := NewEdwardsIdentity()
	for i := range scalars {
		sum.Add(sum, new(EdwardsPoint).ScalarMult(scalars[i], points[i]))
	}
	return sum
}
