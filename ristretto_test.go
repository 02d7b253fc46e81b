package curve25519

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"io"
	"testing"

	"github.com/AlexanderYastrebov/curve25519/field"
	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawRistrettoPoint(t *rapid.T, label string) *RistrettoPoint {
	return new(RistrettoPoint).ScalarBaseMult(drawScalar(t, label))
}

func randomRistrettoPoint(t testing.TB) *RistrettoPoint {
	p, err := new(RistrettoPoint).SetRandom(rand.Reader)
	require.NoError(t, err)
	return p
}

// https://www.rfc-editor.org/rfc/rfc9496.html#appendix-A.1
var ristrettoGeneratorMultiples = []string{
	"0000000000000000000000000000000000000000000000000000000000000000",
	"e2f2ae0a6abc4e71a884a961c500515f58e30b6aa582dd8db6a65945e08d2d76",
	"6a493210f7499cd17fecb510ae0cea23a110e8d5b901f8acadd3095c73a3b919",
	"94741f5d5d52755ece4f23f044ee27d5d1ea1e2bd196b462166b16152a9d0259",
	"da80862773358b466ffadfe0b3293ab3d9fd53c5ea6c955358f568322daf6a57",
	"e882b131016b52c1d3337080187cf768423efccbb517bb495ab812c4160ff44e",
	"f64746d3c92b13050ed8d80236a7f0007c3b3f962f5ba793d19a601ebb1df403",
	"44f53520926ec81fbd5a387845beb7df85a96a24ece18738bdcfa6a7822a176d",
	"903293d8f2287ebe10e2374dc1a53e0bc887e592699f02d077d5263cdd55601c",
	"02622ace8f7303a31cafc63f8fc48fdc16e1c8c8d234b2f0d6685282a9076031",
	"20706fd788b2720a1ed2a5dad4952b01f413bcf0e7564de8cdc816689e2db95f",
	"bce83f8ba5dd2fa572864c24ba1810f9522bc6004afe95877ac73241cafdab42",
	"e4549ee16b9aa03099ca208c67adafcafa4c3f3e4e5303de6026e3ca8ff84460",
	"aa52e000df2e16f55fb1032fc33bc42742dad6bd5a8fc0be0167436c5948501f",
	"46376b80f409b29dc2b5f6f0c52591990896e5716f41477cd30085ab7f10301e",
	"e0c418f7c8d9c4cdd7395b93ea124f3ad99021bb681dfc3302a9d99a2e53e64e",
}

func TestRistrettoGeneratorMultiples(t *testing.T) {
	g := NewRistrettoGenerator()
	p := NewRistrettoIdentity()
	for i, want := range ristrettoGeneratorMultiples {
		assert.Equal(t, want, p.String(), "%d*B", i)

		q, err := new(RistrettoPoint).SetCanonicalBytes(decodeHex(want))
		require.NoError(t, err, "%d*B", i)
		assert.Equal(t, 1, q.Equal(p), "%d*B", i)
		assert.Equal(t, want, q.String(), "%d*B", i)

		s := new(RistrettoPoint).ScalarBaseMult(scalarFromUint64(uint64(i)))
		assert.Equal(t, 1, s.Equal(p), "%d*B", i)

		p.Add(p, g)
	}
}

func TestRistrettoBadEncodings(t *testing.T) {
	// https://www.rfc-editor.org/rfc/rfc9496.html#appendix-A.2
	for _, s := range []string{
		// Non-canonical field encodings.
		"00ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		"f3ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		"edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",

		// Negative field elements.
		"0100000000000000000000000000000000000000000000000000000000000000",
		"01ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		"ed57ffd8c914fb201471d1c3d245ce3c746fcbe63a3679d51b6a516ebebe0e20",
		"c34c4e1826e5d403b78e246e88aa051c36ccf0aafebffe137d148a2bf9104562",
		"c940e5a4404157cfb1628b108db051a8d439e1a421394ec4ebccb9ec92a8ac78",
		"47cfc5497c53dc8e61c91d17fd626ffb1c49e2bca94eed052281b510b1117a24",
		"f1c6165d33367351b0da8f6e4511010c68174a03b6581212c71c0e1d026c3c72",
		"87260f7a2f12495118360f02c26a470f450dadf34a413d21042b43b9d93e1309",

		// Non-square x^2.
		"26948d35ca62e643e26a83177332e6b6afeb9d08e4268b650f1f5bbd8d81d371",
		"4eac077a713c57b4f4397629a4145982c661f48044dd3f96427d40b147d9742f",
		"de6a7b00deadc788eb6b6c8d20c0ae96c2f2019078fa604fee5b87d6e989ad7b",
		"bcab477be20861e01e4a0e295284146a510150d9817763caf1a6f4b422d67042",
		"2a292df7e32cababbd9de088d1d1abec9fc0440f637ed2fba145094dc14bea08",
		"f4a9e534fc0d216c44b218fa0c42d99635a0127ee2e53c712f70609649fdff22",

		// Negative xy value.
		"8268436f8c4126196cf64b3c7ddbda90746a378625f9813dd9b8457077256731",
		"2810e5cbc2cc4d4eece54f61c6f69758e289aa7ab440b3cbeaa21995c2f4232b",
		"3eb858e78f5a7254d8c9731174a94f76755fd3941c0ac93735c07ba14579630e",
		"a45fdc55c76448c049a1ab33f17023edfb2be3581e9c7aade8a6125215e04220",
		"d483fe813c6ba647ebbfd3ec41adca1c6130c2beeee9d9bf065c8d151c5f396e",
		"8a2e1d30050198c65a54483123960ccc38aef6848e1ec8f5f780e8523769ba32",

		// s = -1, which causes y = 0.
		"32888462f8b486c68ad7dd9610be5192bbeaf3b443951ac1a8118419d9fa097b",
		"227142501b9d4355ccba290404bde41575b037693cef1f438c47f8fbf35d1165",
		"5c37cc491da847cfeb9281d407efc41e15144c876e0170b499a96a22ed31e01e",
		"445425117cb8c90edcbc7c1cc0e74f747f2c1efa5630a967c64f287792a48a4b",

		// p - 1.
		"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
	} {
		p := NewRistrettoGenerator()
		_, err := p.SetCanonicalBytes(decodeHex(s))
		if !assert.Error(t, err, s) {
			continue
		}
		assert.True(t, err == ErrNonCanonical || err == ErrInvalidPoint, "%s: %v", s, err)
		assert.Equal(t, 1, p.Equal(NewRistrettoGenerator()), "receiver must be unchanged")
	}

	_, err := new(RistrettoPoint).SetCanonicalBytes(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestRistrettoUniformBytes(t *testing.T) {
	// https://www.rfc-editor.org/rfc/rfc9496.html#appendix-A.3
	for _, tt := range []struct{ in, want string }{
		{"5d1be09e3d0c82fc538112490e35701979d99e06ca3e2b5b54bffe8b4dc772c14d98b696a1bbfb5ca32c436cc61c16563790306c79eaca7705668b47dffe5bb6", "3066f82a1a747d45120d1740f14358531a8f04bbffe6a819f86dfe50f44a0a46"},
		{"f116b34b8f17ceb56e8732a60d913dd10cce47a6d53bee9204be8b44f6678b270102a56902e2488c46120e9276cfe54638286b9e4b3cdb470b542d46c2068d38", "f26e5b6f7d362d2d2a94c5d0e7602cb4773c95a2e5c31a64f133189fa76ed61b"},
		{"8422e1bbdaab52938b81fd602effb6f89110e1e57208ad12d9ad767e2e25510c27140775f9337088b982d83d7fcf0b2fa1edffe51952cbe7365e95c86eaf325c", "006ccd2a9e6867e6a2c5cea83d3302cc9de128dd2a9a57dd8ee7b9d7ffe02826"},
		{"ac22415129b61427bf464e17baee8db65940c233b98afce8d17c57beeb7876c2150d15af1cb1fb824bbd14955f2b57d08d388aab431a391cfc33d5bafb5dbbaf", "f8f0c87cf237953c5890aec3998169005dae3eca1fbb04548c635953c817f92a"},
		{"165d697a1ef3d5cf3c38565beefcf88c0f282b8e7dbd28544c483432f1cec7675debea8ebb4e5fe7d6f6e5db15f15587ac4d4d4a1de7191e0c1ca6664abcc413", "ae81e7dedf20a497e10c304a765c1767a42d6e06029758d2d7e8ef7cc4c41179"},
		{"a836e6c9a9ca9f1e8d486273ad56a78c70cf18f0ce10abb1c7172ddd605d7fd2979854f47ae1ccf204a33102095b4200e5befc0465accc263175485f0e17ea5c", "e2705652ff9f5e44d3e841bf1c251cf7dddb77d140870d1ab2ed64f1a9ce8628"},
		{"2cdc11eaeb95daf01189417cdddbf95952993aa9cb9c640eb5058d09702c74622c9965a697a3b345ec24ee56335b556e677b30e6f90ac77d781064f866a3c982", "80bd07262511cdde4863f8a7434cef696750681cb9510eea557088f76d9e5065"},
	} {
		p, err := new(RistrettoPoint).SetUniformBytes(decodeHex(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.String())
	}

	_, err := new(RistrettoPoint).SetUniformBytes(make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestRistrettoMatchesReference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 128).Draw(t, "data")
		h := sha512.New()
		h.Write(data)
		p, err := new(RistrettoPoint).SetHash(h)
		if err != nil {
			t.Fatal(err)
		}
		want := new(ristretto.Point).DeriveDalek(data)
		if !bytes.Equal(want.Bytes(), p.Bytes()) {
			t.Fatalf("hash: got %x, want %x", p.Bytes(), want.Bytes())
		}

		var r [32]byte
		copy(r[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "r"))
		r[31] &= 0x7f
		var e RistrettoPoint
		r0, _ := new(field.Element).SetBytes(r[:])
		elligatorRistrettoFlavor(&e.e, r0)
		if !bytes.Equal(new(ristretto.Point).SetElligator(&r).Bytes(), e.Bytes()) {
			t.Fatalf("elligator mismatch for %x", r)
		}

		q := drawRistrettoPoint(t, "q")
		var qb [32]byte
		copy(qb[:], q.Bytes())
		var rq ristretto.Point
		if !rq.SetBytes(&qb) {
			t.Fatalf("reference rejected %x", qb)
		}
		sum := new(ristretto.Point).Add(want, &rq)
		if !bytes.Equal(sum.Bytes(), new(RistrettoPoint).Add(p, q).Bytes()) {
			t.Fatal("addition mismatch")
		}
	})
}

// Ristretto quotients the even subgroup by E[4], so only the 4-torsion
// representatives are checked. Adding an odd-order torsion point leaves 2E
// and does not give a valid representative at all.
func TestRistrettoCosetEquality(t *testing.T) {
	for range 4 {
		p := randomRistrettoPoint(t)
		want := p.Compress()
		for i, e := range p.coset4() {
			q := &RistrettoPoint{}
			q.e.Set(&e)
			assert.Equal(t, 1, q.Equal(p), "representative %d", i)
			assert.Equal(t, want, q.Compress(), "representative %d", i)
		}
	}
}

func TestRistrettoGroupLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := drawRistrettoPoint(t, "p")
		q := drawRistrettoPoint(t, "q")

		if new(RistrettoPoint).Subtract(p, p).IsIdentity() != 1 {
			t.Fatal("p - p is not the identity")
		}
		if new(RistrettoPoint).Add(p, new(RistrettoPoint).Negate(p)).IsIdentity() != 1 {
			t.Fatal("p + -p is not the identity")
		}
		if new(RistrettoPoint).Subtract(new(RistrettoPoint).Add(p, q), q).Equal(p) != 1 {
			t.Fatal("(p + q) - q != p")
		}
		if new(RistrettoPoint).Double(p).Equal(new(RistrettoPoint).Add(p, p)) != 1 {
			t.Fatal("2p != p + p")
		}

		c := p.Compress()
		d, err := c.Decompress()
		if err != nil {
			t.Fatal(err)
		}
		if d.Equal(p) != 1 {
			t.Fatal("round trip changed the element")
		}
	})
}

func TestRistrettoScalarMult(t *testing.T) {
	a, b := randomScalar(t), randomScalar(t)
	A := randomRistrettoPoint(t)

	aA := new(RistrettoPoint).ScalarMult(a, A)
	bB := new(RistrettoPoint).ScalarBaseMult(b)
	want := new(RistrettoPoint).Add(aA, bB)

	assert.Equal(t, 1, new(RistrettoPoint).VarTimeDoubleScalarBaseMult(a, A, b).Equal(want))

	scalars := []*Scalar{a, b}
	points := []*RistrettoPoint{A, NewRistrettoGenerator()}
	assert.Equal(t, 1, new(RistrettoPoint).MultiScalarMult(scalars, points).Equal(want))
	assert.Equal(t, 1, new(RistrettoPoint).VarTimeMultiScalarMult(scalars, points).Equal(want))

	lMinusOne, err := new(Scalar).SetCanonicalBytes(decodeHex("ecd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"))
	require.NoError(t, err)
	minusA := new(RistrettoPoint).ScalarMult(lMinusOne, A)
	assert.Equal(t, 1, minusA.Equal(new(RistrettoPoint).Negate(A)))
}

func TestDoubleAndCompressBatch(t *testing.T) {
	points := []*RistrettoPoint{NewRistrettoIdentity(), NewRistrettoGenerator()}
	for range 6 {
		points = append(points, randomRistrettoPoint(t))
	}
	// A representative with 4-torsion added.
	torsioned := &RistrettoPoint{}
	torsioned.e.Add(&points[2].e, eightTorsion[2])
	points = append(points, torsioned)

	got := DoubleAndCompressBatch(points)
	require.Len(t, got, len(points))
	for i, p := range points {
		want := new(RistrettoPoint).Double(p).Compress()
		assert.Equal(t, want, got[i], "point %d", i)
	}
	assert.Equal(t, CompressedRistretto{}, got[0])

	assert.Empty(t, DoubleAndCompressBatch(nil))
}

func TestRistrettoBasepointTable(t *testing.T) {
	b := randomRistrettoPoint(t)
	for w := 4; w <= 8; w++ {
		table := NewRistrettoBasepointTable(b, w)
		assert.Equal(t, 1, table.Basepoint().Equal(b))
		for range 4 {
			s := randomScalar(t)
			assert.Equal(t, 1, table.ScalarMult(s).Equal(new(RistrettoPoint).ScalarMult(s, b)), "w=%d", w)
		}
	}
}

func TestRistrettoSetHashErrors(t *testing.T) {
	_, err := new(RistrettoPoint).SetHash(sha256.New())
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = new(RistrettoPoint).SetRandom(bytes.NewReader(make([]byte, 63)))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestRistrettoEdwards(t *testing.T) {
	assert.Equal(t, 1, NewRistrettoGenerator().Edwards().Equal(generator))

	p := randomRistrettoPoint(t)
	e := p.Edwards()

	// The returned point is a copy.
	e.Add(e, generator)
	assert.Equal(t, 0, p.Edwards().Equal(e))
}

func BenchmarkRistrettoCompress(b *testing.B) {
	p := randomRistrettoPoint(b)

	b.ResetTimer()
	for range b.N {
		p.Compress()
	}
}

func BenchmarkRistrettoDecompress(b *testing.B) {
	c := randomRistrettoPoint(b).Compress()

	b.ResetTimer()
	for range b.N {
		c.Decompress()
	}
}

func BenchmarkDoubleAndCompressBatch(b *testing.B) {
	points := make([]*RistrettoPoint, 64)
	for i := range points {
		points[i] = randomRistrettoPoint(b)
	}

	b.ResetTimer()
	for range b.N {
		DoubleAndCompressBatch(points)
	}
}
