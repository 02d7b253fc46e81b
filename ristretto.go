package curve25519

import (
	"fmt"
	"hash"
	"io"

	"github.com/AlexanderYastrebov/curve25519/field"
)

// RistrettoPoint is an element of the ristretto255 prime-order group, as
// specified in RFC 9496.
//
// It is represented by an Edwards point P standing for the coset P + E[4],
// where E[4] is the 4-torsion subgroup. All operations are well defined on
// cosets: the group law is inherited from Edwards addition, and encoding
// picks a unique representative.
//
// The zero value is NOT valid, and it may be used only as a receiver.
type RistrettoPoint struct {
	e EdwardsPoint
}

// CompressedRistretto is the canonical 32-byte encoding of a
// ristretto255 element.
type CompressedRistretto [32]byte

// NewRistrettoIdentity returns a new RistrettoPoint set to the identity.
func NewRistrettoIdentity() *RistrettoPoint {
	p := &RistrettoPoint{}
	p.e.Identity()
	return p
}

// NewRistrettoGenerator returns a new RistrettoPoint set to the canonical
// generator, the coset of the Edwards basepoint.
func NewRistrettoGenerator() *RistrettoPoint {
	p := &RistrettoPoint{}
	p.e.Set(generator)
	return p
}

// Identity sets v to the identity element, and returns v.
func (v *RistrettoPoint) Identity() *RistrettoPoint {
	v.e.Identity()
	return v
}

// Set sets v = u, and returns v.
func (v *RistrettoPoint) Set(u *RistrettoPoint) *RistrettoPoint {
	v.e.Set(&u.e)
	return v
}

// Edwards returns an Edwards point in the coset represented by v. Which
// representative is returned is unspecified.
func (v *RistrettoPoint) Edwards() *EdwardsPoint {
	return new(EdwardsPoint).Set(&v.e)
}

// SetCanonicalBytes sets v to the element encoded by x, and returns v. If x
// is not a canonical encoding of a ristretto255 element, it returns nil
// and an error, and the receiver is unchanged.
func (v *RistrettoPoint) SetCanonicalBytes(x []byte) (*RistrettoPoint, error) {
	if len(x) != 32 {
		return nil, ErrInvalidLength
	}
	var c CompressedRistretto
	copy(c[:], x)
	p, err := c.Decompress()
	if err != nil {
		return nil, err
	}
	return v.Set(p), nil
}

// Decompress returns the element encoded by c, following RFC 9496,
// Section 4.3.1.
func (c *CompressedRistretto) Decompress() (*RistrettoPoint, error) {
	// Step 1: check that the encoding of the field element is canonical
	s, err := new(field.Element).SetBytes(c[:])
	if err != nil {
		return nil, err
	}
	var enc [32]byte
	if s.FillBytes(enc[:]); enc != [32]byte(*c) {
		return nil, ErrNonCanonical
	}
	if s.IsNegative() == 1 {
		return nil, ErrNonCanonical
	}

	// Step 2: compute the point
	var ss, u1, u2, u2Sqr, v, t field.Element
	ss.Square(s)
	u1.Subtract(feOne, &ss) // 1 + as²
	u2.Add(feOne, &ss)      // 1 - as² where a = -1
	u2Sqr.Square(&u2)       // (1 - as²)²

	// v = -(d * u1²) - u2²
	v.Square(&u1)
	v.Multiply(&v, edwardsD)
	v.Negate(&v)
	v.Subtract(&v, &u2Sqr)

	// I = 1/sqrt(v * u2²), returns I = 0 if v*u2² is not square
	var invSqrt field.Element
	_, wasSquare := invSqrt.SqrtRatio(feOne, t.Multiply(&v, &u2Sqr))

	var denX, denY field.Element
	denX.Multiply(&invSqrt, &u2)
	denY.Multiply(&invSqrt, &denX)
	denY.Multiply(&denY, &v)

	p := &RistrettoPoint{}
	// x = |2s * denX|
	p.e.x.Add(s, s)
	p.e.x.Multiply(&p.e.x, &denX)
	p.e.x.Absolute(&p.e.x)
	// y = u1 * denY
	p.e.y.Multiply(&u1, &denY)
	p.e.z.One()
	// t = x * y
	p.e.t.Multiply(&p.e.x, &p.e.y)

	// Step 3: reject the point if it is not square, t is negative, or
	// y = 0.
	if wasSquare == 0 || p.e.t.IsNegative() == 1 || p.e.y.IsZero() == 1 {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// Bytes returns c as a byte slice.
func (c *CompressedRistretto) Bytes() []byte {
	return c[:]
}

// Bytes returns the canonical 32-byte encoding of v.
func (v *RistrettoPoint) Bytes() []byte {
	c := v.Compress()
	return c[:]
}

// Compress returns the canonical encoding of v, following RFC 9496,
// Section 4.3.2.
func (v *RistrettoPoint) Compress() CompressedRistretto {
	checkInitialized(&v.e)
	X0, Y0, Z0, T0 := &v.e.x, &v.e.y, &v.e.z, &v.e.t

	var u1, u2, t field.Element
	// u1 = (Z0 + Y0) * (Z0 - Y0)
	u1.Add(Z0, Y0)
	u1.Multiply(&u1, t.Subtract(Z0, Y0))
	// u2 = X0 * Y0
	u2.Multiply(X0, Y0)

	// invsqrt = 1/sqrt(u1 * u2²)
	var invSqrt field.Element
	t.Square(&u2)
	t.Multiply(&u1, &t)
	invSqrt.SqrtRatio(feOne, &t)

	var den1, den2, zInv field.Element
	den1.Multiply(&invSqrt, &u1)
	den2.Multiply(&invSqrt, &u2)
	zInv.Multiply(&den1, &den2)
	zInv.Multiply(&zInv, T0)

	var ix0, iy0, enchantedDenominator field.Element
	ix0.Multiply(X0, sqrtM1)
	iy0.Multiply(Y0, sqrtM1)
	enchantedDenominator.Multiply(&den1, invSqrtAMinusD)

	rotate := t.Multiply(T0, &zInv).IsNegative()

	var x, y, denInv field.Element
	x.Select(&iy0, X0, rotate)
	y.Select(&ix0, Y0, rotate)
	denInv.Select(&enchantedDenominator, &den2, rotate)

	y.CondNegate(&y, t.Multiply(&x, &zInv).IsNegative())

	// s = |denInv * (z - y)|
	var s field.Element
	s.Subtract(Z0, &y)
	s.Multiply(&denInv, &s)
	s.Absolute(&s)

	var out CompressedRistretto
	s.FillBytes(out[:])
	return out
}

// SetUniformBytes sets v to an element derived from 64 uniformly random
// bytes, following the one-way map of RFC 9496, Section 4.3.4. If x is
// not of the right length, SetUniformBytes returns nil and
// [ErrInvalidLength], and the receiver is unchanged.
func (v *RistrettoPoint) SetUniformBytes(x []byte) (*RistrettoPoint, error) {
	if len(x) != 64 {
		return nil, ErrInvalidLength
	}
	r0, _ := new(field.Element).SetBytes(x[:32])
	r1, _ := new(field.Element).SetBytes(x[32:])

	var p1, p2 EdwardsPoint
	elligatorRistrettoFlavor(&p1, r0)
	elligatorRistrettoFlavor(&p2, r1)
	v.e.Add(&p1, &p2)
	return v, nil
}

// SetHash sets v to the element derived from the 64-byte digest of h with
// [RistrettoPoint.SetUniformBytes]. If h does not produce 64 bytes, SetHash
// returns nil and [ErrInvalidHash].
func (v *RistrettoPoint) SetHash(h hash.Hash) (*RistrettoPoint, error) {
	if h.Size() != 64 {
		return nil, ErrInvalidHash
	}
	var digest [64]byte
	return v.SetUniformBytes(h.Sum(digest[:0]))
}

// SetRandom sets v to a uniformly distributed element using 64 bytes read
// from rand.
func (v *RistrettoPoint) SetRandom(rand io.Reader) (*RistrettoPoint, error) {
	var b [64]byte
	if _, err := io.ReadFull(rand, b[:]); err != nil {
		return nil, fmt.Errorf("curve25519: reading random point: %w", err)
	}
	return v.SetUniformBytes(b[:])
}

// elligatorRistrettoFlavor sets v to the image of r0 under the ristretto255
// Elligator map, RFC 9496, Section 4.3.4.
func elligatorRistrettoFlavor(v *EdwardsPoint, r0 *field.Element) {
	var r, u, vv, t field.Element

	// r = sqrt(-1) * r0²
	r.Square(r0)
	r.Multiply(sqrtM1, &r)
	// u = (r + 1) * (1 - d²)
	u.Add(&r, feOne)
	u.Multiply(&u, oneMinusDSq)
	// vv = (-1 - r*d) * (r + d)
	vv.Multiply(&r, edwardsD)
	vv.Subtract(feMinusOne, &vv)
	vv.Multiply(&vv, t.Add(&r, edwardsD))

	var s field.Element
	_, wasSquare := s.SqrtRatio(&u, &vv)

	// sPrime = -|s * r0|
	var sPrime field.Element
	sPrime.Multiply(&s, r0)
	sPrime.Absolute(&sPrime)
	sPrime.Negate(&sPrime)

	var c field.Element
	s.Select(&s, &sPrime, wasSquare)
	c.Select(feMinusOne, &r, wasSquare)

	// N = c * (r - 1) * (d - 1)² - vv
	var n field.Element
	n.Subtract(&r, feOne)
	n.Multiply(&c, &n)
	n.Multiply(&n, dMinusOneSq)
	n.Subtract(&n, &vv)

	var w0, w1, w2, w3 field.Element
	w0.Add(&s, &s)
	w0.Multiply(&w0, &vv)
	w1.Multiply(&n, sqrtADMinusOne)
	t.Square(&s)
	w2.Subtract(feOne, &t)
	w3.Add(feOne, &t)

	v.x.Multiply(&w0, &w3)
	v.y.Multiply(&w2, &w1)
	v.z.Multiply(&w1, &w3)
	v.t.Multiply(&w0, &w2)
}

// Equal returns 1 if v and u represent the same element, and 0 otherwise.
func (v *RistrettoPoint) Equal(u *RistrettoPoint) int {
	checkInitialized(&v.e, &u.e)

	var t1, t2, t3, t4 field.Element
	t1.Multiply(&v.e.x, &u.e.y)
	t2.Multiply(&v.e.y, &u.e.x)
	t3.Multiply(&v.e.x, &u.e.x)
	t4.Multiply(&v.e.y, &u.e.y)
	return t1.Equal(&t2) | t3.Equal(&t4)
}

// IsIdentity returns 1 if v is the identity element, and 0 otherwise.
func (v *RistrettoPoint) IsIdentity() int {
	return v.Equal(NewRistrettoIdentity())
}

// Add sets v = p + q, and returns v.
func (v *RistrettoPoint) Add(p, q *RistrettoPoint) *RistrettoPoint {
	v.e.Add(&p.e, &q.e)
	return v
}

// Subtract sets v = p - q, and returns v.
func (v *RistrettoPoint) Subtract(p, q *RistrettoPoint) *RistrettoPoint {
	v.e.Subtract(&p.e, &q.e)
	return v
}

// Negate sets v = -p, and returns v.
func (v *RistrettoPoint) Negate(p *RistrettoPoint) *RistrettoPoint {
	v.e.Negate(&p.e)
	return v
}

// Double sets v = p + p, and returns v.
func (v *RistrettoPoint) Double(p *RistrettoPoint) *RistrettoPoint {
	v.e.Double(&p.e)
	return v
}

// ScalarMult sets v = x * p, and returns v.
//
// The scalar multiplication is done in constant time.
func (v *RistrettoPoint) ScalarMult(x *Scalar, p *RistrettoPoint) *RistrettoPoint {
	v.e.ScalarMult(x, &p.e)
	return v
}

// ScalarBaseMult sets v = x * B, where B is the canonical generator, and
// returns v.
//
// The scalar multiplication is done in constant time.
func (v *RistrettoPoint) ScalarBaseMult(x *Scalar) *RistrettoPoint {
	v.e.ScalarBaseMult(x)
	return v
}

// VarTimeDoubleScalarBaseMult sets v = a * A + b * B, where B is the
// canonical generator, and returns v.
//
// Execution time depends on the inputs.
func (v *RistrettoPoint) VarTimeDoubleScalarBaseMult(a *Scalar, A *RistrettoPoint, b *Scalar) *RistrettoPoint {
	v.e.VarTimeDoubleScalarBaseMult(a, &A.e, b)
	return v
}

func edwardsPoints(points []*RistrettoPoint) []*EdwardsPoint {
	out := make([]*EdwardsPoint, len(points))
	for i, p := range points {
		out[i] = &p.e
	}
	return out
}

// MultiScalarMult sets v = sum(scalars[i] * points[i]), and returns v.
//
// Execution time depends only on the lengths of the two slices, which must
// match, or MultiScalarMult will panic.
func (v *RistrettoPoint) MultiScalarMult(scalars []*Scalar, points []*RistrettoPoint) *RistrettoPoint {
	v.e.MultiScalarMult(scalars, edwardsPoints(points))
	return v
}

// VarTimeMultiScalarMult sets v = sum(scalars[i] * points[i]), and returns v.
//
// Execution time depends on the inputs. The lengths of the two slices must
// match, or VarTimeMultiScalarMult will panic.
func (v *RistrettoPoint) VarTimeMultiScalarMult(scalars []*Scalar, points []*RistrettoPoint) *RistrettoPoint {
	v.e.VarTimeMultiScalarMult(scalars, edwardsPoints(points))
	return v
}

// batchCompressState holds the intermediate values of compressing 2*P
// without an inversion, following the doubling formulas in extended
// coordinates.
type batchCompressState struct {
	e, f, g, h, eg, fh field.Element
}

func (s *batchCompressState) fromPoint(p *EdwardsPoint) {
	var xx, yy, zz, dtt field.Element
	xx.Square(&p.x)
	yy.Square(&p.y)
	zz.Square(&p.z)
	dtt.Square(&p.t)
	dtt.Multiply(&dtt, edwardsD)

	s.e.Add(&p.y, &p.y)
	s.e.Multiply(&p.x, &s.e) // = 2*X*Y
	s.f.Add(&zz, &dtt)       // = Z^2 + d*T^2
	s.g.Add(&yy, &xx)        // = Y^2 - a*X^2
	s.h.Subtract(&zz, &dtt)  // = Z^2 - d*T^2
	s.eg.Multiply(&s.e, &s.g)
	s.fh.Multiply(&s.f, &s.h)
}

// DoubleAndCompressBatch returns the encodings of 2*P for every P in
// points, sharing a single field inversion between them.
func DoubleAndCompressBatch(points []*RistrettoPoint) []CompressedRistretto {
	states := make([]batchCompressState, len(points))
	invs := make([]field.Element, len(points))
	for i, p := range points {
		checkInitialized(&p.e)
		states[i].fromPoint(&p.e)
		invs[i].Multiply(&states[i].eg, &states[i].fh)
	}
	field.BatchInvert(invs)

	out := make([]CompressedRistretto, len(points))
	for i := range states {
		state := &states[i]
		var zInv, tInv field.Element
		zInv.Multiply(&state.eg, &invs[i])
		tInv.Multiply(&state.fh, &invs[i])

		var magic, e, g, h, minusE, fTimesSqrtA, t field.Element
		magic.Set(invSqrtAMinusD)
		e.Set(&state.e)
		g.Set(&state.g)
		h.Set(&state.h)
		minusE.Negate(&e)
		fTimesSqrtA.Multiply(&state.f, sqrtM1)

		negcheck1 := t.Multiply(&state.eg, &zInv).IsNegative()
		e.Select(&state.g, &e, negcheck1)
		g.Select(&minusE, &g, negcheck1)
		h.Select(&fTimesSqrtA, &h, negcheck1)
		magic.Select(sqrtM1, &magic, negcheck1)

		t.Multiply(&h, &e)
		negcheck2 := t.Multiply(&t, &zInv).IsNegative()
		g.CondNegate(&g, negcheck2)

		// s = |(h - g) * magic * g * tInv|
		var s field.Element
		t.Multiply(&g, &tInv)
		t.Multiply(&magic, &t)
		s.Subtract(&h, &g)
		s.Multiply(&s, &t)
		s.Absolute(&s)

		s.FillBytes(out[i][:])
	}
	return out
}

// coset4 returns the four Edwards points of the coset v + E[4].
func (v *RistrettoPoint) coset4() [4]EdwardsPoint {
	var out [4]EdwardsPoint
	out[0].Set(&v.e)
	out[1].Add(&v.e, eightTorsion[2])
	out[2].Add(&v.e, eightTorsion[4])
	out[3].Add(&v.e, eightTorsion[6])
	return out
}

// RistrettoBasepointTable precomputes multiples of a ristretto255 element
// for constant-time fixed-base scalar multiplication. See
// [EdwardsBasepointTable].
type RistrettoBasepointTable struct {
	t *EdwardsBasepointTable
}

// NewRistrettoBasepointTable builds the radix-2^w table of b. It panics if
// w is not between 4 and 8.
func NewRistrettoBasepointTable(b *RistrettoPoint, w int) *RistrettoBasepointTable {
	return &RistrettoBasepointTable{t: NewEdwardsBasepointTable(&b.e, w)}
}

// Basepoint returns the element the table was built from.
func (t *RistrettoBasepointTable) Basepoint() *RistrettoPoint {
	p := &RistrettoPoint{}
	p.e.Set(&t.t.base)
	return p
}

// ScalarMult returns s * B, where B is the table's basepoint.
func (t *RistrettoBasepointTable) ScalarMult(s *Scalar) *RistrettoPoint {
	p := &RistrettoPoint{}
	t.t.scalarMultInto(&p.e, s)
	return p
}
