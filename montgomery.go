package curve25519

import (
	"github.com/AlexanderYastrebov/curve25519/field"
)

// Montgomery "curve25519" v^2 = u^3 + A*u^2 + u parameters
//
// https://www.rfc-editor.org/rfc/rfc7748.html#section-4.1
//
// The base point is u = 9, v = 14781619447589544791020593568409986887264606134616475288964881837755586237401.

// MontgomeryPoint is the u coordinate of a point on the Montgomery form of
// Curve25519, as 32 little-endian bytes.
//
// Only the u coordinate is kept, so a MontgomeryPoint stands for the pair
// of points (u, v) and (u, -v). It supports scalar multiplication with the
// x-only ladder and conversion to [EdwardsPoint] given the sign of x.
type MontgomeryPoint [32]byte

// montgomeryBasepoint is u = 9.
var montgomeryBasepoint = MontgomeryPoint{9}

// NewMontgomeryGenerator returns the u coordinate of the basepoint, u = 9.
func NewMontgomeryGenerator() *MontgomeryPoint {
	p := montgomeryBasepoint
	return &p
}

// SetBytes sets p to the 32-byte encoding x, and returns p. If x is not of
// the right length, SetBytes returns nil and [ErrInvalidLength].
//
// Every 32-byte string is accepted, including values of u in [p, 2^256)
// and points on the quadratic twist, consistent with RFC 7748.
func (p *MontgomeryPoint) SetBytes(x []byte) (*MontgomeryPoint, error) {
	if len(x) != 32 {
		return nil, ErrInvalidLength
	}
	copy(p[:], x)
	return p, nil
}

// Bytes returns p as a byte slice.
func (p *MontgomeryPoint) Bytes() []byte {
	return p[:]
}

// u returns the field element encoded by p, with the top bit ignored.
func (p *MontgomeryPoint) u() *field.Element {
	u, _ := new(field.Element).SetBytes(p[:])
	return u
}

// Equal returns 1 if p and q encode the same u coordinate modulo p, and 0
// otherwise. The top bit and non-canonical encodings are reduced first.
func (p *MontgomeryPoint) Equal(q *MontgomeryPoint) int {
	return p.u().Equal(q.u())
}

// ScalarMult sets p = x * q, and returns p.
//
// The scalar multiplication is done in constant time.
func (p *MontgomeryPoint) ScalarMult(x *Scalar, q *MontgomeryPoint) *MontgomeryPoint {
	return p.ladder(&x.s, q)
}

// ScalarMultClamped sets p = c * q, where c is ClampInteger(b), and
// returns p. This is the X25519 function of RFC 7748.
func (p *MontgomeryPoint) ScalarMultClamped(b [32]byte, q *MontgomeryPoint) *MontgomeryPoint {
	c := ClampInteger(b)
	return p.ladder(&c, q)
}

// ScalarBaseMult sets p = x * B, where B is the basepoint u = 9, and
// returns p. It goes through the Edwards basepoint table.
func (p *MontgomeryPoint) ScalarBaseMult(x *Scalar) *MontgomeryPoint {
	*p = new(EdwardsPoint).ScalarBaseMult(x).ToMontgomery()
	return p
}

// ScalarBaseMultClamped sets p = c * B, where c is ClampInteger(b), and
// returns p.
func (p *MontgomeryPoint) ScalarBaseMultClamped(b [32]byte) *MontgomeryPoint {
	*p = new(EdwardsPoint).ScalarBaseMultClamped(b).ToMontgomery()
	return p
}

// ladder sets p = k * q with the Montgomery ladder, where k is a
// little-endian integer below 2^255.
//
// See "Montgomery curves and their arithmetic" by Costello and Smith,
// https://eprint.iacr.org/2017/212, Algorithm 8, and RFC 7748, Section 5.
func (p *MontgomeryPoint) ladder(k *[32]byte, q *MontgomeryPoint) *MontgomeryPoint {
	var x1, x2, z2, x3, z3, tmp0, tmp1 field.Element
	x1.Set(q.u())

	x2.One()
	x3.Set(&x1)
	z3.One()

	swap := 0
	// The top bit of k is always clear.
	for pos := 254; pos >= 0; pos-- {
		b := int(k[pos/8]>>uint(pos&7)) & 1
		swap ^= b
		x2.Swap(&x3, swap)
		z2.Swap(&z3, swap)
		swap = b

		tmp0.Subtract(&x3, &z3)
		tmp1.Subtract(&x2, &z2)
		x2.Add(&x2, &z2)
		z2.Add(&x3, &z3)
		z3.Multiply(&tmp0, &x2)
		z2.Multiply(&z2, &tmp1)
		tmp0.Square(&tmp1)
		tmp1.Square(&x2)
		x3.Add(&z3, &z2)
		z2.Subtract(&z3, &z2)
		x2.Multiply(&tmp1, &tmp0)
		tmp1.Subtract(&tmp1, &tmp0)
		z2.Square(&z2)

		z3.Mult32(&tmp1, montgomeryAPlus24)
		x3.Square(&x3)
		tmp0.Add(&tmp0, &z3)
		z3.Multiply(&x1, &z2)
		z2.Multiply(&tmp1, &tmp0)
	}

	x2.Swap(&x3, swap)
	z2.Swap(&z3, swap)

	// The point at infinity has Z = 0 and maps to u = 0.
	z2.Invert(&z2)
	x2.Multiply(&x2, &z2)

	x2.FillBytes(p[:])
	return p
}

// ToEdwards returns the Edwards point with the given sign of x that is
// birationally equivalent to p. It fails with [ErrInvalidPoint] for
// u = -1, which has no Edwards image, and for u on the quadratic twist.
func (p *MontgomeryPoint) ToEdwards(sign int) (*EdwardsPoint, error) {
	// https://www.rfc-editor.org/rfc/rfc7748.html#section-4.1
	// (x, y) = (sqrt(-486664)*u/v, (u-1)/(u+1))
	//
	// Only y is needed; x is recovered by Edwards decompression.
	u := p.u()
	if u.Equal(feMinusOne) == 1 {
		return nil, ErrInvalidPoint
	}

	var n, d, y field.Element
	n.Subtract(u, feOne)
	d.Add(u, feOne)
	y.Multiply(&n, d.Invert(&d))

	var c CompressedEdwardsY
	y.FillBytes(c[:])
	c[31] ^= byte(sign << 7)
	return c.Decompress()
}

// elligatorEncode maps r to a point on the Montgomery curve with the
// Elligator 2 map of https://eprint.iacr.org/2013/325, Section 5.2, using
// the non-square 2.
func elligatorEncode(r *field.Element) MontgomeryPoint {
	var d, dSq, au, eps, t, zero field.Element

	// d = -A/(1 + 2r^2)
	t.Square(r)
	t.Add(&t, &t)
	t.Add(feOne, &t)
	d.Negate(montgomeryA)
	d.Multiply(&d, t.Invert(&t))

	// eps = d^3 + A*d^2 + d
	dSq.Square(&d)
	au.Multiply(montgomeryA, &d)
	eps.Add(&dSq, &au)
	eps.Add(&eps, feOne)
	eps.Multiply(&d, &eps)

	_, isSquare := new(field.Element).SqrtRatio(&eps, feOne)

	// u = d if eps is square, and -d - A otherwise.
	var u field.Element
	t.Select(&zero, montgomeryA, isSquare)
	u.Add(&d, &t)
	u.CondNegate(&u, 1-isSquare)

	var out MontgomeryPoint
	u.FillBytes(out[:])
	return out
}
