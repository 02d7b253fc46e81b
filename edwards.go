package curve25519

import (
	"fmt"
	"hash"

	"github.com/AlexanderYastrebov/curve25519/field"
)

// EdwardsPoint represents a point on the edwards25519 curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2, d = -121665/121666
//
// in extended coordinates (X:Y:Z:T) with x = X/Z, y = Y/Z and x*y = T/Z.
//
// This type works similarly to [filippo.io/edwards25519.Point]: methods
// set the receiver to the result and return it, and all arguments and
// receivers are allowed to alias.
//
// The zero value is NOT valid, and it may be used only as a receiver.
type EdwardsPoint struct {
	// The point is internally represented in extended coordinates (X, Y, Z, T)
	// where x = X/Z, y = Y/Z, and xy = T/Z per https://eprint.iacr.org/2008/522.
	x, y, z, t field.Element

	// Make the type not comparable (i.e. used with == or as a map key), as
	// equivalent points can be represented by different Go values.
	_ incomparable
}

type incomparable [0]func()

// checkInitialized panics on the zero value. No valid point has X = Y = 0,
// so the only branch is on whether the caller broke that precondition.
func checkInitialized(points ...*EdwardsPoint) {
	for _, p := range points {
		if p.x.IsZero()&p.y.IsZero() == 1 {
			panic("curve25519: use of uninitialized EdwardsPoint")
		}
	}
}

// CompressedEdwardsY is the 32-byte encoding of an Edwards point: the
// little-endian y coordinate with the sign of x in the most significant bit.
type CompressedEdwardsY [32]byte

// NewEdwardsIdentity returns a new EdwardsPoint set to the identity.
func NewEdwardsIdentity() *EdwardsPoint {
	return new(EdwardsPoint).Identity()
}

// NewEdwardsGenerator returns a new EdwardsPoint set to the canonical
// generator, the point with y = 4/5 and positive x.
func NewEdwardsGenerator() *EdwardsPoint {
	return new(EdwardsPoint).Set(generator)
}

// Identity sets v to the identity point (0, 1), and returns v.
func (v *EdwardsPoint) Identity() *EdwardsPoint {
	v.x.Zero()
	v.y.One()
	v.z.One()
	v.t.Zero()
	return v
}

// Set sets v = u, and returns v.
func (v *EdwardsPoint) Set(u *EdwardsPoint) *EdwardsPoint {
	*v = *u
	return v
}

// SetBytes sets v = x, where x is a 32-byte encoding of v. If x does not
// represent a valid point on the curve, SetBytes returns nil and an error
// and the receiver is unchanged. Otherwise, SetBytes returns v.
//
// Unlike RFC 8032 readers that accept them, encodings of y in [p, 2^255)
// are rejected with [ErrNonCanonical], so every accepted encoding is the
// one [EdwardsPoint.Bytes] produces.
func (v *EdwardsPoint) SetBytes(x []byte) (*EdwardsPoint, error) {
	if len(x) != 32 {
		return nil, ErrInvalidLength
	}
	var c CompressedEdwardsY
	copy(c[:], x)
	p, err := c.Decompress()
	if err != nil {
		return nil, err
	}
	return v.Set(p), nil
}

// Decompress returns the point encoded by c.
func (c *CompressedEdwardsY) Decompress() (*EdwardsPoint, error) {
	var yBytes [32]byte
	copy(yBytes[:], c[:])
	sign := int(yBytes[31] >> 7)
	yBytes[31] &= 0x7f

	y, err := new(field.Element).SetBytes(yBytes[:])
	if err != nil {
		return nil, err
	}
	var enc [32]byte
	if y.FillBytes(enc[:]); enc != yBytes {
		return nil, ErrNonCanonical
	}

	// -x² + y² = 1 + dx²y²
	// x² + dx²y² = x²(dy² + 1) = y² - 1
	// x² = (y² - 1) / (dy² + 1)

	// u = y² - 1
	y2 := new(field.Element).Square(y)
	u := new(field.Element).Subtract(y2, feOne)

	// v = dy² + 1
	vv := new(field.Element).Multiply(y2, edwardsD)
	vv = vv.Add(vv, feOne)

	// x = +√(u/v)
	xx, wasSquare := new(field.Element).SqrtRatio(u, vv)
	if wasSquare == 0 {
		return nil, ErrInvalidPoint
	}
	if xx.IsZero() == 1 && sign == 1 {
		return nil, ErrInvalidPoint
	}

	// Select the negative square root if the sign bit is set.
	xx.CondNegate(xx, sign)

	p := new(EdwardsPoint)
	p.x.Set(xx)
	p.y.Set(y)
	p.z.One()
	p.t.Multiply(xx, y) // xy = T/Z
	return p, nil
}

// Bytes returns c as a byte slice.
func (c *CompressedEdwardsY) Bytes() []byte {
	return c[:]
}

// Bytes returns the canonical 32-byte encoding of v, according to RFC 8032,
// Section 5.1.2.
func (v *EdwardsPoint) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	c := v.Compress()
	return c[:]
}

// Compress returns the canonical encoding of v.
func (v *EdwardsPoint) Compress() CompressedEdwardsY {
	checkInitialized(v)

	var zInv, x, y field.Element
	zInv.Invert(&v.z)       // zInv = 1 / Z
	x.Multiply(&v.x, &zInv) // x = X / Z
	y.Multiply(&v.y, &zInv) // y = Y / Z

	var out CompressedEdwardsY
	y.FillBytes(out[:])
	out[31] |= byte(x.IsNegative() << 7)
	return out
}

// SetExtendedCoordinates sets v = (X:Y:Z:T) in extended coordinates where
// x = X/Z, y = Y/Z, and xy = T/Z.
//
// If the coordinates are invalid or don't represent a valid point on the
// curve, SetExtendedCoordinates returns nil and [ErrInvalidPoint] and
// leaves the receiver unchanged. Otherwise, SetExtendedCoordinates
// returns v.
func (v *EdwardsPoint) SetExtendedCoordinates(X, Y, Z, T *field.Element) (*EdwardsPoint, error) {
	if !isOnCurve(X, Y, Z, T) {
		return nil, ErrInvalidPoint
	}
	v.x.Set(X)
	v.y.Set(Y)
	v.z.Set(Z)
	v.t.Set(T)
	return v, nil
}

func isOnCurve(X, Y, Z, T *field.Element) bool {
	if Z.IsZero() == 1 {
		return false
	}

	var lhs, rhs field.Element
	XX := new(field.Element).Square(X)
	YY := new(field.Element).Square(Y)
	ZZ := new(field.Element).Square(Z)
	TT := new(field.Element).Square(T)
	// -x² + y² = 1 + dx²y²
	// -(X/Z)² + (Y/Z)² = 1 + d(T/Z)²
	// -X² + Y² = Z² + dT²
	lhs.Subtract(YY, XX)
	rhs.Multiply(edwardsD, TT).Add(&rhs, ZZ)
	if lhs.Equal(&rhs) != 1 {
		return false
	}
	// xy = T/Z
	// XY/Z² = T/Z
	// XY = TZ
	lhs.Multiply(X, Y)
	rhs.Multiply(T, Z)
	return lhs.Equal(&rhs) == 1
}

// ExtendedCoordinates returns v in extended coordinates (X:Y:Z:T) where
// x = X/Z, y = Y/Z, and xy = T/Z.
func (v *EdwardsPoint) ExtendedCoordinates() (X, Y, Z, T *field.Element) {
	checkInitialized(v)
	return new(field.Element).Set(&v.x), new(field.Element).Set(&v.y),
		new(field.Element).Set(&v.z), new(field.Element).Set(&v.t)
}

// SetHash sets v to a point derived from the 64-byte digest of h. The
// first half of the digest is mapped to the Montgomery curve with
// Elligator 2, lifted to Edwards form using the top bit as the sign, and
// multiplied by the cofactor, so the result lies in the prime-order
// subgroup. If h does not produce 64 bytes, SetHash returns nil and
// [ErrInvalidHash].
//
// This map is not indifferentiable from a random oracle. Protocols that
// need a uniform group element should use [RistrettoPoint.SetHash].
func (v *EdwardsPoint) SetHash(h hash.Hash) (*EdwardsPoint, error) {
	if h.Size() != 64 {
		return nil, ErrInvalidHash
	}
	var digest [64]byte
	h.Sum(digest[:0])

	sign := int(digest[31] >> 7)
	r, err := new(field.Element).SetBytes(digest[:32])
	if err != nil {
		return nil, err
	}

	u := elligatorEncode(r)
	p, err := u.ToEdwards(sign)
	if err != nil {
		return nil, fmt.Errorf("curve25519: elligator output is not on the curve: %w", err)
	}
	return v.MultByCofactor(p), nil
}

// Equal returns 1 if v is equivalent to u, and 0 otherwise.
func (v *EdwardsPoint) Equal(u *EdwardsPoint) int {
	checkInitialized(v, u)

	var t1, t2, t3, t4 field.Element
	t1.Multiply(&v.x, &u.z)
	t2.Multiply(&u.x, &v.z)
	t3.Multiply(&v.y, &u.z)
	t4.Multiply(&u.y, &v.z)

	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsIdentity returns 1 if v is the identity point, and 0 otherwise.
func (v *EdwardsPoint) IsIdentity() int {
	checkInitialized(v)
	// X = 0 and Y = Z
	return v.x.IsZero() & v.y.Equal(&v.z)
}

// Add sets v = p + q, and returns v.
func (v *EdwardsPoint) Add(p, q *EdwardsPoint) *EdwardsPoint {
	checkInitialized(p, q)
	qCached := new(projectiveNielsPoint).FromExtended(q)
	result := new(completedPoint).Add(p, qCached)
	return v.fromCompleted(result)
}

// Subtract sets v = p - q, and returns v.
func (v *EdwardsPoint) Subtract(p, q *EdwardsPoint) *EdwardsPoint {
	checkInitialized(p, q)
	qCached := new(projectiveNielsPoint).FromExtended(q)
	result := new(completedPoint).Sub(p, qCached)
	return v.fromCompleted(result)
}

// Double sets v = p + p, and returns v.
func (v *EdwardsPoint) Double(p *EdwardsPoint) *EdwardsPoint {
	checkInitialized(p)
	var pp projectivePoint
	pp.FromExtended(p)
	return v.fromCompleted(new(completedPoint).Double(&pp))
}

// Negate sets v = -p, and returns v.
func (v *EdwardsPoint) Negate(p *EdwardsPoint) *EdwardsPoint {
	checkInitialized(p)
	v.x.Negate(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.t.Negate(&p.t)
	return v
}

// MultByCofactor sets v = 8 * p, and returns v.
func (v *EdwardsPoint) MultByCofactor(p *EdwardsPoint) *EdwardsPoint {
	return v.MultByPow2(p, 3)
}

// MultByPow2 sets v = 2^k * p, and returns v.
func (v *EdwardsPoint) MultByPow2(p *EdwardsPoint, k uint) *EdwardsPoint {
	checkInitialized(p)
	if k == 0 {
		return v.Set(p)
	}

	var s projectivePoint
	var r completedPoint
	s.FromExtended(p)
	for i := uint(0); i < k-1; i++ {
		s.FromCompleted(r.Double(&s))
	}
	// Unroll the last doubling to go straight to extended coordinates.
	return v.fromCompleted(r.Double(&s))
}

// IsSmallOrder reports whether v is in the torsion subgroup E[8], that is,
// whether 8 * v is the identity.
func (v *EdwardsPoint) IsSmallOrder() bool {
	return new(EdwardsPoint).MultByCofactor(v).IsIdentity() == 1
}

// IsTorsionFree reports whether v is in the prime-order subgroup generated
// by the basepoint, that is, whether l * v is the identity.
func (v *EdwardsPoint) IsTorsionFree() bool {
	return new(EdwardsPoint).scalarMultBytes(&scalarOrder, v).IsIdentity() == 1
}

// ToMontgomery returns the u coordinate of the Montgomery point
// birationally equivalent to v. The identity maps to u = 0.
func (v *EdwardsPoint) ToMontgomery() MontgomeryPoint {
	checkInitialized(v)

	// RFC 7748, Section 4.1 provides the bilinear map to calculate the
	// Montgomery u-coordinate
	//
	//              u = (1 + y) / (1 - y)
	//
	// where y = Y / Z, so u = (Z + Y) / (Z - Y).

	var n, d, u field.Element
	n.Add(&v.z, &v.y)
	d.Subtract(&v.z, &v.y)
	u.Multiply(&n, d.Invert(&d))

	var out MontgomeryPoint
	u.FillBytes(out[:])
	return out
}
