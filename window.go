package curve25519

import (
	"crypto/subtle"

	"github.com/AlexanderYastrebov/curve25519/field"
)

// A lookupTable holds the multiples P, 2P, ..., 8P of a point for
// constant-time selection with signed radix-16 digits.
type lookupTable struct {
	points [8]projectiveNielsPoint
}

// An affineLookupTable holds the multiples P, 2P, ..., nP of a point in
// affine Niels form, where n = 2^(w-1) for a radix 2^w basepoint table.
type affineLookupTable struct {
	points []affineNielsPoint
}

// A nafLookupTable5 holds the odd multiples P, 3P, ..., 15P of a point for
// variable-time use with width-5 NAF digits.
type nafLookupTable5 struct {
	points [8]projectiveNielsPoint
}

// A nafLookupTable8 holds the odd multiples P, 3P, ..., 127P of a point in
// affine Niels form for variable-time use with width-8 NAF digits.
type nafLookupTable8 struct {
	points [64]affineNielsPoint
}

// Constructors.

// FromExtended builds a lookup table of the multiples of q.
func (v *lookupTable) FromExtended(q *EdwardsPoint) {
	// Goal: v.points[i] = (i+1)*Q, i.e., Q, 2Q, ..., 8Q
	// This allows lookup of -8Q, ..., -Q, 0, Q, ..., 8Q
	v.points[0].FromExtended(q)
	tmpP3 := EdwardsPoint{}
	tmpP1xP1 := completedPoint{}
	for i := 0; i < 7; i++ {
		// Compute (i+1)*Q + Q = (i+2)*Q
		tmpP3.fromCompleted(tmpP1xP1.Add(q, &v.points[i]))
		v.points[i+1].FromExtended(&tmpP3)
	}
}

// newAffineLookupTable builds a table of the multiples P, 2P, ..., nP of q
// in affine form, using a single field inversion.
func newAffineLookupTable(q *EdwardsPoint, n int) affineLookupTable {
	multiples := make([]EdwardsPoint, n)
	multiples[0].Set(q)
	var cached projectiveNielsPoint
	cached.FromExtended(q)
	var tmp completedPoint
	for i := 1; i < n; i++ {
		multiples[i].fromCompleted(tmp.Add(&multiples[i-1], &cached))
	}

	t := affineLookupTable{points: make([]affineNielsPoint, n)}
	affineNielsBatch(t.points, multiples)
	return t
}

// affineNielsBatch sets out[i] to the affine Niels form of points[i],
// sharing one inversion between all the Z coordinates.
func affineNielsBatch(out []affineNielsPoint, points []EdwardsPoint) {
	zInv := make([]field.Element, len(points))
	for i := range points {
		zInv[i].Set(&points[i].z)
	}
	field.BatchInvert(zInv)

	var x, y field.Element
	for i := range points {
		x.Multiply(&points[i].x, &zInv[i])
		y.Multiply(&points[i].y, &zInv[i])

		out[i].YplusX.Add(&y, &x)
		out[i].YminusX.Subtract(&y, &x)
		out[i].XY2d.Multiply(&x, &y)
		out[i].XY2d.Multiply(&out[i].XY2d, edwardsD2)
	}
}

// FromExtended builds a table of the odd multiples of q.
func (v *nafLookupTable5) FromExtended(q *EdwardsPoint) {
	// Goal: v.points[i] = (2*i+1)*Q, i.e., Q, 3Q, 5Q, ..., 15Q
	// This allows lookup of -15Q, ..., -3Q, -Q, 0, Q, 3Q, ..., 15Q
	v.points[0].FromExtended(q)
	q2 := EdwardsPoint{}
	q2.Add(q, q)
	tmpP3 := EdwardsPoint{}
	tmpP1xP1 := completedPoint{}
	for i := 0; i < 7; i++ {
		tmpP3.fromCompleted(tmpP1xP1.Add(&q2, &v.points[i]))
		v.points[i+1].FromExtended(&tmpP3)
	}
}

// FromExtended builds a table of the odd multiples of q.
func (v *nafLookupTable8) FromExtended(q *EdwardsPoint) {
	var multiples [64]EdwardsPoint
	multiples[0].Set(q)
	var q2 projectiveNielsPoint
	q2.FromExtended(new(EdwardsPoint).Double(q))
	var tmp completedPoint
	for i := 1; i < len(multiples); i++ {
		multiples[i].fromCompleted(tmp.Add(&multiples[i-1], &q2))
	}
	affineNielsBatch(v.points[:], multiples[:])
}

// Selectors.

// SelectInto sets dest to x*Q, where -8 <= x <= 8, in constant time.
func (v *lookupTable) SelectInto(dest *projectiveNielsPoint, x int8) {
	// Compute xabs = |x|
	xmask := x >> 7
	xabs := uint8((x + xmask) ^ xmask)

	dest.Identity()
	for j := 1; j <= len(v.points); j++ {
		// Set dest = j*Q if |x| = j
		cond := subtle.ConstantTimeByteEq(xabs, uint8(j))
		dest.Select(&v.points[j-1], dest, cond)
	}
	// Now dest = |x|*Q, conditionally negate to get x*Q
	dest.CondNeg(int(xmask & 1))
}

// SelectInto sets dest to x*Q, where |x| is at most the table size, in
// constant time.
func (v *affineLookupTable) SelectInto(dest *affineNielsPoint, x int8) {
	xmask := x >> 7
	xabs := uint8((x + xmask) ^ xmask)

	dest.Identity()
	for j := 1; j <= len(v.points); j++ {
		cond := subtle.ConstantTimeByteEq(xabs, uint8(j))
		dest.Select(&v.points[j-1], dest, cond)
	}
	dest.CondNeg(int(xmask & 1))
}

// SelectInto sets dest to x*Q, where x is an odd integer in [1, 15]. It
// runs in variable time.
func (v *nafLookupTable5) SelectInto(dest *projectiveNielsPoint, x int8) {
	*dest = v.points[x/2]
}

// SelectInto sets dest to x*Q, where x is an odd integer in [1, 127]. It
// runs in variable time.
func (v *nafLookupTable8) SelectInto(dest *affineNielsPoint, x int8) {
	*dest = v.points[x/2]
}
