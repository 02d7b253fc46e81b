package curve25519

import "fmt"

// EdwardsBasepointTable precomputes multiples of a fixed point for
// constant-time fixed-base scalar multiplication in radix 2^w.
//
// The table holds ceil(n/2) rows, where n is the number of radix-2^w
// digits of a scalar, and row i stores j * (2^w)^(2i) * B for
// j = 1..2^(w-1). A product s*B is then the sum of one lookup per digit,
// with the odd digits summed first and shifted by 2^w.
//
// Larger w gives fewer additions and bigger tables. A table is read-only
// once built and safe for concurrent use.
type EdwardsBasepointTable struct {
	w      int
	base   EdwardsPoint
	tables []affineLookupTable
}

// NewEdwardsBasepointTable builds the radix-2^w table of b. It panics if
// w is not between 4 and 8.
func NewEdwardsBasepointTable(b *EdwardsPoint, w int) *EdwardsBasepointTable {
	if w < 4 || w > 8 {
		panic(fmt.Sprintf("curve25519: invalid basepoint table radix 2^%d", w))
	}
	checkInitialized(b)

	rows := (radix2wDigits(w) + 1) / 2
	t := &EdwardsBasepointTable{
		w:      w,
		tables: make([]affineLookupTable, rows),
	}
	t.base.Set(b)

	var p EdwardsPoint
	p.Set(b)
	for i := range t.tables {
		t.tables[i] = newAffineLookupTable(&p, 1<<(w-1))
		p.MultByPow2(&p, uint(2*w))
	}
	return t
}

// Basepoint returns the point the table was built from.
func (t *EdwardsBasepointTable) Basepoint() *EdwardsPoint {
	return new(EdwardsPoint).Set(&t.base)
}

// Radix returns w, where the table uses radix 2^w digits.
func (t *EdwardsBasepointTable) Radix() int {
	return t.w
}

// ScalarMult returns s * B, where B is the table's basepoint.
func (t *EdwardsBasepointTable) ScalarMult(s *Scalar) *EdwardsPoint {
	return t.scalarMultInto(new(EdwardsPoint), s)
}

func (t *EdwardsBasepointTable) scalarMultInto(v *EdwardsPoint, s *Scalar) *EdwardsPoint {
	// Write the scalar as
	//
	//     s = s_0 + s_1*16^1 + ... + s_63*16^63
	//
	// (shown here for w = 4), with -8 <= s_i < 8. Then
	//
	//     s*B = s_0*B + s_1*16^1*B + ... + s_63*16^63*B
	//         = (s_0*B + s_2*16^2*B + ... + s_62*16^62*B) +
	//           16*(s_1*B + s_3*16^2*B + ... + s_63*16^62*B)
	//
	// so one table of j*16^(2i)*B rows serves both the odd and the even
	// digits.
	digits := s.toRadix2w(t.w)
	n := radix2wDigits(t.w)

	multiple := &affineNielsPoint{}
	tmp := &completedPoint{}
	v.Identity()
	for i := 1; i < n; i += 2 {
		t.tables[i/2].SelectInto(multiple, digits[i])
		v.fromCompleted(tmp.AddAffine(v, multiple))
	}

	v.MultByPow2(v, uint(t.w))

	for i := 0; i < n; i += 2 {
		t.tables[i/2].SelectInto(multiple, digits[i])
		v.fromCompleted(tmp.AddAffine(v, multiple))
	}
	return v
}
