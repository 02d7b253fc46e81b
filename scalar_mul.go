package curve25519

// ScalarBaseMult sets v = x * B, where B is the canonical generator, and
// returns v.
//
// The scalar multiplication is done in constant time.
func (v *EdwardsPoint) ScalarBaseMult(x *Scalar) *EdwardsPoint {
	return generatorTable().scalarMultInto(v, x)
}

// ScalarBaseMultClamped sets v = c * B, where c is ClampInteger(b), and
// returns v. Since B has prime order, c is reduced modulo l first.
func (v *EdwardsPoint) ScalarBaseMultClamped(b [32]byte) *EdwardsPoint {
	c := ClampInteger(b)
	s, _ := new(Scalar).SetBytesModOrder(c[:])
	return v.ScalarBaseMult(s)
}

// ScalarMult sets v = x * q, and returns v.
//
// The scalar multiplication is done in constant time.
func (v *EdwardsPoint) ScalarMult(x *Scalar, q *EdwardsPoint) *EdwardsPoint {
	return v.scalarMultBytes(&x.s, q)
}

// ScalarMultClamped sets v = c * q, where c is ClampInteger(b), and
// returns v. Unlike [EdwardsPoint.ScalarMult], the integer c is used as is,
// so the result is also correct for points outside the prime-order
// subgroup.
func (v *EdwardsPoint) ScalarMultClamped(b [32]byte, q *EdwardsPoint) *EdwardsPoint {
	c := ClampInteger(b)
	return v.scalarMultBytes(&c, q)
}

// scalarMultBytes sets v = x * q for a little-endian integer x below 2^255.
func (v *EdwardsPoint) scalarMultBytes(x *[32]byte, q *EdwardsPoint) *EdwardsPoint {
	checkInitialized(q)

	var table lookupTable
	table.FromExtended(q)

	// Write x = x_0 + x_1*16^1 + ... + x_63*16^63,
	// with -8 <= x_i < 8, and compute
	//
	//     x*Q = x_0*Q + 16*(x_1*Q + 16*( ... + 16*(x_63*Q) ... ))
	//
	// using the table for the multiples of Q.
	digits := signedRadix16(x)

	multiple := &projectiveNielsPoint{}
	tmp1 := &completedPoint{}
	tmp2 := &projectivePoint{}

	// Unwrap first loop iteration to save computing 16*identity
	table.SelectInto(multiple, digits[63])
	v.Identity()
	tmp1.Add(v, multiple) // tmp1 = x_63*Q in P1xP1 coords
	for i := 62; i >= 0; i-- {
		tmp2.FromCompleted(tmp1) // tmp2 =    (prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 =  2*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  2*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 =  4*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  4*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 =  8*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  8*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 = 16*(prev) in P1xP1 coords
		v.fromCompleted(tmp1)    // now v = 16*(prev) in P3 coords
		table.SelectInto(multiple, digits[i])
		tmp1.Add(v, multiple) // tmp1 = x_i*Q + 16*(prev) in P1xP1 coords
	}
	return v.fromCompleted(tmp1)
}

// VarTimeDoubleScalarBaseMult sets v = a * A + b * B, where B is the
// canonical generator, and returns v.
//
// Execution time depends on the inputs.
func (v *EdwardsPoint) VarTimeDoubleScalarBaseMult(a *Scalar, A *EdwardsPoint, b *Scalar) *EdwardsPoint {
	checkInitialized(A)

	// Similarly to the single variable-base approach, we compute
	// digits and use them with a lookup table. However, because
	// we are allowed to do variable-time operations, we don't
	// need constant-time lookups or constant-time digit
	// computations.
	//
	// So we use a non-adjacent form of some width w instead of
	// radix 16. This is like a binary representation (one digit
	// for each binary place) but we allow the digits to grow in
	// magnitude up to 2^{w-1} so that the nonzero digits are as
	// sparse as possible. Intuitively, this "condenses" the
	// "mass" of the scalar onto sparse coefficients (meaning
	// fewer additions).

	basepointNafTable := generatorNafTable()
	var aTable nafLookupTable5
	aTable.FromExtended(A)
	// Because the basepoint is fixed, we can use a wider NAF
	// corresponding to a bigger table.
	aNaf := a.nonAdjacentForm(5)
	bNaf := b.nonAdjacentForm(8)

	// Find the first nonzero coefficient.
	i := 255
	for ; i >= 0; i-- {
		if aNaf[i] != 0 || bNaf[i] != 0 {
			break
		}
	}

	multA := &projectiveNielsPoint{}
	multB := &affineNielsPoint{}
	tmp1 := &completedPoint{}
	tmp2 := new(projectivePoint).Identity()

	// Move from high to low bits, doubling the accumulator
	// at each iteration and checking whether there is a nonzero
	// coefficient to look up a multiple of.
	for ; i >= 0; i-- {
		tmp1.Double(tmp2)

		// Only update v if we have a nonzero coeff to add in.
		if aNaf[i] > 0 {
			v.fromCompleted(tmp1)
			aTable.SelectInto(multA, aNaf[i])
			tmp1.Add(v, multA)
		} else if aNaf[i] < 0 {
			v.fromCompleted(tmp1)
			aTable.SelectInto(multA, -aNaf[i])
			tmp1.Sub(v, multA)
		}

		if bNaf[i] > 0 {
			v.fromCompleted(tmp1)
			basepointNafTable.SelectInto(multB, bNaf[i])
			tmp1.AddAffine(v, multB)
		} else if bNaf[i] < 0 {
			v.fromCompleted(tmp1)
			basepointNafTable.SelectInto(multB, -bNaf[i])
			tmp1.SubAffine(v, multB)
		}

		tmp2.FromCompleted(tmp1)
	}

	return v.fromProjective(tmp2)
}

func checkMultiScalarLengths(scalars []*Scalar, points []*EdwardsPoint) {
	if len(scalars) != len(points) {
		panic("curve25519: called MultiScalarMult with different size inputs")
	}
	checkInitialized(points...)
}

// MultiScalarMult sets v = sum(scalars[i] * points[i]), and returns v.
//
// Execution time depends only on the lengths of the two slices, which must
// match, or MultiScalarMult will panic.
func (v *EdwardsPoint) MultiScalarMult(scalars []*Scalar, points []*EdwardsPoint) *EdwardsPoint {
	checkMultiScalarLengths(scalars, points)

	// Proceed as in the single-base case, but share doublings
	// between each point in the multiscalar equation.

	// Build lookup tables for each point
	tables := make([]lookupTable, len(points))
	for i := range tables {
		tables[i].FromExtended(points[i])
	}
	// Compute signed radix-16 digits for each scalar
	digits := make([][64]int8, len(scalars))
	for i := range digits {
		digits[i] = scalars[i].signedRadix16()
	}

	// Unwrap first loop iteration to save computing 16*identity
	multiple := &projectiveNielsPoint{}
	tmp1 := &completedPoint{}
	tmp2 := &projectivePoint{}
	// Lookup-and-add the appropriate multiple of each input point
	v.Identity()
	for j := range tables {
		tables[j].SelectInto(multiple, digits[j][63])
		tmp1.Add(v, multiple) // tmp1 = v + x_(j,63)*Q in P1xP1 coords
		v.fromCompleted(tmp1) // update v
	}
	tmp2.FromExtended(v) // set up tmp2 = v in P2 coords for next iteration
	for i := 62; i >= 0; i-- {
		tmp1.Double(tmp2)        // tmp1 =  2*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  2*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 =  4*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  4*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 =  8*(prev) in P1xP1 coords
		tmp2.FromCompleted(tmp1) // tmp2 =  8*(prev) in P2 coords
		tmp1.Double(tmp2)        // tmp1 = 16*(prev) in P1xP1 coords
		v.fromCompleted(tmp1)    //    v = 16*(prev) in P3 coords
		// Lookup-and-add the appropriate multiple of each input point
		for j := range tables {
			tables[j].SelectInto(multiple, digits[j][i])
			tmp1.Add(v, multiple) // tmp1 = v + x_(j,i)*Q in P1xP1 coords
			v.fromCompleted(tmp1) // update v
		}
		tmp2.FromExtended(v) // set up tmp2 = v in P2 coords for next iteration
	}
	return v
}

// pippengerThreshold is the number of terms from which
// VarTimeMultiScalarMult switches from Straus to Pippenger.
const pippengerThreshold = 190

// VarTimeMultiScalarMult sets v = sum(scalars[i] * points[i]), and returns v.
//
// Execution time depends on the inputs. The lengths of the two slices must
// match, or VarTimeMultiScalarMult will panic.
func (v *EdwardsPoint) VarTimeMultiScalarMult(scalars []*Scalar, points []*EdwardsPoint) *EdwardsPoint {
	checkMultiScalarLengths(scalars, points)
	if len(scalars) >= pippengerThreshold {
		return v.pippenger(scalars, points)
	}
	return v.varTimeStraus(scalars, points)
}

// varTimeStraus interleaves width-5 NAF expansions of all the scalars over
// a shared chain of doublings.
func (v *EdwardsPoint) varTimeStraus(scalars []*Scalar, points []*EdwardsPoint) *EdwardsPoint {
	// Generalize double-base NAF computation to arbitrary sizes.
	// Here all the points are dynamic, so we only use the smaller
	// tables.

	// Build lookup tables for each point
	tables := make([]nafLookupTable5, len(points))
	for i := range tables {
		tables[i].FromExtended(points[i])
	}
	// Compute a NAF for each scalar
	nafs := make([][256]int8, len(scalars))
	for i := range nafs {
		nafs[i] = scalars[i].nonAdjacentForm(5)
	}

	multiple := &projectiveNielsPoint{}
	tmp1 := &completedPoint{}
	tmp2 := new(projectivePoint).Identity()

	// Move from high to low bits, doubling the accumulator
	// at each iteration and checking whether there is a nonzero
	// coefficient to look up a multiple of.
	//
	// Skip trying to find the first nonzero coefficent, because
	// searching might be more work than a few extra doublings.
	for i := 255; i >= 0; i-- {
		tmp1.Double(tmp2)

		for j := range nafs {
			if nafs[j][i] > 0 {
				v.fromCompleted(tmp1)
				tables[j].SelectInto(multiple, nafs[j][i])
				tmp1.Add(v, multiple)
			} else if nafs[j][i] < 0 {
				v.fromCompleted(tmp1)
				tables[j].SelectInto(multiple, -nafs[j][i])
				tmp1.Sub(v, multiple)
			}
		}

		tmp2.FromCompleted(tmp1)
	}

	return v.fromProjective(tmp2)
}

// pippenger computes the sum with the bucket method. Each scalar is split
// into signed radix-2^w digits; for every digit position the points are
// sorted into 2^(w-1) buckets by digit magnitude, and the buckets are
// summed with a running total so that bucket k contributes k times.
func (v *EdwardsPoint) pippenger(scalars []*Scalar, points []*EdwardsPoint) *EdwardsPoint {
	var w int
	switch size := len(scalars); {
	case size < 500:
		w = 6
	case size < 800:
		w = 7
	default:
		w = 8
	}

	digitsCount := radix2wDigits(w)
	bucketsCount := 1 << (w - 1)

	digits := make([][64]int8, len(scalars))
	for i := range digits {
		digits[i] = scalars[i].toRadix2w(w)
	}
	cached := make([]projectiveNielsPoint, len(points))
	for i := range cached {
		cached[i].FromExtended(points[i])
	}

	buckets := make([]EdwardsPoint, bucketsCount)
	var column, intermediate, sum EdwardsPoint
	var tmp completedPoint

	v.Identity()
	for d := digitsCount - 1; d >= 0; d-- {
		for i := range buckets {
			buckets[i].Identity()
		}

		for i := range digits {
			digit := int(digits[i][d])
			switch {
			case digit > 0:
				b := digit - 1
				buckets[b].fromCompleted(tmp.Add(&buckets[b], &cached[i]))
			case digit < 0:
				b := -digit - 1
				buckets[b].fromCompleted(tmp.Sub(&buckets[b], &cached[i]))
			}
		}

		// Sum the buckets so that bucket k is counted k+1 times:
		// intermediate runs over the suffix sums of the buckets, and
		// column accumulates them.
		intermediate.Set(&buckets[bucketsCount-1])
		column.Set(&buckets[bucketsCount-1])
		for i := bucketsCount - 2; i >= 0; i-- {
			intermediate.Add(&intermediate, &buckets[i])
			column.Add(&column, &intermediate)
		}

		sum.MultByPow2(v, uint(w))
		v.Add(&sum, &column)
	}
	return v
}
