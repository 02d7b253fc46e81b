package curve25519

// VartimePrecomputedStraus speeds up repeated variable-time multiscalar
// multiplications that share a set of static points, such as the
// generators of a commitment scheme.
//
// Each static point gets a width-8 NAF table of its odd multiples in affine
// form, built once. Dynamic points, supplied per call, get the smaller
// width-5 tables used by [EdwardsPoint.VarTimeMultiScalarMult].
type VartimePrecomputedStraus struct {
	static []nafLookupTable8
}

// NewVartimePrecomputedStraus precomputes tables for the static points.
func NewVartimePrecomputedStraus(static []*EdwardsPoint) *VartimePrecomputedStraus {
	checkInitialized(static...)
	p := &VartimePrecomputedStraus{static: make([]nafLookupTable8, len(static))}
	for i := range static {
		p.static[i].FromExtended(static[i])
	}
	return p
}

// Len returns the number of static points.
func (p *VartimePrecomputedStraus) Len() int {
	return len(p.static)
}

// VarTimeMultiScalarMult sets v to the sum of staticScalars[i] times the
// i-th static point, and returns v. The number of scalars must match the
// number of static points, or it panics.
func (p *VartimePrecomputedStraus) VarTimeMultiScalarMult(v *EdwardsPoint, staticScalars []*Scalar) *EdwardsPoint {
	return p.VarTimeMixedMultiScalarMult(v, staticScalars, nil, nil)
}

// VarTimeMixedMultiScalarMult sets v to
//
//	sum(staticScalars[i] * static[i]) + sum(dynamicScalars[j] * dynamicPoints[j])
//
// and returns v. staticScalars must have one entry per static point, and
// dynamicScalars and dynamicPoints must have the same length, or it panics.
//
// Execution time depends on the inputs.
func (p *VartimePrecomputedStraus) VarTimeMixedMultiScalarMult(v *EdwardsPoint, staticScalars, dynamicScalars []*Scalar, dynamicPoints []*EdwardsPoint) *EdwardsPoint {
	if len(staticScalars) != len(p.static) {
		panic("curve25519: number of static scalars does not match precomputed points")
	}
	checkMultiScalarLengths(dynamicScalars, dynamicPoints)

	staticNafs := make([][256]int8, len(staticScalars))
	for i := range staticNafs {
		staticNafs[i] = staticScalars[i].nonAdjacentForm(8)
	}
	dynamicNafs := make([][256]int8, len(dynamicScalars))
	for i := range dynamicNafs {
		dynamicNafs[i] = dynamicScalars[i].nonAdjacentForm(5)
	}
	dynamicTables := make([]nafLookupTable5, len(dynamicPoints))
	for i := range dynamicTables {
		dynamicTables[i].FromExtended(dynamicPoints[i])
	}

	// Find the highest bit with a nonzero coefficient.
	top := -1
	for i := 255; i >= 0 && top < 0; i-- {
		for j := range staticNafs {
			if staticNafs[j][i] != 0 {
				top = i
			}
		}
		for j := range dynamicNafs {
			if dynamicNafs[j][i] != 0 {
				top = i
			}
		}
	}

	multDynamic := &projectiveNielsPoint{}
	multStatic := &affineNielsPoint{}
	tmp1 := &completedPoint{}
	tmp2 := new(projectivePoint).Identity()

	for i := top; i >= 0; i-- {
		tmp1.Double(tmp2)

		for j := range dynamicNafs {
			if digit := dynamicNafs[j][i]; digit > 0 {
				v.fromCompleted(tmp1)
				dynamicTables[j].SelectInto(multDynamic, digit)
				tmp1.Add(v, multDynamic)
			} else if digit < 0 {
				v.fromCompleted(tmp1)
				dynamicTables[j].SelectInto(multDynamic, -digit)
				tmp1.Sub(v, multDynamic)
			}
		}

		for j := range staticNafs {
			if digit := staticNafs[j][i]; digit > 0 {
				v.fromCompleted(tmp1)
				p.static[j].SelectInto(multStatic, digit)
				tmp1.AddAffine(v, multStatic)
			} else if digit < 0 {
				v.fromCompleted(tmp1)
				p.static[j].SelectInto(multStatic, -digit)
				tmp1.SubAffine(v, multStatic)
			}
		}

		tmp2.FromCompleted(tmp1)
	}

	return v.fromProjective(tmp2)
}
