package curve25519

import "github.com/AlexanderYastrebov/curve25519/field"

// Internal point models. EdwardsPoint uses extended coordinates (X:Y:Z:T);
// the models below trade the T coordinate or precompute sums to make
// doubling and repeated additions cheaper. See
// https://eprint.iacr.org/2008/522 and the ref10 P1xP1/P2/cached naming.

// completedPoint is a point ((X:Z), (Y:T)) on the P1 x P1 model, with
// x = X/Z and y = Y/T. It is the output of additions and doublings.
type completedPoint struct {
	X, Y, Z, T field.Element
}

// projectivePoint is a point (X:Y:Z) with x = X/Z and y = Y/Z. Doubling
// from it does not need T.
type projectivePoint struct {
	X, Y, Z field.Element
}

// projectiveNielsPoint caches (Y+X, Y-X, Z, 2dT) of an extended point to
// speed up additions of the same point.
type projectiveNielsPoint struct {
	YplusX, YminusX, Z, T2d field.Element
}

// affineNielsPoint is a projectiveNielsPoint with Z = 1, for tables built
// once ahead of time.
type affineNielsPoint struct {
	YplusX, YminusX, XY2d field.Element
}

// Constructors.

func (v *projectivePoint) Identity() *projectivePoint {
	v.X.Zero()
	v.Y.One()
	v.Z.One()
	return v
}

func (v *projectiveNielsPoint) Identity() *projectiveNielsPoint {
	v.YplusX.One()
	v.YminusX.One()
	v.Z.One()
	v.T2d.Zero()
	return v
}

func (v *affineNielsPoint) Identity() *affineNielsPoint {
	v.YplusX.One()
	v.YminusX.One()
	v.XY2d.Zero()
	return v
}

// Conversions.

func (v *projectivePoint) FromCompleted(p *completedPoint) *projectivePoint {
	v.X.Multiply(&p.X, &p.T)
	v.Y.Multiply(&p.Y, &p.Z)
	v.Z.Multiply(&p.Z, &p.T)
	return v
}

func (v *projectivePoint) FromExtended(p *EdwardsPoint) *projectivePoint {
	v.X.Set(&p.x)
	v.Y.Set(&p.y)
	v.Z.Set(&p.z)
	return v
}

func (v *EdwardsPoint) fromCompleted(p *completedPoint) *EdwardsPoint {
	v.x.Multiply(&p.X, &p.T)
	v.y.Multiply(&p.Y, &p.Z)
	v.z.Multiply(&p.Z, &p.T)
	v.t.Multiply(&p.X, &p.Y)
	return v
}

func (v *EdwardsPoint) fromProjective(p *projectivePoint) *EdwardsPoint {
	v.x.Multiply(&p.X, &p.Z)
	v.y.Multiply(&p.Y, &p.Z)
	v.z.Square(&p.Z)
	v.t.Multiply(&p.X, &p.Y)
	return v
}

func (v *projectiveNielsPoint) FromExtended(p *EdwardsPoint) *projectiveNielsPoint {
	v.YplusX.Add(&p.y, &p.x)
	v.YminusX.Subtract(&p.y, &p.x)
	v.Z.Set(&p.z)
	v.T2d.Multiply(&p.t, edwardsD2)
	return v
}

func (v *affineNielsPoint) FromExtended(p *EdwardsPoint) *affineNielsPoint {
	var invZ, x, y field.Element
	invZ.Invert(&p.z)
	x.Multiply(&p.x, &invZ)
	y.Multiply(&p.y, &invZ)

	v.YplusX.Add(&y, &x)
	v.YminusX.Subtract(&y, &x)
	v.XY2d.Multiply(&x, &y)
	v.XY2d.Multiply(&v.XY2d, edwardsD2)
	return v
}

// (Re)addition and subtraction.

func (v *completedPoint) Add(p *EdwardsPoint, q *projectiveNielsPoint) *completedPoint {
	var YplusX, YminusX, PP, MM, TT2d, ZZ2 field.Element

	YplusX.Add(&p.y, &p.x)
	YminusX.Subtract(&p.y, &p.x)

	PP.Multiply(&YplusX, &q.YplusX)
	MM.Multiply(&YminusX, &q.YminusX)
	TT2d.Multiply(&p.t, &q.T2d)
	ZZ2.Multiply(&p.z, &q.Z)

	ZZ2.Add(&ZZ2, &ZZ2)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Add(&ZZ2, &TT2d)
	v.T.Subtract(&ZZ2, &TT2d)
	return v
}

func (v *completedPoint) Sub(p *EdwardsPoint, q *projectiveNielsPoint) *completedPoint {
	var YplusX, YminusX, PP, MM, TT2d, ZZ2 field.Element

	YplusX.Add(&p.y, &p.x)
	YminusX.Subtract(&p.y, &p.x)

	PP.Multiply(&YplusX, &q.YminusX) // flipped sign
	MM.Multiply(&YminusX, &q.YplusX) // flipped sign
	TT2d.Multiply(&p.t, &q.T2d)
	ZZ2.Multiply(&p.z, &q.Z)

	ZZ2.Add(&ZZ2, &ZZ2)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Subtract(&ZZ2, &TT2d) // flipped sign
	v.T.Add(&ZZ2, &TT2d)      // flipped sign
	return v
}

func (v *completedPoint) AddAffine(p *EdwardsPoint, q *affineNielsPoint) *completedPoint {
	var YplusX, YminusX, PP, MM, TT2d, Z2 field.Element

	YplusX.Add(&p.y, &p.x)
	YminusX.Subtract(&p.y, &p.x)

	PP.Multiply(&YplusX, &q.YplusX)
	MM.Multiply(&YminusX, &q.YminusX)
	TT2d.Multiply(&p.t, &q.XY2d)

	Z2.Add(&p.z, &p.z)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Add(&Z2, &TT2d)
	v.T.Subtract(&Z2, &TT2d)
	return v
}

func (v *completedPoint) SubAffine(p *EdwardsPoint, q *affineNielsPoint) *completedPoint {
	var YplusX, YminusX, PP, MM, TT2d, Z2 field.Element

	YplusX.Add(&p.y, &p.x)
	YminusX.Subtract(&p.y, &p.x)

	PP.Multiply(&YplusX, &q.YminusX) // flipped sign
	MM.Multiply(&YminusX, &q.YplusX) // flipped sign
	TT2d.Multiply(&p.t, &q.XY2d)

	Z2.Add(&p.z, &p.z)

	v.X.Subtract(&PP, &MM)
	v.Y.Add(&PP, &MM)
	v.Z.Subtract(&Z2, &TT2d) // flipped sign
	v.T.Add(&Z2, &TT2d)      // flipped sign
	return v
}

// Doubling.

func (v *completedPoint) Double(p *projectivePoint) *completedPoint {
	var XX, YY, ZZ2, XplusYsq field.Element

	XX.Square(&p.X)
	YY.Square(&p.Y)
	ZZ2.Square(&p.Z)
	ZZ2.Add(&ZZ2, &ZZ2)
	XplusYsq.Add(&p.X, &p.Y)
	XplusYsq.Square(&XplusYsq)

	v.Y.Add(&YY, &XX)
	v.Z.Subtract(&YY, &XX)

	v.X.Subtract(&XplusYsq, &v.Y)
	v.T.Subtract(&ZZ2, &v.Z)
	return v
}

// Constant-time operations.

// Select sets v to a if cond == 1 and to b if cond == 0.
func (v *projectiveNielsPoint) Select(a, b *projectiveNielsPoint, cond int) *projectiveNielsPoint {
	v.YplusX.Select(&a.YplusX, &b.YplusX, cond)
	v.YminusX.Select(&a.YminusX, &b.YminusX, cond)
	v.Z.Select(&a.Z, &b.Z, cond)
	v.T2d.Select(&a.T2d, &b.T2d, cond)
	return v
}

// Select sets v to a if cond == 1 and to b if cond == 0.
func (v *affineNielsPoint) Select(a, b *affineNielsPoint, cond int) *affineNielsPoint {
	v.YplusX.Select(&a.YplusX, &b.YplusX, cond)
	v.YminusX.Select(&a.YminusX, &b.YminusX, cond)
	v.XY2d.Select(&a.XY2d, &b.XY2d, cond)
	return v
}

// CondNeg negates v if cond == 1 and leaves it unchanged if cond == 0.
func (v *projectiveNielsPoint) CondNeg(cond int) *projectiveNielsPoint {
	v.YplusX.Swap(&v.YminusX, cond)
	v.T2d.CondNegate(&v.T2d, cond)
	return v
}

// CondNeg negates v if cond == 1 and leaves it unchanged if cond == 0.
func (v *affineNielsPoint) CondNeg(cond int) *affineNielsPoint {
	v.YplusX.Swap(&v.YminusX, cond)
	v.XY2d.CondNegate(&v.XY2d, cond)
	return v
}
