package curve25519

// Group is the set of operations shared by [EdwardsPoint] and
// [RistrettoPoint], for code that is generic over the group in use.
type Group[P any] interface {
	Identity() P
	Set(u P) P
	Add(p, q P) P
	Subtract(p, q P) P
	Negate(p P) P
	Double(p P) P
	ScalarMult(x *Scalar, p P) P
	ScalarBaseMult(x *Scalar) P
	VarTimeDoubleScalarBaseMult(a *Scalar, A P, b *Scalar) P
	MultiScalarMult(scalars []*Scalar, points []P) P
	VarTimeMultiScalarMult(scalars []*Scalar, points []P) P
	Equal(u P) int
	IsIdentity() int
	Bytes() []byte
}

var (
	_ Group[*EdwardsPoint]   = (*EdwardsPoint)(nil)
	_ Group[*RistrettoPoint] = (*RistrettoPoint)(nil)
)

// Sum sets v to the sum of points, and returns v. The sum of no points is
// the identity.
func Sum[P Group[P]](v P, points ...P) P {
	v.Identity()
	for _, p := range points {
		v.Add(v, p)
	}
	return v
}
