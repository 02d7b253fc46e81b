// Package curve25519 implements group operations on Curve25519 in its
// twisted Edwards, Montgomery and Ristretto forms, together with arithmetic
// in the scalar field of order
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// [EdwardsPoint] is the primary representation and uses complete addition
// formulas in extended coordinates. [MontgomeryPoint] supports only the
// x-coordinate ladder. [RistrettoPoint] builds the prime-order group of
// order l as a quotient of the Edwards group.
//
// All operations that handle secret values run in constant time. Functions
// whose name starts with VarTime leak their inputs through timing and must
// only be used with public data.
//
// Field arithmetic lives in the [field] subpackage. The limb representation
// used by both field and scalar arithmetic is chosen at build time, see
// [Backend].
package curve25519
