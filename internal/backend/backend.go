// Package backend defines the arithmetic contracts that every limb
// representation of GF(2^255-19) and of the scalar field must satisfy.
//
// Concrete implementations live in the u64 and u32 subpackages. Exactly one
// of them is compiled into the field and curve25519 packages, selected by
// build tags, and nothing outside those two packages touches limbs.
package backend

// Field is implemented by *E for every field element representation E.
//
// All methods write their result to the receiver and return it, and all
// arguments and receivers are allowed to alias. Add, Subtract, Negate,
// Multiply and Square leave the receiver weakly reduced, so any sequence of
// calls is free of limb overflow.
type Field[F any] interface {
	Zero() F
	One() F
	Set(a F) F
	// SetBytes decodes a 32-byte little-endian value, ignoring the top bit.
	SetBytes(b *[32]byte) F
	// Bytes writes the canonical encoding, the unique value in [0, p).
	Bytes(out *[32]byte)
	Add(a, b F) F
	Subtract(a, b F) F
	Negate(a F) F
	Multiply(a, b F) F
	Square(a F) F
	// Select sets the receiver to a if cond == 1, and to b if cond == 0.
	Select(a, b F, cond int) F
	// Swap swaps the receiver and b if cond == 1.
	Swap(b F, cond int)
}

// Scalar is implemented by *S for every unpacked scalar representation S.
//
// Inputs to Add, Subtract and the Montgomery operations must be fully
// reduced modulo the group order l. SetBytes accepts any 256-bit value and
// SetWideBytes any 512-bit value, and both produce reduced results.
type Scalar[S any] interface {
	// SetBytes unpacks 32 bytes into limbs without reduction.
	SetBytes(b *[32]byte) S
	// SetWideBytes reduces a 64-byte little-endian value modulo l.
	SetWideBytes(b *[64]byte) S
	// Reduce sets the receiver to a mod l for any unpacked 256-bit a.
	Reduce(a S) S
	// Bytes packs the limbs into 32 little-endian bytes.
	Bytes(out *[32]byte)
	Add(a, b S) S
	Subtract(a, b S) S
	Multiply(a, b S) S
	MontgomeryMultiply(a, b S) S
	MontgomerySquare(a S) S
	ToMontgomery(a S) S
	FromMontgomery(a S) S
}
