// Package field implements constant-time arithmetic modulo 2^255-19.
//
// [Element] type API is the same as [filippo.io/edwards25519/field.Element],
// extended with conditional negation and batch inversion.
//
// Limbs:
// Element wraps one of two interchangeable limb representations, chosen at
// build time. 64-bit targets use five 51-bit limbs with 128-bit products,
// 32-bit targets (386, arm, mips, mipsle) use ten limbs of alternating 26
// and 25 bits. The curve25519_u64 and curve25519_u32 build tags override
// the default. [Backend] reports which one is compiled in. Both produce
// identical canonical encodings.
package field
