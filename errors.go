package curve25519

import "errors"

var (
	// ErrInvalidLength is returned when an encoding has the wrong size.
	ErrInvalidLength = errors.New("curve25519: invalid input length")

	// ErrNonCanonical is returned when an encoding is in range of the byte
	// representation but is not the unique canonical one.
	ErrNonCanonical = errors.New("curve25519: non-canonical encoding")

	// ErrInvalidPoint is returned when an encoding does not correspond to a
	// point on the curve.
	ErrInvalidPoint = errors.New("curve25519: invalid point encoding")

	// ErrInvalidHash is returned when a hash function does not produce a
	// 64-byte digest.
	ErrInvalidHash = errors.New("curve25519: hash output must be 64 bytes")
)
