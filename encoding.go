package curve25519

import (
	"fmt"

	fasthex "github.com/tmthrgd/go-hex"
)

// Text encodings use lowercase hex of the 32-byte encoding.

func marshalHex(b *[32]byte) []byte {
	out := make([]byte, 64)
	fasthex.Encode(out, b[:])
	return out
}

func unmarshalHex(out *[32]byte, text []byte) error {
	if len(text) != 64 {
		return ErrInvalidLength
	}
	var b [32]byte
	if _, err := fasthex.Decode(b[:], text); err != nil {
		return fmt.Errorf("curve25519: decoding hex: %w", err)
	}
	*out = b
	return nil
}

// String returns the hex encoding of s.
func (s *Scalar) String() string {
	return fasthex.EncodeToString(s.s[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (s *Scalar) MarshalText() ([]byte, error) {
	return marshalHex(&s.s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. The decoded bytes
// must be a canonical scalar encoding.
func (s *Scalar) UnmarshalText(text []byte) error {
	var b [32]byte
	if err := unmarshalHex(&b, text); err != nil {
		return err
	}
	_, err := s.SetCanonicalBytes(b[:])
	return err
}

// String returns the hex encoding of c.
func (c CompressedEdwardsY) String() string {
	return fasthex.EncodeToString(c[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (c *CompressedEdwardsY) MarshalText() ([]byte, error) {
	return marshalHex((*[32]byte)(c)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Only the hex is
// checked; use [CompressedEdwardsY.Decompress] to validate the point.
func (c *CompressedEdwardsY) UnmarshalText(text []byte) error {
	return unmarshalHex((*[32]byte)(c), text)
}

// String returns the hex encoding of p.
func (p MontgomeryPoint) String() string {
	return fasthex.EncodeToString(p[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (p *MontgomeryPoint) MarshalText() ([]byte, error) {
	return marshalHex((*[32]byte)(p)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *MontgomeryPoint) UnmarshalText(text []byte) error {
	return unmarshalHex((*[32]byte)(p), text)
}

// String returns the hex encoding of c.
func (c CompressedRistretto) String() string {
	return fasthex.EncodeToString(c[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (c *CompressedRistretto) MarshalText() ([]byte, error) {
	return marshalHex((*[32]byte)(c)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Only the hex is
// checked; use [CompressedRistretto.Decompress] to validate the element.
func (c *CompressedRistretto) UnmarshalText(text []byte) error {
	return unmarshalHex((*[32]byte)(c), text)
}

// String returns the hex encoding of the compressed form of v.
func (v *EdwardsPoint) String() string {
	return v.Compress().String()
}

// String returns the hex encoding of the compressed form of v.
func (v *RistrettoPoint) String() string {
	return v.Compress().String()
}
