package curve25519

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"github.com/AlexanderYastrebov/curve25519/field"
)

// Scalar is an integer modulo
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// which is the prime order of the edwards25519 group generated by the
// basepoint, and of the ristretto255 group.
//
// The zero value is a valid zero element.
type Scalar struct {
	// s is the scalar in canonical little-endian form, always below l.
	s [32]byte
}

// scalarOrder is l in little-endian bytes.
var scalarOrder = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// Backend reports the limb representation compiled into the field and
// scalar arithmetic, "u64" or "u32".
func Backend() string {
	return field.Backend
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// SetUint64 sets s = x mod l, and returns s.
func (s *Scalar) SetUint64(x uint64) *Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)
	s.s = b
	return s
}

// SetCanonicalBytes sets s = x, where x is a 32-byte little-endian encoding
// of s. If x is not of the right length, SetCanonicalBytes returns nil and
// [ErrInvalidLength]. If x is not canonical, that is, not below l, it
// returns nil and [ErrNonCanonical]. The receiver is unchanged on error.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, ErrInvalidLength
	}
	var b [32]byte
	copy(b[:], x)

	var u unpackedScalar
	u.SetBytes(&b)
	u.Reduce(&u)
	var reduced [32]byte
	u.Bytes(&reduced)
	if subtle.ConstantTimeCompare(reduced[:], b[:]) != 1 {
		return nil, ErrNonCanonical
	}

	s.s = b
	return s, nil
}

// SetBytesModOrder sets s = x mod l, where x is a 32- or 64-byte
// little-endian integer. If x is of any other length, SetBytesModOrder
// returns nil and [ErrInvalidLength], and the receiver is unchanged.
func (s *Scalar) SetBytesModOrder(x []byte) (*Scalar, error) {
	switch len(x) {
	case 32:
		var b [32]byte
		copy(b[:], x)
		var u unpackedScalar
		u.SetBytes(&b)
		u.Reduce(&u)
		return s.pack(&u), nil
	case 64:
		return s.SetUniformBytes(x)
	default:
		return nil, ErrInvalidLength
	}
}

// SetUniformBytes sets s = x mod l, where x is a 64-byte little-endian
// integer. If x is not of the right length, SetUniformBytes returns nil and
// [ErrInvalidLength], and the receiver is unchanged.
//
// SetUniformBytes can be used to set s to a uniformly distributed value
// given 64 uniformly distributed random bytes.
func (s *Scalar) SetUniformBytes(x []byte) (*Scalar, error) {
	if len(x) != 64 {
		return nil, ErrInvalidLength
	}
	var u unpackedScalar
	u.SetWideBytes((*[64]byte)(x))
	return s.pack(&u), nil
}

// SetHash sets s to the digest of h reduced modulo l. The caller writes the
// input to h beforehand. If h does not produce 64 bytes, SetHash returns nil
// and [ErrInvalidHash].
func (s *Scalar) SetHash(h hash.Hash) (*Scalar, error) {
	if h.Size() != 64 {
		return nil, ErrInvalidHash
	}
	var digest [64]byte
	return s.SetUniformBytes(h.Sum(digest[:0]))
}

// SetRandom sets s to a uniformly distributed scalar using 64 bytes read
// from rand.
func (s *Scalar) SetRandom(rand io.Reader) (*Scalar, error) {
	var b [64]byte
	if _, err := io.ReadFull(rand, b[:]); err != nil {
		return nil, fmt.Errorf("curve25519: reading random scalar: %w", err)
	}
	return s.SetUniformBytes(b[:])
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var encoded [32]byte
	return s.bytes(&encoded)
}

func (s *Scalar) bytes(out *[32]byte) []byte {
	*out = s.s
	return out[:]
}

// Equal returns 1 if s and t are equal, and 0 otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	return subtle.ConstantTimeCompare(s.s[:], t.s[:])
}

// IsZero returns 1 if s is zero, and 0 otherwise.
func (s *Scalar) IsZero() int {
	return s.Equal(&Scalar{})
}

// Clear overwrites s with zeros.
func (s *Scalar) Clear() {
	clear(s.s[:])
}

func (s *Scalar) unpack() unpackedScalar {
	var u unpackedScalar
	u.SetBytes(&s.s)
	return u
}

func (s *Scalar) pack(u *unpackedScalar) *Scalar {
	u.Bytes(&s.s)
	return s
}

// Add sets s = x + y mod l, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	a, b := x.unpack(), y.unpack()
	a.Add(&a, &b)
	return s.pack(&a)
}

// Subtract sets s = x - y mod l, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	a, b := x.unpack(), y.unpack()
	a.Subtract(&a, &b)
	return s.pack(&a)
}

// Negate sets s = -x mod l, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	var zero unpackedScalar
	a := x.unpack()
	zero.Subtract(&zero, &a)
	return s.pack(&zero)
}

// Multiply sets s = x * y mod l, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	a, b := x.unpack(), y.unpack()
	a.Multiply(&a, &b)
	return s.pack(&a)
}

// MultiplyAdd sets s = x * y + z mod l, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	a, b, c := x.unpack(), y.unpack(), z.unpack()
	a.Multiply(&a, &b)
	a.Add(&a, &c)
	return s.pack(&a)
}

// Square sets s = x * x mod l, and returns s.
func (s *Scalar) Square(x *Scalar) *Scalar {
	return s.Multiply(x, x)
}

// Invert sets s to the inverse of a nonzero scalar t, and returns s.
//
// If t is zero, Invert returns zero.
func (s *Scalar) Invert(t *Scalar) *Scalar {
	u := t.unpack()
	u.ToMontgomery(&u)
	montgomeryInvert(&u)
	u.FromMontgomery(&u)
	return s.pack(&u)
}

// pow2k sets u = u^(2^k) in the Montgomery domain.
func pow2k(u *unpackedScalar, k int) {
	for i := 0; i < k; i++ {
		u.MontgomerySquare(u)
	}
}

// montgomeryInvert sets u = u^(l-2), with u in the Montgomery domain.
func montgomeryInvert(u *unpackedScalar) {
	// Uses a hardcoded sliding window of width 4 over l-2. The table holds
	// the odd powers u^1, u^3, ..., u^15, so u^k = table[k/2].
	var table [8]unpackedScalar
	var uu unpackedScalar
	uu.MontgomerySquare(u)
	table[0] = *u
	for i := 0; i < 7; i++ {
		table[i+1].MontgomeryMultiply(&table[i], &uu)
	}

	// Each step squares k times, then multiplies by a table entry. The
	// digits are the runs of the width-4 sliding window decomposition of
	// l-2, read from the most significant end.
	steps := [...]struct{ k, odd int }{
		{0, 1}, {127 + 1, 1}, {4 + 1, 9}, {3 + 1, 11}, {3 + 1, 13}, {3 + 1, 15},
		{4 + 1, 7}, {4 + 1, 15}, {3 + 1, 5}, {3 + 1, 1}, {4 + 1, 15}, {4 + 1, 15},
		{4 + 1, 7}, {3 + 1, 3}, {4 + 1, 11}, {5 + 1, 11}, {9 + 1, 9}, {3 + 1, 3},
		{4 + 1, 3}, {4 + 1, 3}, {4 + 1, 9}, {3 + 1, 7}, {3 + 1, 3}, {3 + 1, 13},
		{3 + 1, 7}, {4 + 1, 9}, {3 + 1, 15}, {4 + 1, 11},
	}

	*u = table[steps[0].odd/2]
	for _, step := range steps[1:] {
		pow2k(u, step.k)
		u.MontgomeryMultiply(u, &table[step.odd/2])
	}
}

// BatchInvertScalars replaces every nonzero scalar in inputs with its
// inverse using a single scalar inversion, and returns the inverse of the
// product of the nonzero inputs. Zero scalars are left as zero.
func BatchInvertScalars(inputs []Scalar) *Scalar {
	one := new(Scalar).SetUint64(1).unpack()
	one.ToMontgomery(&one)

	// scratch[i] holds the product of the nonzero inputs before i.
	n := len(inputs)
	scratch := make([]unpackedScalar, n)
	montgomery := make([]unpackedScalar, n)
	acc := one
	var nonZero unpackedScalar
	for i := range inputs {
		u := inputs[i].unpack()
		montgomery[i].ToMontgomery(&u)
		scratch[i] = acc
		selectUnpacked(&nonZero, &one, &montgomery[i], inputs[i].IsZero())
		acc.MontgomeryMultiply(&acc, &nonZero)
	}

	montgomeryInvert(&acc)
	var ret unpackedScalar
	ret.FromMontgomery(&acc)

	var t unpackedScalar
	for i := n - 1; i >= 0; i-- {
		isZero := inputs[i].IsZero()
		selectUnpacked(&nonZero, &one, &montgomery[i], isZero)
		t.MontgomeryMultiply(&acc, &scratch[i])
		acc.MontgomeryMultiply(&acc, &nonZero)
		t.FromMontgomery(&t)

		var inv Scalar
		inv.pack(&t)
		subtle.ConstantTimeCopy(1-isZero, inputs[i].s[:], inv.s[:])
	}

	return new(Scalar).pack(&ret)
}

// selectUnpacked sets v to a if cond == 1, and to b if cond == 0.
func selectUnpacked(v, a, b *unpackedScalar, cond int) {
	var ea, eb [32]byte
	a.Bytes(&ea)
	b.Bytes(&eb)
	subtle.ConstantTimeCopy(cond, eb[:], ea[:])
	v.SetBytes(&eb)
}

// ClampInteger returns b with the X25519 clamping applied: the three low
// bits and the top bit are cleared, and bit 254 is set. The result is an
// integer multiple of the cofactor below 2^255, not a Scalar.
func ClampInteger(b [32]byte) [32]byte {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
	return b
}

// signedRadix16 returns the scalar written as 64 signed digits in [-8, 8],
// with b = sum(digits[i] * 16^i). b must be below 2^255.
func signedRadix16(b *[32]byte) [64]int8 {
	if b[31] > 127 {
		panic("curve25519: scalar has high bit set illegally")
	}

	var digits [64]int8

	// Compute unsigned radix-16 digits:
	for i := 0; i < 32; i++ {
		digits[2*i] = int8(b[i] & 15)
		digits[2*i+1] = int8((b[i] >> 4) & 15)
	}

	// Recenter coefficients:
	for i := 0; i < 63; i++ {
		carry := (digits[i] + 8) >> 4
		digits[i] -= carry << 4
		digits[i+1] += carry
	}

	return digits
}

// radix2wDigits returns the number of digits toRadix2w produces for w.
func radix2wDigits(w int) int {
	n := (256 + w - 1) / w
	if w == 8 {
		// The top carry needs its own digit.
		n++
	}
	return n
}

// toRadix2w returns b written as radix2wDigits(w) signed digits in
// [-2^(w-1), 2^(w-1)], with b = sum(digits[i] * 2^(w*i)). w must be in
// 4..8 and b must be below 2^255.
func toRadix2w(b *[32]byte, w int) [64]int8 {
	if w < 4 || w > 8 {
		panic("curve25519: invalid radix window width")
	}
	if w == 4 {
		return signedRadix16(b)
	}

	var words [4]uint64
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	radix := uint64(1) << w
	windowMask := radix - 1
	digitsCount := (256 + w - 1) / w

	var digits [64]int8
	var carry uint64
	for i := 0; i < digitsCount; i++ {
		// Construct a buffer of bits of the scalar, starting at bitOffset.
		bitOffset := i * w
		wordIdx := bitOffset / 64
		bitIdx := bitOffset % 64

		var bitBuf uint64
		if bitIdx < 64-w || wordIdx == 3 {
			bitBuf = words[wordIdx] >> bitIdx
		} else {
			bitBuf = words[wordIdx]>>bitIdx | words[wordIdx+1]<<(64-bitIdx)
		}

		// Recenter coefficients from [0, 2^w) to [-2^(w-1), 2^(w-1)).
		coef := carry + (bitBuf & windowMask)
		carry = (coef + radix/2) >> w
		digits[i] = int8(int64(coef) - int64(carry<<w))
	}

	// The last digit absorbs the final carry. For w = 8 it goes into an
	// extra digit, since the last window is already full.
	if w == 8 {
		digits[digitsCount] += int8(carry)
	} else {
		digits[digitsCount-1] += int8(carry << w)
	}

	return digits
}

// nonAdjacentForm computes a width-w non-adjacent form for b. Every nonzero
// digit is odd and below 2^(w-1) in absolute value, and at most one of any
// w consecutive digits is nonzero. w must be in 2..8.
//
// Digit extraction branches on the value of b, so the result must only be
// used with public scalars.
func nonAdjacentForm(b *[32]byte, w uint) [256]int8 {
	if w < 2 || w > 8 {
		panic("curve25519: invalid non-adjacent form width")
	}

	var digits [5]uint64
	digits[0] = binary.LittleEndian.Uint64(b[0:8])
	digits[1] = binary.LittleEndian.Uint64(b[8:16])
	digits[2] = binary.LittleEndian.Uint64(b[16:24])
	digits[3] = binary.LittleEndian.Uint64(b[24:32])

	var naf [256]int8
	width := uint64(1 << w)
	windowMask := uint64(width - 1)

	pos := uint(0)
	carry := uint64(0)
	for pos < 256 {
		indexU64 := pos / 64
		indexBit := pos % 64
		var bitBuf uint64
		if indexBit < 64-w {
			// This window's bits are contained in a single u64
			bitBuf = digits[indexU64] >> indexBit
		} else {
			// Combine the current 64 bits with bits from the next 64
			bitBuf = (digits[indexU64] >> indexBit) | (digits[1+indexU64] << (64 - indexBit))
		}

		// Add carry into the current window
		window := carry + (bitBuf & windowMask)

		if window&1 == 0 {
			// If the window value is even, preserve the carry and continue.
			// An even window with carry 1 means the low bit of bitBuf was
			// set, so the next window still owes that carry.
			pos += 1
			continue
		}

		if window < width/2 {
			carry = 0
			naf[pos] = int8(window)
		} else {
			carry = 1
			naf[pos] = int8(int64(window) - int64(width))
		}

		pos += w
	}
	return naf
}

func (s *Scalar) signedRadix16() [64]int8 {
	return signedRadix16(&s.s)
}

func (s *Scalar) toRadix2w(w int) [64]int8 {
	return toRadix2w(&s.s, w)
}

func (s *Scalar) nonAdjacentForm(w uint) [256]int8 {
	return nonAdjacentForm(&s.s, w)
}
