package u64

import (
	"encoding/binary"

	"github.com/AlexanderYastrebov/curve25519/internal/backend"
	"lukechampine.com/uint128"
)

var _ backend.Scalar[*Scalar52] = (*Scalar52)(nil)

// Scalar52 is an integer modulo the group order l, unpacked into five 52-bit
// limbs: s[0] + s[1]*2^52 + s[2]*2^104 + s[3]*2^156 + s[4]*2^208.
type Scalar52 [5]uint64

const maskLow52Bits uint64 = (1 << 52) - 1

var (
	// scalarL is l = 2^252 + 27742317777372353535851937790883648493.
	scalarL = Scalar52{
		0x0002631a5cf5d3ed,
		0x000dea2f79cd6581,
		0x000000000014def9,
		0x0000000000000000,
		0x0000100000000000,
	}

	// lFactor satisfies l * lFactor = -1 mod 2^52.
	lFactor uint64 = 0x51da312547e1b

	// scalarR is R = 2^260 mod l.
	scalarR = Scalar52{
		0x000f48bd6721e6ed,
		0x0003bab5ac67e45a,
		0x000fffffeb35e51b,
		0x000fffffffffffff,
		0x00000fffffffffff,
	}

	// scalarRR is R^2 = 2^520 mod l.
	scalarRR = Scalar52{
		0x0009d265e952d13b,
		0x000d63c715bea69f,
		0x0005be65cb687604,
		0x0003dceec73d217f,
		0x000009411b7c309a,
	}
)

// loadLimb52 reads 52 bits of buf starting at bit offset off.
// buf must extend at least 8 bytes past off/8.
func loadLimb52(buf []byte, off int) uint64 {
	return (binary.LittleEndian.Uint64(buf[off/8:]) >> (off % 8)) & maskLow52Bits
}

// SetBytes unpacks the 256-bit little-endian value in b without reducing it.
func (s *Scalar52) SetBytes(b *[32]byte) *Scalar52 {
	var buf [40]byte
	copy(buf[:], b[:])
	for i := range s {
		s[i] = loadLimb52(buf[:], i*52)
	}
	return s
}

// SetWideBytes sets s to the 512-bit little-endian value in b reduced
// modulo l.
func (s *Scalar52) SetWideBytes(b *[64]byte) *Scalar52 {
	var buf [72]byte
	copy(buf[:], b[:])

	var lo, hi Scalar52
	for i := range lo {
		lo[i] = loadLimb52(buf[:], i*52)
		hi[i] = loadLimb52(buf[:], (i+5)*52)
	}

	lo.MontgomeryMultiply(&lo, &scalarR)  // (lo * R) / R = lo
	hi.MontgomeryMultiply(&hi, &scalarRR) // (hi * R^2) / R = hi * R
	return s.Add(&hi, &lo)                // hi * R + lo
}

// Reduce sets s = a mod l for any unpacked 256-bit a.
func (s *Scalar52) Reduce(a *Scalar52) *Scalar52 {
	z := mulInternal(a, &scalarR)
	*s = montgomeryReduce(&z)
	return s
}

// Bytes packs s into 32 little-endian bytes. s must be below 2^256.
func (s *Scalar52) Bytes(out *[32]byte) {
	var buf [40]byte
	var t [8]byte
	for i, l := range s {
		off := i * 52
		binary.LittleEndian.PutUint64(t[:], l<<(off%8))
		for j, bb := range t {
			buf[off/8+j] |= bb
		}
	}
	copy(out[:], buf[:32])
}

// Add sets s = a + b mod l, and returns s.
func (s *Scalar52) Add(a, b *Scalar52) *Scalar52 {
	var sum Scalar52
	var carry uint64
	for i := range sum {
		carry = a[i] + b[i] + (carry >> 52)
		sum[i] = carry & maskLow52Bits
	}

	// subtract l if the sum is >= l
	return s.Subtract(&sum, &scalarL)
}

// Subtract sets s = a - b mod l, and returns s.
func (s *Scalar52) Subtract(a, b *Scalar52) *Scalar52 {
	var difference Scalar52
	var borrow uint64
	for i := range difference {
		borrow = a[i] - (b[i] + (borrow >> 63))
		difference[i] = borrow & maskLow52Bits
	}

	// conditionally add l if the difference is negative
	underflowMask := ((borrow >> 63) ^ 1) - 1
	var carry uint64
	for i := range difference {
		carry = (carry >> 52) + difference[i] + (scalarL[i] & underflowMask)
		difference[i] = carry & maskLow52Bits
	}

	*s = difference
	return s
}

// Multiply sets s = a * b mod l, and returns s.
func (s *Scalar52) Multiply(a, b *Scalar52) *Scalar52 {
	var ab Scalar52
	ab.MontgomeryMultiply(a, b)
	return s.MontgomeryMultiply(&ab, &scalarRR)
}

// MontgomeryMultiply sets s = a * b / R mod l, and returns s.
func (s *Scalar52) MontgomeryMultiply(a, b *Scalar52) *Scalar52 {
	z := mulInternal(a, b)
	*s = montgomeryReduce(&z)
	return s
}

// MontgomerySquare sets s = a * a / R mod l, and returns s.
func (s *Scalar52) MontgomerySquare(a *Scalar52) *Scalar52 {
	return s.MontgomeryMultiply(a, a)
}

// ToMontgomery sets s = a * R mod l, and returns s.
func (s *Scalar52) ToMontgomery(a *Scalar52) *Scalar52 {
	return s.MontgomeryMultiply(a, &scalarRR)
}

// FromMontgomery sets s = a / R mod l, and returns s.
func (s *Scalar52) FromMontgomery(a *Scalar52) *Scalar52 {
	var z [9]uint128.Uint128
	for i := range a {
		z[i] = uint128.From64(a[i])
	}
	*s = montgomeryReduce(&z)
	return s
}

// m returns the 128-bit product of x and y.
func m(x, y uint64) uint128.Uint128 {
	return uint128.From64(x).MulWrap64(y)
}

// mulInternal returns the unreduced columns of a * b.
func mulInternal(a, b *Scalar52) (z [9]uint128.Uint128) {
	for i := range a {
		for j := range b {
			z[i+j] = z[i+j].AddWrap(m(a[i], b[j]))
		}
	}
	return z
}

// montgomeryReduce returns limbs / R mod l, where R = 2^260.
func montgomeryReduce(limbs *[9]uint128.Uint128) Scalar52 {
	// The first half computes the Montgomery adjustment factor n, and begins
	// adding n*l to make the low limbs divisible by R.
	var n Scalar52
	var carry uint128.Uint128
	for k := range n {
		sum := carry.AddWrap(limbs[k])
		for i := 0; i < k; i++ {
			sum = sum.AddWrap(m(n[i], scalarL[k-i]))
		}
		p := (sum.Lo * lFactor) & maskLow52Bits
		sum = sum.AddWrap(m(p, scalarL[0]))
		n[k] = p
		carry = sum.Rsh(52)
	}

	// limbs is divisible by R now, so we can divide by R by simply storing
	// the upper half as the result.
	var r Scalar52
	for k := len(n); k < len(limbs); k++ {
		sum := carry.AddWrap(limbs[k])
		for i := k - len(n) + 1; i < len(n); i++ {
			sum = sum.AddWrap(m(n[i], scalarL[k-i]))
		}
		r[k-len(n)] = sum.Lo & maskLow52Bits
		carry = sum.Rsh(52)
	}
	r[len(r)-1] = carry.Lo

	// result may be >= l, so attempt to subtract l
	r.Subtract(&r, &scalarL)
	return r
}
