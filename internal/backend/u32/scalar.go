package u32

import (
	"encoding/binary"

	"github.com/AlexanderYastrebov/curve25519/internal/backend"
)

var _ backend.Scalar[*Scalar29] = (*Scalar29)(nil)

// Scalar29 is an integer modulo the group order l, unpacked into nine 29-bit
// limbs. The top limb holds the remaining 24 bits of a 256-bit value.
type Scalar29 [9]uint32

const maskLow29Bits uint32 = (1 << 29) - 1

var (
	// scalarL is l = 2^252 + 27742317777372353535851937790883648493.
	scalarL = Scalar29{
		0x1cf5d3ed, 0x009318d2, 0x1de73596, 0x1df3bd45, 0x0000014d,
		0x00000000, 0x00000000, 0x00000000, 0x00100000,
	}

	// lFactor satisfies l * lFactor = -1 mod 2^29.
	lFactor uint32 = 0x12547e1b

	// scalarR is R = 2^261 mod l.
	scalarR = Scalar29{
		0x114df9ed, 0x1a617303, 0x0f7c098c, 0x16793167, 0x1ffd656e,
		0x1fffffff, 0x1fffffff, 0x1fffffff, 0x000fffff,
	}

	// scalarRR is R^2 = 2^522 mod l.
	scalarRR = Scalar29{
		0x0b5f9d12, 0x1e141b17, 0x158d7f3d, 0x143f3757, 0x1972d781,
		0x042feb7c, 0x1ceec73d, 0x1e184d1e, 0x0005046d,
	}
)

// loadLimb29 reads 29 bits of buf starting at bit offset off.
func loadLimb29(buf []byte, off int) uint32 {
	return uint32(binary.LittleEndian.Uint64(buf[off/8:])>>(off%8)) & maskLow29Bits
}

// SetBytes unpacks the 256-bit little-endian value in b without reducing it.
func (s *Scalar29) SetBytes(b *[32]byte) *Scalar29 {
	var buf [40]byte
	copy(buf[:], b[:])
	for i := range s {
		s[i] = loadLimb29(buf[:], i*29)
	}
	return s
}

// SetWideBytes sets s to the 512-bit little-endian value in b reduced
// modulo l.
func (s *Scalar29) SetWideBytes(b *[64]byte) *Scalar29 {
	var buf [72]byte
	copy(buf[:], b[:])

	var lo, hi Scalar29
	for i := range lo {
		lo[i] = loadLimb29(buf[:], i*29)
		hi[i] = loadLimb29(buf[:], (i+9)*29)
	}

	lo.MontgomeryMultiply(&lo, &scalarR)
	hi.MontgomeryMultiply(&hi, &scalarRR)
	return s.Add(&hi, &lo)
}

// Reduce sets s = a mod l for any unpacked 256-bit a.
func (s *Scalar29) Reduce(a *Scalar29) *Scalar29 {
	z := mulInternal(a, &scalarR)
	*s = montgomeryReduce(&z)
	return s
}

// Bytes packs s into 32 little-endian bytes. s must be below 2^256.
func (s *Scalar29) Bytes(out *[32]byte) {
	var buf [40]byte
	var t [8]byte
	for i, l := range s {
		off := i * 29
		binary.LittleEndian.PutUint64(t[:], uint64(l)<<(off%8))
		for j, bb := range t {
			buf[off/8+j] |= bb
		}
	}
	copy(out[:], buf[:32])
}

// Add sets s = a + b mod l, and returns s.
func (s *Scalar29) Add(a, b *Scalar29) *Scalar29 {
	var sum Scalar29
	var carry uint32
	for i := range sum {
		carry = a[i] + b[i] + (carry >> 29)
		sum[i] = carry & maskLow29Bits
	}
	return s.Subtract(&sum, &scalarL)
}

// Subtract sets s = a - b mod l, and returns s.
func (s *Scalar29) Subtract(a, b *Scalar29) *Scalar29 {
	var difference Scalar29
	var borrow uint32
	for i := range difference {
		borrow = a[i] - (b[i] + (borrow >> 31))
		difference[i] = borrow & maskLow29Bits
	}

	// conditionally add l if the difference is negative
	underflowMask := ((borrow >> 31) ^ 1) - 1
	var carry uint32
	for i := range difference {
		carry = (carry >> 29) + difference[i] + (scalarL[i] & underflowMask)
		difference[i] = carry & maskLow29Bits
	}

	*s = difference
	return s
}

// Multiply sets s = a * b mod l, and returns s.
func (s *Scalar29) Multiply(a, b *Scalar29) *Scalar29 {
	var ab Scalar29
	ab.MontgomeryMultiply(a, b)
	return s.MontgomeryMultiply(&ab, &scalarRR)
}

// MontgomeryMultiply sets s = a * b / R mod l, and returns s.
func (s *Scalar29) MontgomeryMultiply(a, b *Scalar29) *Scalar29 {
	z := mulInternal(a, b)
	*s = montgomeryReduce(&z)
	return s
}

// MontgomerySquare sets s = a * a / R mod l, and returns s.
func (s *Scalar29) MontgomerySquare(a *Scalar29) *Scalar29 {
	return s.MontgomeryMultiply(a, a)
}

// ToMontgomery sets s = a * R mod l, and returns s.
func (s *Scalar29) ToMontgomery(a *Scalar29) *Scalar29 {
	return s.MontgomeryMultiply(a, &scalarRR)
}

// FromMontgomery sets s = a / R mod l, and returns s.
func (s *Scalar29) FromMontgomery(a *Scalar29) *Scalar29 {
	var z [17]uint64
	for i := range a {
		z[i] = uint64(a[i])
	}
	*s = montgomeryReduce(&z)
	return s
}

func m(x, y uint32) uint64 { return uint64(x) * uint64(y) }

// mulInternal returns the unreduced columns of a * b.
func mulInternal(a, b *Scalar29) (z [17]uint64) {
	for i := range a {
		for j := range b {
			z[i+j] += m(a[i], b[j])
		}
	}
	return z
}

// montgomeryReduce returns limbs / R mod l, where R = 2^261.
func montgomeryReduce(limbs *[17]uint64) Scalar29 {
	var n Scalar29
	var carry uint64
	for k := range n {
		sum := carry + limbs[k]
		for i := 0; i < k; i++ {
			sum += m(n[i], scalarL[k-i])
		}
		p := (uint32(sum) * lFactor) & maskLow29Bits
		sum += m(p, scalarL[0])
		n[k] = p
		carry = sum >> 29
	}

	var r Scalar29
	for k := len(n); k < len(limbs); k++ {
		sum := carry + limbs[k]
		for i := k - len(n) + 1; i < len(n); i++ {
			sum += m(n[i], scalarL[k-i])
		}
		r[k-len(n)] = uint32(sum) & maskLow29Bits
		carry = sum >> 29
	}
	r[len(r)-1] = uint32(carry)

	r.Subtract(&r, &scalarL)
	return r
}
