// Package u32 implements field and scalar arithmetic on 32-bit limbs:
// GF(2^255-19) in radix 2^25.5 and integers modulo the group order in
// radix 2^29. Products never exceed 64 bits, which suits platforms without
// a native 64x64->128 multiplier.
package u32

import (
	"encoding/binary"

	"github.com/AlexanderYastrebov/curve25519/internal/backend"
)

var _ backend.Field[*FieldElement] = (*FieldElement)(nil)

// FieldElement represents an element of the field GF(2^255-19) as ten
// limbs of alternating 26 and 25 bits, so limb i sits at bit ceil(25.5*i).
//
// Between operations, all limbs are expected to be lower than 2^27.
//
// The zero value is a valid zero element.
type FieldElement [10]uint32

const (
	maskLow25Bits uint64 = (1 << 25) - 1
	maskLow26Bits uint64 = (1 << 26) - 1
)

// limbOffsets are the bit positions of the limbs.
var limbOffsets = [10]int{0, 26, 51, 77, 102, 128, 153, 179, 204, 230}

func limbWidth(i int) int {
	if i%2 == 0 {
		return 26
	}
	return 25
}

// Zero sets v = 0, and returns v.
func (v *FieldElement) Zero() *FieldElement {
	*v = FieldElement{}
	return v
}

// One sets v = 1, and returns v.
func (v *FieldElement) One() *FieldElement {
	*v = FieldElement{1}
	return v
}

// Set sets v = a, and returns v.
func (v *FieldElement) Set(a *FieldElement) *FieldElement {
	*v = *a
	return v
}

// SetBytes sets v to the 255-bit little-endian value in b. The most
// significant bit is ignored.
func (v *FieldElement) SetBytes(b *[32]byte) *FieldElement {
	var buf [40]byte
	copy(buf[:], b[:])
	for i, off := range limbOffsets {
		mask := uint64(1)<<limbWidth(i) - 1
		v[i] = uint32((binary.LittleEndian.Uint64(buf[off/8:]) >> (off % 8)) & mask)
	}
	return v
}

// Bytes writes the canonical 32-byte little-endian encoding of v to out.
func (v *FieldElement) Bytes(out *[32]byte) {
	var z [10]uint64
	for i := range v {
		z[i] = uint64(v[i])
	}

	// q is 1 if v >= p and 0 otherwise, computed as the carry out of v + 19.
	q := (z[0] + 19) >> 26
	for i := 1; i < len(z); i++ {
		q = (z[i] + q) >> limbWidth(i)
	}

	// Subtract q*p by adding 19*q and dropping bit 255.
	z[0] += 19 * q
	for i := 0; i < len(z)-1; i++ {
		carry(&z, i)
	}
	z[9] &= maskLow25Bits

	var buf [40]byte
	var t [8]byte
	for i, off := range limbOffsets {
		binary.LittleEndian.PutUint64(t[:], z[i]<<(off%8))
		for j, bb := range t {
			buf[off/8+j] |= bb
		}
	}
	copy(out[:], buf[:32])
}

// carry moves the bits of z[i] above its limb width into z[i+1].
func carry(z *[10]uint64, i int) {
	if i%2 == 0 {
		z[i+1] += z[i] >> 26
		z[i] &= maskLow26Bits
	} else {
		z[i+1] += z[i] >> 25
		z[i] &= maskLow25Bits
	}
}

// reduce carries the 64-bit limbs in z down to 26 or 25 bits plus a small
// excess, and stores them in v.
func (v *FieldElement) reduce(z *[10]uint64) *FieldElement {
	// Two interleaved chains halve the dependency depth.
	carry(z, 0)
	carry(z, 4)
	carry(z, 1)
	carry(z, 5)
	carry(z, 2)
	carry(z, 6)
	carry(z, 3)
	carry(z, 7)
	carry(z, 4)
	carry(z, 8)

	// 2^255 = 19 mod p
	z[0] += 19 * (z[9] >> 25)
	z[9] &= maskLow25Bits
	carry(z, 0)

	for i := range v {
		v[i] = uint32(z[i])
	}
	return v
}

// Add sets v = a + b, and returns v.
func (v *FieldElement) Add(a, b *FieldElement) *FieldElement {
	var z [10]uint64
	for i := range z {
		z[i] = uint64(a[i]) + uint64(b[i])
	}
	return v.reduce(&z)
}

// sixteenP is 16*p in the limb layout, large enough that subtracting any
// weakly reduced element from it does not underflow.
var sixteenP = [10]uint64{
	0x3ffffed << 4, 0x1ffffff << 4, 0x3ffffff << 4, 0x1ffffff << 4, 0x3ffffff << 4,
	0x1ffffff << 4, 0x3ffffff << 4, 0x1ffffff << 4, 0x3ffffff << 4, 0x1ffffff << 4,
}

// Subtract sets v = a - b, and returns v.
func (v *FieldElement) Subtract(a, b *FieldElement) *FieldElement {
	var z [10]uint64
	for i := range z {
		z[i] = uint64(a[i]) + sixteenP[i] - uint64(b[i])
	}
	return v.reduce(&z)
}

// Negate sets v = -a, and returns v.
func (v *FieldElement) Negate(a *FieldElement) *FieldElement {
	return v.Subtract(&FieldElement{}, a)
}

// Multiply sets v = a * b, and returns v.
func (v *FieldElement) Multiply(a, b *FieldElement) *FieldElement {
	// Two odd limbs each sit half a bit above their nominal radix position,
	// so their product lands one bit higher and is doubled. Terms at 2^255
	// and above fold back as multiples of 19.
	var z [10]uint64
	for i := range a {
		for j := range b {
			p := uint64(a[i]) * uint64(b[j])
			if i%2 == 1 && j%2 == 1 {
				p *= 2
			}
			if k := i + j; k >= 10 {
				z[k-10] += p * 19
			} else {
				z[k] += p
			}
		}
	}
	return v.reduce(&z)
}

// Square sets v = a * a, and returns v.
func (v *FieldElement) Square(a *FieldElement) *FieldElement {
	return v.Multiply(a, a)
}

// mask32Bits returns 0xffffffff if cond is 1, and 0 otherwise.
func mask32Bits(cond int) uint32 { return ^(uint32(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *FieldElement) Select(a, b *FieldElement, cond int) *FieldElement {
	m := mask32Bits(cond)
	for i := range v {
		v[i] = (m & a[i]) | (^m & b[i])
	}
	return v
}

// Swap swaps v and u if cond == 1 or leaves them unchanged if cond == 0.
func (v *FieldElement) Swap(u *FieldElement, cond int) {
	m := mask32Bits(cond)
	for i := range v {
		t := m & (v[i] ^ u[i])
		v[i] ^= t
		u[i] ^= t
	}
}
