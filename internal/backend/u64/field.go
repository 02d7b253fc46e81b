// Package u64 implements field and scalar arithmetic on 64-bit limbs:
// GF(2^255-19) in radix 2^51 and integers modulo the group order in
// radix 2^52.
package u64

import (
	"encoding/binary"

	"github.com/AlexanderYastrebov/curve25519/internal/backend"
	"lukechampine.com/uint128"
)

var _ backend.Field[*FieldElement] = (*FieldElement)(nil)

// FieldElement represents an element of the field GF(2^255-19). An element t
// represents the integer
//
//	t[0] + t[1]*2^51 + t[2]*2^102 + t[3]*2^153 + t[4]*2^204
//
// Between operations, all limbs are expected to be lower than 2^52.
//
// The zero value is a valid zero element.
type FieldElement [5]uint64

const maskLow51Bits uint64 = (1 << 51) - 1

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
	// Bits 0:51 (bytes 0:8, bits 0:64, shift 0, mask 51).
	v[0] = binary.LittleEndian.Uint64(b[0:8]) & maskLow51Bits
	// Bits 51:102 (bytes 6:14, bits 48:112, shift 3, mask 51).
	v[1] = (binary.LittleEndian.Uint64(b[6:14]) >> 3) & maskLow51Bits
	// Bits 102:153 (bytes 12:20, bits 96:160, shift 6, mask 51).
	v[2] = (binary.LittleEndian.Uint64(b[12:20]) >> 6) & maskLow51Bits
	// Bits 153:204 (bytes 19:27, bits 152:216, shift 1, mask 51).
	v[3] = (binary.LittleEndian.Uint64(b[19:27]) >> 1) & maskLow51Bits
	// Bits 204:255 (bytes 24:32, bits 192:256, shift 12, mask 51).
	v[4] = (binary.LittleEndian.Uint64(b[24:32]) >> 12) & maskLow51Bits
	return v
}

// Bytes writes the canonical 32-byte little-endian encoding of v to out.
func (v *FieldElement) Bytes(out *[32]byte) {
	t := *v
	t.reduce()

	*out = [32]byte{}
	var buf [8]byte
	for i, l := range t {
		bitsOffset := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitsOffset%8))
		for j, bb := range buf {
			off := bitsOffset/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= bb
		}
	}
}

// carryPropagate brings the limbs below 52 bits by applying the reduction
// identity (a * 2^255 + b = a * 19 + b) to the l4 carry.
func (v *FieldElement) carryPropagate() *FieldElement {
	c0 := v[0] >> 51
	c1 := v[1] >> 51
	c2 := v[2] >> 51
	c3 := v[3] >> 51
	c4 := v[4] >> 51

	// c4 is at most 64 - 51 = 13 bits, so c4*19 is at most 18 bits, and
	// the final v[0] will be at most 52 bits.
	v[0] = v[0]&maskLow51Bits + c4*19
	v[1] = v[1]&maskLow51Bits + c0
	v[2] = v[2]&maskLow51Bits + c1
	v[3] = v[3]&maskLow51Bits + c2
	v[4] = v[4]&maskLow51Bits + c3
	return v
}

// reduce reduces v modulo 2^255 - 19 and returns it.
func (v *FieldElement) reduce() *FieldElement {
	v.carryPropagate()

	// After the light reduction we now have a field element representation
	// v < 2^255 + 2^13 * 19, but need v < 2^255 - 19.

	// If v >= 2^255 - 19, then v + 19 >= 2^255, which would overflow 2^255 - 1,
	// generating a carry. That is, c will be 0 if v < 2^255 - 19, and 1 otherwise.
	c := (v[0] + 19) >> 51
	c = (v[1] + c) >> 51
	c = (v[2] + c) >> 51
	c = (v[3] + c) >> 51
	c = (v[4] + c) >> 51

	// If v < 2^255 - 19 and c = 0, this will be a no-op. Otherwise, it's
	// effectively applying the reduction identity to the carry.
	v[0] += 19 * c

	v[1] += v[0] >> 51
	v[0] = v[0] & maskLow51Bits
	v[2] += v[1] >> 51
	v[1] = v[1] & maskLow51Bits
	v[3] += v[2] >> 51
	v[2] = v[2] & maskLow51Bits
	v[4] += v[3] >> 51
	v[3] = v[3] & maskLow51Bits
	// no additional carry
	v[4] = v[4] & maskLow51Bits

	return v
}

// Add sets v = a + b, and returns v.
func (v *FieldElement) Add(a, b *FieldElement) *FieldElement {
	v[0] = a[0] + b[0]
	v[1] = a[1] + b[1]
	v[2] = a[2] + b[2]
	v[3] = a[3] + b[3]
	v[4] = a[4] + b[4]
	return v.carryPropagate()
}

// Subtract sets v = a - b, and returns v.
func (v *FieldElement) Subtract(a, b *FieldElement) *FieldElement {
	// We first add 2 * p, to guarantee the subtraction won't underflow, and
	// then subtract b (which can be up to 2^255 + 2^13 * 19).
	v[0] = (a[0] + 0xFFFFFFFFFFFDA) - b[0]
	v[1] = (a[1] + 0xFFFFFFFFFFFFE) - b[1]
	v[2] = (a[2] + 0xFFFFFFFFFFFFE) - b[2]
	v[3] = (a[3] + 0xFFFFFFFFFFFFE) - b[3]
	v[4] = (a[4] + 0xFFFFFFFFFFFFE) - b[4]
	return v.carryPropagate()
}

// Negate sets v = -a, and returns v.
func (v *FieldElement) Negate(a *FieldElement) *FieldElement {
	return v.Subtract(&FieldElement{}, a)
}

// mul returns a * b as a 128-bit value.
func mul(a, b uint64) uint128.Uint128 {
	return uint128.From64(a).MulWrap64(b)
}

// addMul returns v + a * b.
func addMul(v uint128.Uint128, a, b uint64) uint128.Uint128 {
	return v.AddWrap(mul(a, b))
}

// shiftRightBy51 returns a >> 51. a is assumed to be at most 115 bits.
func shiftRightBy51(a uint128.Uint128) uint64 {
	return a.Rsh(51).Lo
}

// Multiply sets v = a * b, and returns v.
func (v *FieldElement) Multiply(a, b *FieldElement) *FieldElement {
	a0, a1, a2, a3, a4 := a[0], a[1], a[2], a[3], a[4]
	b0, b1, b2, b3, b4 := b[0], b[1], b[2], b[3], b[4]

	// Limb multiplication works like pen-and-paper columnar multiplication,
	// but with 51-bit limbs instead of digits. Terms that land at 2^255 and
	// above are folded back as multiples of 19, since 2^255 = 19 mod p.
	a1_19 := a1 * 19
	a2_19 := a2 * 19
	a3_19 := a3 * 19
	a4_19 := a4 * 19

	// r0 = a0×b0 + 19×(a1×b4 + a2×b3 + a3×b2 + a4×b1)
	r0 := mul(a0, b0)
	r0 = addMul(r0, a1_19, b4)
	r0 = addMul(r0, a2_19, b3)
	r0 = addMul(r0, a3_19, b2)
	r0 = addMul(r0, a4_19, b1)

	// r1 = a0×b1 + a1×b0 + 19×(a2×b4 + a3×b3 + a4×b2)
	r1 := mul(a0, b1)
	r1 = addMul(r1, a1, b0)
	r1 = addMul(r1, a2_19, b4)
	r1 = addMul(r1, a3_19, b3)
	r1 = addMul(r1, a4_19, b2)

	// r2 = a0×b2 + a1×b1 + a2×b0 + 19×(a3×b4 + a4×b3)
	r2 := mul(a0, b2)
	r2 = addMul(r2, a1, b1)
	r2 = addMul(r2, a2, b0)
	r2 = addMul(r2, a3_19, b4)
	r2 = addMul(r2, a4_19, b3)

	// r3 = a0×b3 + a1×b2 + a2×b1 + a3×b0 + 19×a4×b4
	r3 := mul(a0, b3)
	r3 = addMul(r3, a1, b2)
	r3 = addMul(r3, a2, b1)
	r3 = addMul(r3, a3, b0)
	r3 = addMul(r3, a4_19, b4)

	// r4 = a0×b4 + a1×b3 + a2×b2 + a3×b1 + a4×b0
	r4 := mul(a0, b4)
	r4 = addMul(r4, a1, b3)
	r4 = addMul(r4, a2, b2)
	r4 = addMul(r4, a3, b1)
	r4 = addMul(r4, a4, b0)

	// Each input limb is below 2^52, so every column is below 2^111 and the
	// carries below 2^60. The c4 carry wraps around to the first limb.
	c0 := shiftRightBy51(r0)
	c1 := shiftRightBy51(r1)
	c2 := shiftRightBy51(r2)
	c3 := shiftRightBy51(r3)
	c4 := shiftRightBy51(r4)

	v[0] = r0.Lo&maskLow51Bits + c4*19
	v[1] = r1.Lo&maskLow51Bits + c0
	v[2] = r2.Lo&maskLow51Bits + c1
	v[3] = r3.Lo&maskLow51Bits + c2
	v[4] = r4.Lo&maskLow51Bits + c3

	return v.carryPropagate()
}

// Square sets v = a * a, and returns v.
func (v *FieldElement) Square(a *FieldElement) *FieldElement {
	l0, l1, l2, l3, l4 := a[0], a[1], a[2], a[3], a[4]

	// Squaring has half the cross terms of a multiplication, each doubled.
	l0_2 := l0 * 2
	l1_2 := l1 * 2

	l1_38 := l1 * 38
	l2_38 := l2 * 38
	l3_38 := l3 * 38

	l3_19 := l3 * 19
	l4_19 := l4 * 19

	// r0 = l0×l0 + 19×2×(l1×l4 + l2×l3)
	r0 := mul(l0, l0)
	r0 = addMul(r0, l1_38, l4)
	r0 = addMul(r0, l2_38, l3)

	// r1 = 2×l0×l1 + 19×2×l2×l4 + 19×l3×l3
	r1 := mul(l0_2, l1)
	r1 = addMul(r1, l2_38, l4)
	r1 = addMul(r1, l3_19, l3)

	// r2 = 2×l0×l2 + l1×l1 + 19×2×l3×l4
	r2 := mul(l0_2, l2)
	r2 = addMul(r2, l1, l1)
	r2 = addMul(r2, l3_38, l4)

	// r3 = 2×l0×l3 + 2×l1×l2 + 19×l4×l4
	r3 := mul(l0_2, l3)
	r3 = addMul(r3, l1_2, l2)
	r3 = addMul(r3, l4_19, l4)

	// r4 = 2×l0×l4 + 2×l1×l3 + l2×l2
	r4 := mul(l0_2, l4)
	r4 = addMul(r4, l1_2, l3)
	r4 = addMul(r4, l2, l2)

	c0 := shiftRightBy51(r0)
	c1 := shiftRightBy51(r1)
	c2 := shiftRightBy51(r2)
	c3 := shiftRightBy51(r3)
	c4 := shiftRightBy51(r4)

	v[0] = r0.Lo&maskLow51Bits + c4*19
	v[1] = r1.Lo&maskLow51Bits + c0
	v[2] = r2.Lo&maskLow51Bits + c1
	v[3] = r3.Lo&maskLow51Bits + c2
	v[4] = r4.Lo&maskLow51Bits + c3

	return v.carryPropagate()
}

// mask64Bits returns 0xffffffffffffffff if cond is 1, and 0 otherwise.
func mask64Bits(cond int) uint64 { return ^(uint64(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *FieldElement) Select(a, b *FieldElement, cond int) *FieldElement {
	m := mask64Bits(cond)
	v[0] = (m & a[0]) | (^m & b[0])
	v[1] = (m & a[1]) | (^m & b[1])
	v[2] = (m & a[2]) | (^m & b[2])
	v[3] = (m & a[3]) | (^m & b[3])
	v[4] = (m & a[4]) | (^m & b[4])
	return v
}

// Swap swaps v and u if cond == 1 or leaves them unchanged if cond == 0.
func (v *FieldElement) Swap(u *FieldElement, cond int) {
	m := mask64Bits(cond)
	for i := range v {
		t := m & (v[i] ^ u[i])
		v[i] ^= t
		u[i] ^= t
	}
}
