package backend_test

import (
	"math/big"
	"testing"

	"github.com/AlexanderYastrebov/curve25519/internal/backend"
	"github.com/AlexanderYastrebov/curve25519/internal/backend/u32"
	"github.com/AlexanderYastrebov/curve25519/internal/backend/u64"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var (
	fieldP, _ = new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", 16)
	groupL, _ = new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
)

// fieldPtr ties a limb array type to the pointer type implementing
// backend.Field.
type fieldPtr[E any] interface {
	*E
	backend.Field[*E]
}

type scalarPtr[S any] interface {
	*S
	backend.Scalar[*S]
}

func TestFieldBackends(t *testing.T) {
	t.Run("u64", testField[u64.FieldElement])
	t.Run("u32", testField[u32.FieldElement])
}

func TestScalarBackends(t *testing.T) {
	t.Run("u64", testScalar[u64.Scalar52])
	t.Run("u32", testScalar[u32.Scalar29])
}

func TestBackendsAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawBytes32(t, "a")
		b := drawBytes32(t, "b")

		var x64, y64 u64.FieldElement
		var x32, y32 u32.FieldElement
		x64.SetBytes(&a)
		y64.SetBytes(&b)
		x32.SetBytes(&a)
		y32.SetBytes(&b)

		var out64, out32 [32]byte
		new(u64.FieldElement).Multiply(&x64, &y64).Bytes(&out64)
		new(u32.FieldElement).Multiply(&x32, &y32).Bytes(&out32)
		if out64 != out32 {
			t.Fatalf("field products differ: %x != %x", out64, out32)
		}

		w := drawBytes64(t, "w")
		var s64 u64.Scalar52
		var s32 u32.Scalar29
		s64.SetWideBytes(&w).Bytes(&out64)
		s32.SetWideBytes(&w).Bytes(&out32)
		if out64 != out32 {
			t.Fatalf("wide reductions differ: %x != %x", out64, out32)
		}
	})
}

func testField[E any, P fieldPtr[E]](t *testing.T) {
	decode := func(b [32]byte) P {
		return P(new(E)).SetBytes(&b)
	}
	encode := func(v P) *big.Int {
		var out [32]byte
		v.Bytes(&out)
		return fromLE(out[:])
	}
	oracle := func(b [32]byte) *big.Int {
		b[31] &= 0x7f
		return new(big.Int).Mod(fromLE(b[:]), fieldP)
	}

	t.Run("constants", func(t *testing.T) {
		assert.Equal(t, int64(0), encode(P(new(E)).Zero()).Int64())
		assert.Equal(t, int64(1), encode(P(new(E)).One()).Int64())
	})

	t.Run("canonical encoding", func(t *testing.T) {
		// Values in [p, 2^255) and the ignored top bit.
		for _, v := range []*big.Int{
			new(big.Int).Sub(fieldP, big.NewInt(1)),
			fieldP,
			new(big.Int).Add(fieldP, big.NewInt(1)),
			new(big.Int).Add(fieldP, big.NewInt(18)),
			new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
		} {
			var b [32]byte
			toLE(b[:], v)
			assertBigEqual(t, oracle(b), encode(decode(b)))
		}
	})

	t.Run("arithmetic", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a := drawBytes32(rt, "a")
			b := drawBytes32(rt, "b")
			x, y := decode(a), decode(b)
			ex, ey := oracle(a), oracle(b)

			check := func(name string, got P, want *big.Int) {
				want = new(big.Int).Mod(want, fieldP)
				if g := encode(got); g.Cmp(want) != 0 {
					rt.Fatalf("%s: got %x, want %x", name, g, want)
				}
			}
			check("add", P(new(E)).Add(x, y), new(big.Int).Add(ex, ey))
			check("sub", P(new(E)).Subtract(x, y), new(big.Int).Sub(ex, ey))
			check("neg", P(new(E)).Negate(x), new(big.Int).Neg(ex))
			check("mul", P(new(E)).Multiply(x, y), new(big.Int).Mul(ex, ey))
			check("sqr", P(new(E)).Square(x), new(big.Int).Mul(ex, ex))

			// Chains of operations must stay within limb bounds.
			z := P(new(E))
			z.Set(x)
			ez := new(big.Int).Set(ex)
			for i := 0; i < 8; i++ {
				z.Add(z, z)
				z.Subtract(y, z)
				z.Multiply(z, z)
				ez.Add(ez, ez)
				ez.Sub(ey, ez)
				ez.Mul(ez, ez).Mod(ez, fieldP)
			}
			check("chain", z, ez)

			// Aliasing.
			w := P(new(E))
			w.Set(x)
			w.Multiply(w, w)
			check("aliased mul", w, new(big.Int).Mul(ex, ex))
		})
	})

	t.Run("select and swap", func(t *testing.T) {
		a := [32]byte{1, 2, 3}
		b := [32]byte{4, 5, 6}
		x, y := decode(a), decode(b)

		assertBigEqual(t, encode(x), encode(P(new(E)).Select(x, y, 1)))
		assertBigEqual(t, encode(y), encode(P(new(E)).Select(x, y, 0)))

		u, v := P(new(E)), P(new(E))
		u.Set(x)
		v.Set(y)
		u.Swap(v, 0)
		assertBigEqual(t, encode(x), encode(u))
		u.Swap(v, 1)
		assertBigEqual(t, encode(y), encode(u))
		assertBigEqual(t, encode(x), encode(v))
	})
}

func testScalar[S any, P scalarPtr[S]](t *testing.T) {
	encode := func(s P) *big.Int {
		var out [32]byte
		s.Bytes(&out)
		return fromLE(out[:])
	}
	reduced := func(v *big.Int) P {
		var b [32]byte
		toLE(b[:], new(big.Int).Mod(v, groupL))
		return P(new(S)).SetBytes(&b)
	}

	t.Run("unreduced round trip", func(t *testing.T) {
		var b [32]byte
		for i := range b {
			b[i] = 0xff
		}
		s := P(new(S))
		s.SetBytes(&b)
		var out [32]byte
		s.Bytes(&out)
		assert.Equal(t, b, out)
	})

	t.Run("reduce", func(t *testing.T) {
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
		var b [32]byte
		toLE(b[:], max)
		s := P(new(S)).SetBytes(&b)
		assertBigEqual(t, new(big.Int).Mod(max, groupL), encode(P(new(S)).Reduce(s)))

		var w [64]byte
		for i := range w {
			w[i] = 0xff
		}
		maxWide := fromLE(w[:])
		assertBigEqual(t, new(big.Int).Mod(maxWide, groupL), encode(P(new(S)).SetWideBytes(&w)))
	})

	t.Run("montgomery", func(t *testing.T) {
		one := reduced(big.NewInt(1))
		// a * R / R = a, so To and From must round trip through Montgomery form.
		x := reduced(big.NewInt(123456789))
		m := P(new(S)).ToMontgomery(x)
		assertBigEqual(t, encode(x), encode(P(new(S)).FromMontgomery(m)))

		// one in Montgomery form squares to itself.
		mOne := P(new(S)).ToMontgomery(one)
		assertBigEqual(t, encode(mOne), encode(P(new(S)).MontgomerySquare(mOne)))
	})

	t.Run("arithmetic", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			wa := drawBytes64(rt, "a")
			wb := drawBytes64(rt, "b")
			x := P(new(S)).SetWideBytes(&wa)
			y := P(new(S)).SetWideBytes(&wb)
			ex := new(big.Int).Mod(fromLE(wa[:]), groupL)
			ey := new(big.Int).Mod(fromLE(wb[:]), groupL)

			check := func(name string, got P, want *big.Int) {
				want = new(big.Int).Mod(want, groupL)
				if g := encode(got); g.Cmp(want) != 0 {
					rt.Fatalf("%s: got %x, want %x", name, g, want)
				}
			}
			check("wide", x, ex)
			check("add", P(new(S)).Add(x, y), new(big.Int).Add(ex, ey))
			check("sub", P(new(S)).Subtract(x, y), new(big.Int).Sub(ex, ey))
			check("mul", P(new(S)).Multiply(x, y), new(big.Int).Mul(ex, ey))

			mx := P(new(S)).ToMontgomery(x)
			my := P(new(S)).ToMontgomery(y)
			mz := P(new(S)).MontgomeryMultiply(mx, my)
			check("montgomery mul", P(new(S)).FromMontgomery(mz), new(big.Int).Mul(ex, ey))
		})
	})
}

func drawBytes32(t *rapid.T, label string) (b [32]byte) {
	copy(b[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, label))
	return b
}

func drawBytes64(t *rapid.T, label string) (b [64]byte) {
	copy(b[:], rapid.SliceOfN(rapid.Byte(), 64, 64).Draw(t, label))
	return b
}

func fromLE(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

func toLE(out []byte, v *big.Int) {
	be := v.FillBytes(make([]byte, len(out)))
	for i := range be {
		out[len(out)-1-i] = be[i]
	}
}

func assertBigEqual(t *testing.T, want, got *big.Int) {
	t.Helper()
	assert.Zero(t, want.Cmp(got), "want %x, got %x", want, got)
}
