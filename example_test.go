package curve25519_test

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"github.com/AlexanderYastrebov/curve25519"
)

func ExampleMontgomeryPoint_ScalarMultClamped() {
	var alice, bob [32]byte
	rand.Read(alice[:])
	rand.Read(bob[:])

	alicePublic := new(curve25519.MontgomeryPoint).ScalarBaseMultClamped(alice)
	bobPublic := new(curve25519.MontgomeryPoint).ScalarBaseMultClamped(bob)

	aliceShared := new(curve25519.MontgomeryPoint).ScalarMultClamped(alice, bobPublic)
	bobShared := new(curve25519.MontgomeryPoint).ScalarMultClamped(bob, alicePublic)

	fmt.Println(aliceShared.Equal(bobShared) == 1)
	// Output:
	// true
}

func ExampleRistrettoPoint_SetHash() {
	h := sha512.New()
	h.Write([]byte("hash to group"))
	p, err := new(curve25519.RistrettoPoint).SetHash(h)
	if err != nil {
		panic(err)
	}

	// Pedersen commitment to v with blinding r.
	v := curve25519.NewScalar().SetUint64(42)
	r, err := curve25519.NewScalar().SetRandom(rand.Reader)
	if err != nil {
		panic(err)
	}
	commitment := new(curve25519.RistrettoPoint).VarTimeMultiScalarMult(
		[]*curve25519.Scalar{v, r},
		[]*curve25519.RistrettoPoint{curve25519.NewRistrettoGenerator(), p},
	)

	c := commitment.Compress()
	decoded, err := c.Decompress()
	if err != nil {
		panic(err)
	}
	fmt.Println(decoded.Equal(commitment) == 1)
	// Output:
	// true
}

func ExampleEdwardsPoint_VarTimeDoubleScalarBaseMult() {
	a := curve25519.NewScalar().SetUint64(3)
	b := curve25519.NewScalar().SetUint64(5)
	A := new(curve25519.EdwardsPoint).ScalarBaseMult(curve25519.NewScalar().SetUint64(7))

	// 3*(7*B) + 5*B = 26*B
	got := new(curve25519.EdwardsPoint).VarTimeDoubleScalarBaseMult(a, A, b)
	want := new(curve25519.EdwardsPoint).ScalarBaseMult(curve25519.NewScalar().SetUint64(26))
	fmt.Println(got.Equal(want) == 1)
	// Output:
	// true
}
