//go:build curve25519_u32 || (!curve25519_u64 && (386 || arm || mips || mipsle))

package curve25519

import "github.com/AlexanderYastrebov/curve25519/internal/backend/u32"

type unpackedScalar = u32.Scalar29
