//go:build !curve25519_u32 && (curve25519_u64 || !(386 || arm || mips || mipsle))

package field

import "github.com/AlexanderYastrebov/curve25519/internal/backend/u64"

// Backend names the limb representation compiled into Element.
const Backend = "u64"

type backendElement = u64.FieldElement
