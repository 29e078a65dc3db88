// Copyright (C) 2024, CFMM Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// Address identifies an account or a token ledger.
type Address string

const EmptyAddress Address = ""

// DeriveAddress generates a deterministic address from a type prefix and
// an arbitrary payload.
func DeriveAddress(typeID uint8, payload []byte) Address {
	id := sha256.Sum256(payload)
	b := make([]byte, 1+sha256.Size)
	b[0] = typeID
	copy(b[1:], id[:])
	return Address(hex.EncodeToString(b))
}
