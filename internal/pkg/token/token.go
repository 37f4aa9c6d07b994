// Package token mints share tokens: 16 lowercase hex characters, 64 bits
// of entropy. Tokens are generated independently of the content they name;
// collisions are possible in principle and resolved by the ingestion
// path's retry against the store's unique index.
package token

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Length of a share token in hex characters.
const Length = 16

// Mint returns a fresh share token.
func Mint() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(u[:Length/2]), nil
}
