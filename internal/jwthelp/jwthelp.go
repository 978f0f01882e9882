package jwthelp

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewJTI returns a unique id for a refresh token's "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// Sha256Hex hashes a raw token for at-rest storage.
func Sha256Hex(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
