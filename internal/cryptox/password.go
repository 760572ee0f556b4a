// Package cryptox implements password hashing for user credentials using
// argon2id with a per-user random salt.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/ospinae/termledger/internal/common"
)

const saltSize = 32

// NewSalt returns a fresh random salt for a new credential.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// HashPassword derives a 32-byte argon2id hash from the password and salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword reports whether the candidate password matches the stored
// hash, in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
