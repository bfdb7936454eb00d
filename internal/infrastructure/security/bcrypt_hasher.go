// Package security holds the password hashing and token signing adapters.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the fixed bcrypt work factor.
const PasswordCost = 10

// BcryptHasher implements ports.PasswordHasher with salted bcrypt digests.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: PasswordCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
