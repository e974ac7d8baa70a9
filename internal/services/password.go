package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hashes plaintext passwords and checks them against stored
// hashes. bcrypt embeds the salt and cost in the hash string, and its
// comparison runs in constant time.
type PasswordVerifier struct {
	cost int
}

// NewPasswordVerifier creates a PasswordVerifier with the default bcrypt cost.
func NewPasswordVerifier() *PasswordVerifier {
	return &PasswordVerifier{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt hash of the plaintext.
func (v *PasswordVerifier) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (v *PasswordVerifier) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
