// Package auth hashes the enable secret and produces the digests written
// by "service password-encryption".
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptPrefix = "$2"

// HashSecret returns the bcrypt hash stored for "enable secret".
func HashSecret(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash enable secret: %w", err)
	}
	return string(h), nil
}

// CheckSecret compares a typed secret with a stored value. Values stored
// before hashing was introduced are compared as plain text.
func CheckSecret(stored, typed string) bool {
	if stored == "" {
		return false
	}
	if !IsHashed(stored) {
		return stored == typed
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(typed)) == nil
}

// IsHashed reports whether s looks like a bcrypt hash.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, bcryptPrefix)
}

// Digest returns the lowercase hex SHA-256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
