package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
// bcrypt salts every call, so hashing the same plaintext twice
// yields different digests.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("credentials: hash failed: %w", err)
	}

	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with a stored digest.
// A plain mismatch returns (false, nil); a malformed digest or an
// internal bcrypt failure returns an error and must never be read
// as a match.
func VerifyPassword(hash string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("credentials: verify failed: %w", err)
}
