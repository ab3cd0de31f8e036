package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced here rather than in handlers so every
// path that stores a credential (registration, admin bootstrap) gets the
// same rule.
const MinPasswordLength = 8

// bcrypt cost 12 keeps hashing around 250ms on current hardware
const passwordHashCost = 12

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword returns a bcrypt hash of password, rejecting passwords
// below the minimum length.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares password with a stored hash. A mismatch returns
// ErrPasswordMismatch; any other error means the hash itself is bad.
func VerifyPassword(password, hash string) error {
	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}
