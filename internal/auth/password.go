package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MaxPasswordLength is the longest input bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// ErrSecretNotConfigured is returned when no owner secret hash is set.
var ErrSecretNotConfigured = errors.New("owner secret not configured")

// HashPassword hashes a plaintext password or secret with the given cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// VerifyOwnerSecret checks the secret presented during owner registration.
// An empty hash disables owner registration.
func VerifyOwnerSecret(hash, secret string) error {
	if hash == "" {
		return ErrSecretNotConfigured
	}
	return ComparePassword(hash, secret)
}
