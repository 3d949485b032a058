package services

import (
	"errors"

	"apteekki/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore performs one-way password hashing and verification.
// bcrypt salts per call, so the same plaintext yields different hashes.
type CredentialStore struct {
	cost int
}

// NewCredentialStore creates a CredentialStore with the given bcrypt cost.
// A cost of zero falls back to bcrypt.DefaultCost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Hash returns the bcrypt hash of the given plaintext password.
func (c *CredentialStore) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", apperror.NewInternal("failed to hash password", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is
// not an error; only a malformed hash encoding is.
func (c *CredentialStore) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperror.NewValidation("malformed password hash", err)
}
