package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// PasswordVerifier hashes secrets and compares presented secrets against
// stored hashes. bcrypt salts every hash, so two hashes of the same secret
// never compare equal byte-wise.
type PasswordVerifier struct {
	cost int
}

// NewPasswordVerifier returns a verifier with the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewPasswordVerifier(cost int) *PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVerifier{cost: cost}
}

// Hash derives a one-way hash of the raw secret.
func (v *PasswordVerifier) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), v.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares raw against storedHash. On mismatch it returns a
// PasswordError carrying the caller-supplied message, letting each call site
// surface tailored text while remaining matchable via
// errors.Is(err, domain.ErrInvalidPassword).
func (v *PasswordVerifier) Verify(raw, storedHash, message string) error {
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) != nil {
		return &domain.PasswordError{Message: message}
	}
	return nil
}
