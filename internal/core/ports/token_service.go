package ports

import "github.com/google/uuid"

// TokenService issues and validates signed, time-bound identity tokens.
type TokenService interface {
	// Issue builds and signs a token whose subject is the given user id.
	Issue(userID uuid.UUID) (string, error)
	// Validate verifies signature, issuer and expiry and returns the subject
	// claim. Any failure is reported as domain.ErrInvalidToken.
	Validate(token string) (string, error)
}
