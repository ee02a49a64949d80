package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

// Validator resolves the caller's identity from the request context and
// enforces self-only and role-based access rules. It is the single place
// token subjects are parsed, so every call site rejects with the same
// semantics.
type Validator struct {
	users ports.UserRepository
}

func NewValidator(users ports.UserRepository) *Validator {
	return &Validator{users: users}
}

// CurrentIdentity returns the authenticated user's id. The failure modes are
// distinguishable through their messages but all satisfy
// errors.Is(err, domain.ErrAccessDenied).
func (v *Validator) CurrentIdentity(ctx context.Context) (uuid.UUID, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || !p.Authenticated {
		return uuid.Nil, domain.DeniedAccess()
	}

	if p.Subject == "" {
		return uuid.Nil, &domain.AccessError{Message: "Invalid authentication token: missing user identifier."}
	}

	id, err := uuid.Parse(p.Subject)
	if err != nil {
		return uuid.Nil, &domain.AccessError{Message: "Invalid authentication token: malformed user identifier."}
	}

	return id, nil
}

// RequireSelf fails unless the caller's identity equals target. It is the
// ownership primitive every mutating account and project operation runs
// before doing anything else.
func (v *Validator) RequireSelf(ctx context.Context, target uuid.UUID) error {
	id, err := v.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	if id != target {
		return domain.DeniedAccess()
	}
	return nil
}

// RequireRole fails unless the caller is currently acting under the given
// role. On success the caller's id is returned so the operation does not
// need a second identity lookup.
func (v *Validator) RequireRole(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	id, err := v.CurrentIdentity(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := v.users.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if user.CurrentRole != role {
		return uuid.Nil, domain.DeniedAccess()
	}

	return id, nil
}
