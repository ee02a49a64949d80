package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the marketplace role a user acts under.
type Role string

const (
	RoleClient     Role = "CLIENT"
	RoleFreelancer Role = "FREELANCER"
)

// ParseRole converts a user-supplied role name into a Role.
// Matching is case-insensitive; unknown values return ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, nil
	case RoleFreelancer:
		return RoleFreelancer, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an account in the marketplace. MainRole is fixed at
// registration; CurrentRole is the role the user is presently acting under
// and may be switched at any time.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Document     string    `json:"document"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	MainRole     Role      `json:"main_role"`
	CurrentRole  Role      `json:"current_role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
