package ports

import (
	"context"

	"github.com/google/uuid"
)

// ProfileView is the cached, externally visible projection of a user.
// Email and Document are stripped before the view is shown to anyone other
// than the profile owner.
type ProfileView struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	Document    string `json:"document,omitempty"`
	MainRole    string `json:"main_role"`
	CurrentRole string `json:"current_role"`
}

// UserService exposes profile reads and the self-service account mutations.
// Every mutation verifies that the caller owns the target account before
// touching it.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileView, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, newFullName string) error
	UpdateEmail(ctx context.Context, id uuid.UUID, password, newEmail string) error
	UpdateDocument(ctx context.Context, id uuid.UUID, password, newDocument string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
	ChangeRole(ctx context.Context, id uuid.UUID, newRole string) error
	Delete(ctx context.Context, id uuid.UUID, password string) error
}
