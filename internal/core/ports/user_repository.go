package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Uniqueness of email and document is ultimately enforced by the storage
// layer; Create and Update must map a constraint violation back to
// domain.ErrEmailExists or domain.ErrDocumentExists.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByDocument(ctx context.Context, document string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
