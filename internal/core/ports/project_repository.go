package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// ProjectRepository defines the persistence contract for project listings.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// FindAll returns one page of projects ordered by creation time
	// descending, plus the total number of projects.
	FindAll(ctx context.Context, page, size int) ([]domain.Project, int64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}
