package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// ProfileCache is the read-through cache of profile views, keyed by user id.
// Get returns (nil, nil) on a miss. Implementations may fail without
// affecting correctness; callers fall back to the repository.
type ProfileCache interface {
	Get(ctx context.Context, id uuid.UUID) (*ProfileView, error)
	Set(ctx context.Context, id uuid.UUID, view *ProfileView) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ProjectCache is the read-through cache of project views, keyed by project id.
type ProjectCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Set(ctx context.Context, id uuid.UUID, project *domain.Project) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
