package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

// CreateProjectInput carries the data to publish a new project listing.
type CreateProjectInput struct {
	Title                string
	Description          string
	DeadlineStart        time.Time
	DeadlineEnd          time.Time
	EstimatedBudgetCents int64
}

// ProjectPage is one page of project listings.
type ProjectPage struct {
	Projects []domain.Project `json:"projects"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Total    int64            `json:"total"`
}

// ProjectService manages project listings. Creation is restricted to users
// currently acting as clients; every mutation is gated on ownership.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, page, size int) (*ProjectPage, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, newTitle string) error
	UpdateDescription(ctx context.Context, id uuid.UUID, newDescription string) error
	UpdateDeadline(ctx context.Context, id uuid.UUID, start, end time.Time) error
	UpdateEstimatedBudget(ctx context.Context, id uuid.UUID, newBudgetCents int64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) error
	Delete(ctx context.Context, id uuid.UUID, password string) error
}
