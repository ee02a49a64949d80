package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace-api/internal/core/access"
	"github.com/freelancehub/marketplace-api/internal/core/domain"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

const defaultPageSize = 10

// deletePasswordMessage is surfaced when the owner's password re-check fails
// on project deletion.
const deletePasswordMessage = "Incorrect password. The project was not deleted."

// ProjectService manages project listings. Only users currently acting as
// clients may create listings; every mutation is gated on ownership of the
// listing.
type ProjectService struct {
	projects  ports.ProjectRepository
	users     ports.UserRepository
	passwords *PasswordVerifier
	validator *access.Validator
	cache     ports.ProjectCache
	audit     ports.AuditSink
	logger    zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	passwords *PasswordVerifier,
	validator *access.Validator,
	cache ports.ProjectCache,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		users:     users,
		passwords: passwords,
		validator: validator,
		cache:     cache,
		audit:     audit,
		logger:    logger,
	}
}

// Create publishes a new listing owned by the caller. Requires the caller to
// be acting as a client.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	ownerID, err := s.validator.RequireRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Deadline: domain.Deadline{
			StartDate: input.DeadlineStart,
			EndDate:   input.DeadlineEnd,
		},
		EstimatedBudget: input.EstimatedBudgetCents,
		Status:          domain.StatusOpen,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.recordAudit(ownerID, domain.AuditProjectCreated, project.ID.String())
	s.logger.Info().Str("project_id", project.ID.String()).Str("owner_id", ownerID.String()).Msg("project created")

	return project, nil
}

// List returns one page of listings, newest first. Requires authentication.
func (s *ProjectService) List(ctx context.Context, page, size int) (*ports.ProjectPage, error) {
	if _, err := s.validator.CurrentIdentity(ctx); err != nil {
		return nil, err
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	projects, total, err := s.projects.FindAll(ctx, page, size)
	if err != nil {
		return nil, err
	}

	return &ports.ProjectPage{Projects: projects, Page: page, Size: size, Total: total}, nil
}

// Get returns a single listing through the read-through cache.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if _, err := s.validator.CurrentIdentity(ctx); err != nil {
		return nil, err
	}

	project, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("project cache read failed")
	}
	if project != nil {
		return project, nil
	}

	project, err = s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, id, project); err != nil {
		s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("project cache write failed")
	}
	return project, nil
}

// UpdateTitle renames the listing.
func (s *ProjectService) UpdateTitle(ctx context.Context, id uuid.UUID, newTitle string) error {
	return s.mutate(ctx, id, func(p *domain.Project) error {
		p.Title = newTitle
		return nil
	})
}

// UpdateDescription rewrites the listing description.
func (s *ProjectService) UpdateDescription(ctx context.Context, id uuid.UUID, newDescription string) error {
	return s.mutate(ctx, id, func(p *domain.Project) error {
		p.Description = newDescription
		return nil
	})
}

// UpdateDeadline replaces the execution window.
func (s *ProjectService) UpdateDeadline(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	return s.mutate(ctx, id, func(p *domain.Project) error {
		p.Deadline = domain.Deadline{StartDate: start, EndDate: end}
		return nil
	})
}

// UpdateEstimatedBudget replaces the estimated budget.
func (s *ProjectService) UpdateEstimatedBudget(ctx context.Context, id uuid.UUID, newBudgetCents int64) error {
	return s.mutate(ctx, id, func(p *domain.Project) error {
		p.EstimatedBudget = newBudgetCents
		return nil
	})
}

// UpdateStatus moves the listing to a new lifecycle state.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) error {
	status, err := domain.ParseProjectStatus(newStatus)
	if err != nil {
		return err
	}
	return s.mutate(ctx, id, func(p *domain.Project) error {
		p.Status = status
		return nil
	})
}

// Delete removes the listing after re-verifying the owner's password.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID, password string) error {
	project, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.users.FindByID(ctx, project.OwnerID)
	if err != nil {
		return err
	}
	if err := s.passwords.Verify(password, owner.PasswordHash, deletePasswordMessage); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("project cache invalidation failed")
	}

	s.recordAudit(project.OwnerID, domain.AuditProjectDeleted, id.String())
	return nil
}

// mutate loads the listing, enforces ownership, applies fn and persists the
// result, refreshing the cached view in place.
func (s *ProjectService) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Project) error) error {
	project, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}

	if err := fn(project); err != nil {
		return err
	}

	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, project); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, id, project); err != nil {
		s.logger.Warn().Err(err).Str("project_id", id.String()).Msg("project cache refresh failed")
	}

	s.recordAudit(project.OwnerID, domain.AuditProjectUpdated, id.String())
	return nil
}

func (s *ProjectService) findOwned(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.RequireSelf(ctx, project.OwnerID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) recordAudit(userID uuid.UUID, action, detail string) {
	s.audit.Record(domain.AuditEvent{
		UserID: userID,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}
