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

// InvalidPasswordMessage is the text surfaced when a password re-check on an
// account mutation fails.
const InvalidPasswordMessage = "Invalid password."

// UserService implements profile reads and the self-service account
// mutations. Each mutation runs the ownership check first, re-verifies the
// password where the operation is sensitive, and synchronously invalidates
// the cached profile view on success.
type UserService struct {
	users     ports.UserRepository
	passwords *PasswordVerifier
	validator *access.Validator
	cache     ports.ProfileCache
	audit     ports.AuditSink
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	passwords *PasswordVerifier,
	validator *access.Validator,
	cache ports.ProfileCache,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		validator: validator,
		cache:     cache,
		audit:     audit,
		logger:    logger,
	}
}

// GetProfile returns the profile view for id. The full view is cached per
// user; stripping email and document for non-owner viewers happens after the
// cache read, so one cached entry serves every viewer.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*ports.ProfileView, error) {
	callerID, err := s.validator.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("profile cache read failed")
	}
	if view == nil {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		view = &ports.ProfileView{
			FullName:    user.FullName,
			Email:       user.Email,
			Document:    user.Document,
			MainRole:    string(user.MainRole),
			CurrentRole: string(user.CurrentRole),
		}
		if err := s.cache.Set(ctx, id, view); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("profile cache write failed")
		}
	}

	if callerID != id {
		return &ports.ProfileView{
			FullName:    view.FullName,
			MainRole:    view.MainRole,
			CurrentRole: view.CurrentRole,
		}, nil
	}
	return view, nil
}

// UpdateFullName renames the account. No password re-check: the name is not
// a credential.
func (s *UserService) UpdateFullName(ctx context.Context, id uuid.UUID, newFullName string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.FullName = newFullName
	if err := s.saveAndInvalidate(ctx, user); err != nil {
		return err
	}

	s.recordAudit(id, domain.AuditFullNameUpdated, "")
	return nil
}

// UpdateEmail changes the login handle after re-verifying the password and
// checking the new address is free.
func (s *UserService) UpdateEmail(ctx context.Context, id uuid.UUID, password, newEmail string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Verify(password, user.PasswordHash, InvalidPasswordMessage); err != nil {
		return err
	}

	taken, err := s.users.ExistsByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailExists
	}

	user.Email = newEmail
	if err := s.saveAndInvalidate(ctx, user); err != nil {
		return err
	}

	s.recordAudit(id, domain.AuditEmailUpdated, "")
	return nil
}

// UpdateDocument changes the tax/identity document after re-verifying the
// password and checking uniqueness.
func (s *UserService) UpdateDocument(ctx context.Context, id uuid.UUID, password, newDocument string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Verify(password, user.PasswordHash, InvalidPasswordMessage); err != nil {
		return err
	}

	taken, err := s.users.ExistsByDocument(ctx, newDocument)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDocumentExists
	}

	user.Document = newDocument
	if err := s.saveAndInvalidate(ctx, user); err != nil {
		return err
	}

	s.recordAudit(id, domain.AuditDocumentUpdated, "")
	return nil
}

// UpdatePassword replaces the stored hash after verifying the old password.
// The new password must differ from the old one. The profile cache is not
// touched: the hash is never part of the view.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Verify(oldPassword, user.PasswordHash, InvalidPasswordMessage); err != nil {
		return err
	}
	if newPassword == oldPassword {
		return domain.ErrSamePassword
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.recordAudit(id, domain.AuditPasswordUpdated, "")
	return nil
}

// ChangeRole switches the role the user is currently acting under. The main
// role stays fixed.
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, newRole string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	role, err := domain.ParseRole(newRole)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.CurrentRole = role
	if err := s.saveAndInvalidate(ctx, user); err != nil {
		return err
	}

	s.recordAudit(id, domain.AuditRoleChanged, string(role))
	return nil
}

// Delete permanently removes the account after re-verifying the password.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, password string) error {
	if err := s.validator.RequireSelf(ctx, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.passwords.Verify(password, user.PasswordHash, InvalidPasswordMessage); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("profile cache invalidation failed")
	}

	s.recordAudit(id, domain.AuditUserDeleted, "")
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func (s *UserService) saveAndInvalidate(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("profile cache invalidation failed")
	}
	return nil
}

func (s *UserService) recordAudit(id uuid.UUID, action, detail string) {
	s.audit.Record(domain.AuditEvent{
		UserID: id,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}
