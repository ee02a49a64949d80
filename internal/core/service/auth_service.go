package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

// AuthService implements login and registration.
type AuthService struct {
	users     ports.UserRepository
	passwords *PasswordVerifier
	tokens    ports.TokenService
	audit     ports.AuditSink
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	passwords *PasswordVerifier,
	tokens ports.TokenService,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		audit:     audit,
		logger:    logger,
	}
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password are indistinguishable to the caller: both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.passwords.Verify(password, user.PasswordHash, ""); err != nil {
		s.audit.Record(domain.AuditEvent{
			UserID: user.ID,
			Action: domain.AuditLoginFailed,
			At:     time.Now().UTC(),
		})
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEvent{
		UserID: user.ID,
		Action: domain.AuditLoginSucceeded,
		At:     time.Now().UTC(),
	})
	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return token, nil
}

// Register creates a new account. Email and document uniqueness are
// pre-checked symmetrically; the storage layer's unique constraints remain
// the final arbiter under concurrency, and a constraint violation at write
// time surfaces as the matching *Exists error. No token is issued here.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	emailTaken, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return domain.ErrEmailExists
	}

	documentTaken, err := s.users.ExistsByDocument(ctx, input.Document)
	if err != nil {
		return err
	}
	if documentTaken {
		return domain.ErrDocumentExists
	}

	mainRole, err := domain.ParseRole(input.MainRole)
	if err != nil {
		return err
	}
	currentRole := mainRole
	if input.CurrentRole != "" {
		if currentRole, err = domain.ParseRole(input.CurrentRole); err != nil {
			return err
		}
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Document:     input.Document,
		Email:        input.Email,
		PasswordHash: hash,
		MainRole:     mainRole,
		CurrentRole:  currentRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		UserID: user.ID,
		Action: domain.AuditUserRegistered,
		At:     now,
	})
	s.logger.Info().Str("user_id", user.ID.String()).Str("main_role", string(mainRole)).Msg("user registered")

	return nil
}
