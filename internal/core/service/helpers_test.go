package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelancehub/marketplace-api/internal/core/domain"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

// testKeyPair generates a fresh RSA key pair PEM-encoded the way production
// key files are.
func testKeyPair(t *testing.T) (privPEM, pubPEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}

	privPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privPEM, pubPEM
}

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()

	privPEM, pubPEM := testKeyPair(t)
	svc, err := NewTokenService(privPEM, pubPEM, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

// stubUserRepo is an in-memory ports.UserRepository enforcing the same
// uniqueness rules the real store does.
type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByDocument(_ context.Context, document string) (bool, error) {
	for _, u := range r.users {
		if u.Document == document {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
		if u.Document == user.Document {
			return domain.ErrDocumentExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
		if u.Document == user.Document {
			return domain.ErrDocumentExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seedUser inserts a user with the given password and returns it.
func (r *stubUserRepo) seedUser(t *testing.T, email, document, password string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     "Test User",
		Document:     document,
		Email:        email,
		PasswordHash: string(hash),
		MainRole:     role,
		CurrentRole:  role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.users[user.ID] = user
	return cloneUser(user)
}

// stubAuditSink records events synchronously for assertions.
type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *stubAuditSink) Record(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubAuditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, 0, len(s.events))
	for _, e := range s.events {
		actions = append(actions, e.Action)
	}
	return actions
}

// stubProfileCache is an in-memory ports.ProfileCache tracking invalidations.
type stubProfileCache struct {
	entries     map[uuid.UUID]*ports.ProfileView
	invalidated []uuid.UUID
	getCalls    int
	setCalls    int
}

func newStubProfileCache() *stubProfileCache {
	return &stubProfileCache{entries: make(map[uuid.UUID]*ports.ProfileView)}
}

func (c *stubProfileCache) Get(_ context.Context, id uuid.UUID) (*ports.ProfileView, error) {
	c.getCalls++
	v, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	clone := *v
	return &clone, nil
}

func (c *stubProfileCache) Set(_ context.Context, id uuid.UUID, view *ports.ProfileView) error {
	c.setCalls++
	clone := *view
	c.entries[id] = &clone
	return nil
}

func (c *stubProfileCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

// stubProjectCache is an in-memory ports.ProjectCache.
type stubProjectCache struct {
	entries     map[uuid.UUID]*domain.Project
	invalidated []uuid.UUID
}

func newStubProjectCache() *stubProjectCache {
	return &stubProjectCache{entries: make(map[uuid.UUID]*domain.Project)}
}

func (c *stubProjectCache) Get(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (c *stubProjectCache) Set(_ context.Context, id uuid.UUID, project *domain.Project) error {
	clone := *project
	c.entries[id] = &clone
	return nil
}

func (c *stubProjectCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

// stubProjectRepo is an in-memory ports.ProjectRepository.
type stubProjectRepo struct {
	projects map[uuid.UUID]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uuid.UUID]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) FindAll(_ context.Context, page, size int) ([]domain.Project, int64, error) {
	all := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		all = append(all, *p)
	}
	start := page * size
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
