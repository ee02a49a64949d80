package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/freelancehub/marketplace-api/internal/core/access"
	"github.com/freelancehub/marketplace-api/internal/core/domain"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubProfileCache, *stubAuditSink) {
	t.Helper()

	repo := newStubUserRepo()
	cache := newStubProfileCache()
	audit := &stubAuditSink{}
	svc := NewUserService(repo, NewPasswordVerifier(4), access.NewValidator(repo), cache, audit, testLogger())
	return svc, repo, cache, audit
}

func asUser(id uuid.UUID) context.Context {
	return access.WithPrincipal(context.Background(), access.Principal{
		Subject:       id.String(),
		Authenticated: true,
	})
}

func TestGetProfileOwnerSeesEverything(t *testing.T) {
	svc, repo, _, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)

	view, err := svc.GetProfile(asUser(user.ID), user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if view.Email != "ana@example.com" || view.Document != "12345678901" {
		t.Fatalf("owner view missing private fields: %+v", view)
	}
}

func TestGetProfileStripsPrivateFieldsForOthers(t *testing.T) {
	svc, repo, cache, _ := newUserFixture(t)
	owner := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	viewer := repo.seedUser(t, "bob@example.com", "98765432109", "hunter22", domain.RoleFreelancer)

	view, err := svc.GetProfile(asUser(viewer.ID), owner.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if view.Email != "" || view.Document != "" {
		t.Fatalf("non-owner view leaks private fields: %+v", view)
	}
	if view.FullName != owner.FullName {
		t.Fatalf("full name = %q, want %q", view.FullName, owner.FullName)
	}

	// The cached entry keeps the full view; only the response is stripped.
	cached := cache.entries[owner.ID]
	if cached == nil || cached.Email != "ana@example.com" {
		t.Fatalf("cached view = %+v, want full view", cached)
	}

	// Second read is served from cache and stripped the same way.
	again, err := svc.GetProfile(asUser(viewer.ID), owner.ID)
	if err != nil {
		t.Fatalf("GetProfile (cached): %v", err)
	}
	if again.Email != "" || again.Document != "" {
		t.Fatalf("cached non-owner view leaks private fields: %+v", again)
	}
}

func TestGetProfileRequiresIdentity(t *testing.T) {
	svc, repo, _, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)

	if _, err := svc.GetProfile(context.Background(), user.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("GetProfile without identity = %v, want ErrAccessDenied", err)
	}
}

func TestUpdateFullNameRequiresSelf(t *testing.T) {
	svc, repo, cache, audit := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	other := repo.seedUser(t, "bob@example.com", "98765432109", "hunter22", domain.RoleClient)

	err := svc.UpdateFullName(asUser(other.ID), user.ID, "Mallory")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("foreign update = %v, want ErrAccessDenied", err)
	}

	if err := svc.UpdateFullName(asUser(user.ID), user.ID, "Ana Maria Souza"); err != nil {
		t.Fatalf("self update: %v", err)
	}

	updated, _ := repo.FindByID(context.Background(), user.ID)
	if updated.FullName != "Ana Maria Souza" {
		t.Fatalf("full name = %q, want %q", updated.FullName, "Ana Maria Souza")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != user.ID {
		t.Fatalf("cache invalidations = %v, want [%s]", cache.invalidated, user.ID)
	}
	actions := audit.actions()
	if len(actions) != 1 || actions[0] != domain.AuditFullNameUpdated {
		t.Fatalf("audit actions = %v, want [%s]", actions, domain.AuditFullNameUpdated)
	}
}

func TestUpdateEmailChecksPasswordAndUniqueness(t *testing.T) {
	svc, repo, _, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	repo.seedUser(t, "taken@example.com", "98765432109", "hunter22", domain.RoleClient)

	err := svc.UpdateEmail(asUser(user.ID), user.ID, "wrong", "new@example.com")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("wrong password = %v, want ErrInvalidPassword", err)
	}

	err = svc.UpdateEmail(asUser(user.ID), user.ID, "hunter22", "taken@example.com")
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("taken email = %v, want ErrEmailExists", err)
	}

	if err := svc.UpdateEmail(asUser(user.ID), user.ID, "hunter22", "new@example.com"); err != nil {
		t.Fatalf("UpdateEmail: %v", err)
	}
	updated, _ := repo.FindByID(context.Background(), user.ID)
	if updated.Email != "new@example.com" {
		t.Fatalf("email = %q, want %q", updated.Email, "new@example.com")
	}
}

// racedUpdateRepo lets the uniqueness pre-check pass and rejects the write
// itself, as when two updates to the same value race each other.
type racedUpdateRepo struct {
	*stubUserRepo
	updateErr error
}

func (r *racedUpdateRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *racedUpdateRepo) ExistsByDocument(context.Context, string) (bool, error) { return false, nil }
func (r *racedUpdateRepo) Update(context.Context, *domain.User) error             { return r.updateErr }

func TestUpdateEmailSurfacesWriteTimeConflict(t *testing.T) {
	base := newStubUserRepo()
	user := base.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	repo := &racedUpdateRepo{stubUserRepo: base, updateErr: domain.ErrEmailExists}
	svc := NewUserService(repo, NewPasswordVerifier(4), access.NewValidator(repo), newStubProfileCache(), &stubAuditSink{}, testLogger())

	err := svc.UpdateEmail(asUser(user.ID), user.ID, "hunter22", "taken@example.com")
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("UpdateEmail with write-time conflict = %v, want ErrEmailExists", err)
	}
}

func TestUpdateDocumentSurfacesWriteTimeConflict(t *testing.T) {
	base := newStubUserRepo()
	user := base.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	repo := &racedUpdateRepo{stubUserRepo: base, updateErr: domain.ErrDocumentExists}
	svc := NewUserService(repo, NewPasswordVerifier(4), access.NewValidator(repo), newStubProfileCache(), &stubAuditSink{}, testLogger())

	err := svc.UpdateDocument(asUser(user.ID), user.ID, "hunter22", "98765432109")
	if !errors.Is(err, domain.ErrDocumentExists) {
		t.Fatalf("UpdateDocument with write-time conflict = %v, want ErrDocumentExists", err)
	}
}

func TestUpdateDocumentChecksUniqueness(t *testing.T) {
	svc, repo, _, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)
	repo.seedUser(t, "bob@example.com", "98765432109", "hunter22", domain.RoleClient)

	err := svc.UpdateDocument(asUser(user.ID), user.ID, "hunter22", "98765432109")
	if !errors.Is(err, domain.ErrDocumentExists) {
		t.Fatalf("taken document = %v, want ErrDocumentExists", err)
	}

	if err := svc.UpdateDocument(asUser(user.ID), user.ID, "hunter22", "11122233344"); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, repo, cache, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)

	err := svc.UpdatePassword(asUser(user.ID), user.ID, "hunter22", "hunter22")
	if !errors.Is(err, domain.ErrSamePassword) {
		t.Fatalf("same password = %v, want ErrSamePassword", err)
	}

	err = svc.UpdatePassword(asUser(user.ID), user.ID, "wrong", "new-secret")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("wrong old password = %v, want ErrInvalidPassword", err)
	}

	if err := svc.UpdatePassword(asUser(user.ID), user.ID, "hunter22", "new-secret"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	updated, _ := repo.FindByID(context.Background(), user.ID)
	if err := NewPasswordVerifier(4).Verify("new-secret", updated.PasswordHash, "x"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}

	// The hash never appears in the view, so no invalidation happens.
	if len(cache.invalidated) != 0 {
		t.Fatalf("cache invalidations = %v, want none", cache.invalidated)
	}
}

func TestChangeRole(t *testing.T) {
	svc, repo, _, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)

	if err := svc.ChangeRole(asUser(user.ID), user.ID, "robot"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("unknown role = %v, want ErrInvalidRole", err)
	}

	if err := svc.ChangeRole(asUser(user.ID), user.ID, "freelancer"); err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	updated, _ := repo.FindByID(context.Background(), user.ID)
	if updated.CurrentRole != domain.RoleFreelancer {
		t.Fatalf("current role = %q, want %q", updated.CurrentRole, domain.RoleFreelancer)
	}
	if updated.MainRole != domain.RoleClient {
		t.Fatalf("main role changed to %q, must stay %q", updated.MainRole, domain.RoleClient)
	}
}

func TestDeleteRequiresPassword(t *testing.T) {
	svc, repo, cache, _ := newUserFixture(t)
	user := repo.seedUser(t, "ana@example.com", "12345678901", "hunter22", domain.RoleClient)

	err := svc.Delete(asUser(user.ID), user.ID, "wrong")
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("wrong password = %v, want ErrInvalidPassword", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); err != nil {
		t.Fatalf("user must survive a failed delete: %v", err)
	}

	if err := svc.Delete(asUser(user.ID), user.ID, "hunter22"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("deleted user lookup = %v, want ErrUserNotFound", err)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("cache invalidations = %v, want one", cache.invalidated)
	}
}
