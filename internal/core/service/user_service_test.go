package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/ports"
	"github.com/skatespot/skatespot-api/internal/core/security"
)

func testUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, security.NewHasher(4), zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, username, email string) *domain.User {
	t.Helper()
	hasher := security.NewHasher(4)
	hash, err := hasher.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return user
}

func TestUserService_GetByID(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	got, err := svc.GetByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_SelfFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	bio := "goofy-footed since 2009"
	updated, err := svc.Update(context.Background(), alice.ID, ports.UpdateUserInput{Bio: &bio}, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}
}

func TestUserService_Update_PrivilegedFieldsRequireAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	role := domain.RoleModerator
	inactive := false

	// Non-admin callers cannot touch role or active flag.
	updated, err := svc.Update(context.Background(), alice.ID, ports.UpdateUserInput{
		Role: &role, IsActive: &inactive,
	}, false)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleUser || !updated.IsActive {
		t.Fatalf("privileged fields changed by non-admin: %+v", updated)
	}

	updated, err = svc.Update(context.Background(), alice.ID, ports.UpdateUserInput{
		Role: &role, IsActive: &inactive,
	}, true)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Role != domain.RoleModerator || updated.IsActive {
		t.Fatalf("admin update not applied: %+v", updated)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	bad := domain.Role("overlord")
	_, err := svc.Update(context.Background(), alice.ID, ports.UpdateUserInput{Role: &bad}, true)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	seedUser(t, repo, "alice", "alice@x.com")
	bob := seedUser(t, repo, "bob", "bob@x.com")

	taken := "alice"
	_, err := svc.Update(context.Background(), bob.ID, ports.UpdateUserInput{Username: &taken}, false)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	takenEmail := "alice@x.com"
	_, err = svc.Update(context.Background(), bob.ID, ports.UpdateUserInput{Email: &takenEmail}, false)
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	if err := svc.ChangePassword(context.Background(), alice.ID, "Secret123!", "NewSecret456!"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	hasher := security.NewHasher(4)
	stored, _ := repo.FindByID(context.Background(), alice.ID)
	if ok, _ := hasher.Verify("NewSecret456!", stored.PasswordHash); !ok {
		t.Fatalf("new password does not verify")
	}
	if ok, _ := hasher.Verify("Secret123!", stored.PasswordHash); ok {
		t.Fatalf("old password still verifies")
	}
}

func TestUserService_ChangePassword_WrongOld(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")

	err := svc.ChangePassword(context.Background(), alice.ID, "nope", "NewSecret456!")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestUserService_DeleteAndUndelete(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")
	ctx := context.Background()

	if err := svc.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stored, _ := repo.FindByID(ctx, alice.ID)
	if !stored.IsDeleted() {
		t.Fatalf("expected deleted_at to be set")
	}

	if err := svc.Undelete(ctx, alice.ID); err != nil {
		t.Fatalf("undelete: %v", err)
	}
	stored, _ = repo.FindByID(ctx, alice.ID)
	if stored.IsDeleted() {
		t.Fatalf("expected deleted_at to be cleared")
	}
}

func TestUserService_ActivateDeactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	alice := seedUser(t, repo, "alice", "alice@x.com")
	ctx := context.Background()

	if err := svc.Deactivate(ctx, alice.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	stored, _ := repo.FindByID(ctx, alice.ID)
	if stored.IsActive {
		t.Fatalf("expected inactive")
	}

	// Already-inactive is a no-op, not an error.
	if err := svc.Deactivate(ctx, alice.ID); err != nil {
		t.Fatalf("repeat deactivate: %v", err)
	}

	if err := svc.Activate(ctx, alice.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	stored, _ = repo.FindByID(ctx, alice.ID)
	if !stored.IsActive {
		t.Fatalf("expected active")
	}
}

func TestUserService_List_Paging(t *testing.T) {
	repo := newStubUserRepo()
	svc := testUserService(repo)
	for i := 0; i < 5; i++ {
		seedUser(t, repo, "user"+string(rune('a'+i)), "u"+string(rune('a'+i))+"@x.com")
	}

	page, err := svc.List(context.Background(), ports.ListUsersInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("expected total 5, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageSize},
		{-3, -1, 1, defaultPageSize},
		{2, 50, 2, 50},
		{1, 500, 1, maxPageSize},
	}
	for _, tt := range tests {
		gotPage, gotLimit := clampPage(tt.page, tt.limit)
		if gotPage != tt.wantPage || gotLimit != tt.wantLimit {
			t.Fatalf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, gotPage, gotLimit, tt.wantPage, tt.wantLimit)
		}
	}
}
