package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/domain"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/memory"
)

func seedUsers(t *testing.T, store *memory.Store) (admin, editor, viewer *domain.User) {
	t.Helper()
	users := store.Users()
	ctx := context.Background()
	var err error
	if admin, err = users.Create(ctx, "Admin", "admin@x.com", "h", domain.RoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if editor, err = users.Create(ctx, "Editor", "editor@x.com", "h", domain.RoleEditor); err != nil {
		t.Fatalf("seed editor: %v", err)
	}
	if viewer, err = users.Create(ctx, "Viewer", "viewer@x.com", "h", domain.RoleViewer); err != nil {
		t.Fatalf("seed viewer: %v", err)
	}
	return admin, editor, viewer
}

func TestListUsers(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store)
	svc := NewUserAdminService(store.Users())
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, UserListFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 || len(result.Users) != 3 || result.Limit != defaultUserListLimit {
			t.Fatalf("unexpected result %+v", result)
		}
	})

	t.Run("role filter", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, UserListFilter{Roles: []string{"Admin", "editor"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 2 {
			t.Fatalf("expected 2 matches, got %d", result.Total)
		}
		for _, u := range result.Users {
			if u.Role == domain.RoleViewer {
				t.Fatalf("viewer should be filtered out")
			}
		}
	})

	t.Run("paging clamps", func(t *testing.T) {
		result, err := svc.ListUsers(ctx, UserListFilter{Limit: 1000, Offset: -4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Limit != maxUserListLimit || result.Offset != 0 {
			t.Fatalf("expected clamped paging, got %d/%d", result.Limit, result.Offset)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		if _, err := svc.ListUsers(ctx, UserListFilter{Roles: []string{"root"}}); !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})
}

func TestUpdateRole(t *testing.T) {
	store := memory.NewStore()
	admin, _, viewer := seedUsers(t, store)
	svc := NewUserAdminService(store.Users())
	ctx := context.Background()

	updated, err := svc.UpdateRole(ctx, admin.ID, viewer.ID, " EDITOR ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleEditor {
		t.Fatalf("expected editor, got %s", updated.Role)
	}

	if _, err := svc.UpdateRole(ctx, admin.ID, viewer.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.UpdateRole(ctx, admin.ID, uuid.New(), "viewer"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.UpdateRole(ctx, admin.ID, admin.ID, "viewer"); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	store := memory.NewStore()
	admin, editor, viewer := seedUsers(t, store)
	svc := NewUserAdminService(store.Users())
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, admin.ID, viewer.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, viewer.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}

	if _, err := store.Blogs().Create(ctx, editor.ID, "t", "c", domain.BlogContentPlain); err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, editor.ID); !errors.Is(err, ErrUserHasContent) {
		t.Fatalf("expected ErrUserHasContent, got %v", err)
	}
}
