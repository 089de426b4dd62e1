package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/crucial707/account-service/internal/models"
)

func TestMemoryUserRepo_CreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.User{Email: "a@b.com", Name: "A", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", created)
	}

	byEmail, err := repo.FindByEmail(ctx, "a@b.com")
	if err != nil || byEmail.ID != created.ID {
		t.Errorf("FindByEmail: got %+v, %v", byEmail, err)
	}
	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil || byID.Email != "a@b.com" {
		t.Errorf("FindByID: got %+v, %v", byID, err)
	}
}

func TestMemoryUserRepo_Duplicate(t *testing.T) {
	repo := NewMemoryUserRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, models.User{Email: "a@b.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, models.User{Email: "a@b.com", Name: "other"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestMemoryUserRepo_NotFound(t *testing.T) {
	repo := NewMemoryUserRepo()
	if _, err := repo.FindByEmail(context.Background(), "x@y.z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByEmail: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUserRepo_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryUserRepo().Create(ctx, models.User{Email: "a@b.com"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
