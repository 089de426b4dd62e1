package repo

import (
	"context"
	"errors"

	"github.com/crucial707/account-service/internal/models"
)

var (
	// ErrNotFound is returned by lookups that match no record.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ==========================
// UserStore
// ==========================

// UserStore is the credential store. Emails passed in are already normalized.
// Create fills in ID, CreatedAt and UpdatedAt on the returned copy.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
}
