package ports

import (
	"context"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the
	// unique email index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by exact (already normalized) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindAll returns every user, newest-created first.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// SetActive flips the active flag and returns the updated user.
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
