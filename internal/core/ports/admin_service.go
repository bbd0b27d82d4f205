package ports

import (
	"context"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// CreateUserInput carries the admin user-creation fields. Role is validated
// against the closed role set but otherwise honored as supplied.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AdminService implements admin-only account management.
type AdminService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// ListUsers returns all accounts, newest-created first.
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// SetUserActive flips the active flag for the given account.
	SetUserActive(ctx context.Context, id string, active bool) (*domain.User, error)
}
