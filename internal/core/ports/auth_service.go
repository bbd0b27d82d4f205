package ports

import (
	"context"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// RegisterInput carries the public self-registration fields. The role is
// never client-supplied: registration always yields a CONTRACTOR account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements self-registration and login.
type AuthService interface {
	// Register creates a CONTRACTOR account and returns it with a signed token.
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	// Login authenticates by email and password and returns the user with a
	// signed token. Unknown email and wrong password both yield
	// domain.ErrInvalidCredentials; a deactivated account with a correct
	// password yields domain.ErrAccountDeactivated.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
