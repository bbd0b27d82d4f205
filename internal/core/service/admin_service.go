package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

// AdminService implements admin-only account management.
type AdminService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, logger: logger}
}

// CreateUser creates an account with an explicit role. Unlike registration
// the role is honored, but it must be one of the three known values.
func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.NewValidationError("Please provide name, email, password, and role")
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("Invalid role. Must be ADMIN, MANAGER, or CONTRACTOR")
	}

	if err := validateAccountFields(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user created by admin")
	return created, nil
}

// ListUsers returns all accounts, newest-created first.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// SetUserActive flips the active flag on an account.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	user, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Bool("active", active).Msg("user status updated")
	return user, nil
}

// AdminSeed is the reserved bootstrap admin account configuration.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdminSeed guarantees the reserved admin account exists. It creates
// the account only when absent; an existing account is left untouched so a
// rotated password survives restarts. Idempotent, invoked once at startup.
func EnsureAdminSeed(ctx context.Context, users ports.UserRepository, seed AdminSeed, logger zerolog.Logger) error {
	email := normalizeEmail(seed.Email)

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		logger.Debug().Str("email", email).Msg("admin seed present")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("admin seed lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("admin seed hash: %w", err)
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Name:         seed.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent replica may have won the race on the unique index.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("admin seed create: %w", err)
	}

	logger.Info().Str("email", email).Msg("admin seed created")
	return nil
}
