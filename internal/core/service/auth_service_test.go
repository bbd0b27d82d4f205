package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

func registerInput(name, email, password string) ports.RegisterInput {
	return ports.RegisterInput{Name: name, Email: email, Password: password}
}

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byEmail[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsActive = active
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	l.calls++
	return l.allowed, l.err
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_ForcesContractor(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Register(context.Background(), registerInput("Alice", "alice@x.com", "secret1"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleContractor {
		t.Fatalf("expected CONTRACTOR role, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected active account")
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@x.com", "secret1"},
		{"A", "a@x.com", "secret1"},
		{"Alice", "not-an-email", "secret1"},
		{"Alice", "a@x", "secret1"},
		{"Alice", "a@x.com", "short"},
	}
	for _, tc := range cases {
		_, _, err := svc.Register(ctx, registerInput(tc.name, tc.email, tc.password))
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, registerInput("Alice", "alice@x.com", "secret1")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := svc.Register(ctx, registerInput("Alice Two", "  ALICE@X.com ", "secret2"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerInput("Alice", "alice@x.com", "secret1"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(ctx, "ALICE@X.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleContractor) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["sub"] != created.ID {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	_, _, _ = svc.Register(ctx, registerInput("Alice", "alice@x.com", "secret1"))

	_, _, errWrongPassword := svc.Login(ctx, "alice@x.com", "wrong")
	_, _, errUnknownEmail := svc.Login(ctx, "ghost@x.com", "whatever")

	if !errors.Is(errWrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknownEmail)
	}
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	created, _, err := svc.Register(ctx, registerInput("Alice", "alice@x.com", "secret1"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := repo.SetActive(ctx, created.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	// Correct password on a deactivated account gets the distinct rejection.
	_, _, err = svc.Login(ctx, "alice@x.com", "secret1")
	if !errors.Is(err, domain.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}

	// Wrong password must not reveal the account status.
	_, _, err = svc.Login(ctx, "alice@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false}
	svc := NewAuthService(repo, limiter, "secret", time.Hour, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "alice@x.com", "secret1")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubLimiter{err: errors.New("redis down")}, "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	reg := NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())
	if _, _, err := reg.Register(ctx, registerInput("Alice", "alice@x.com", "secret1")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@x.com", "secret1"); err != nil {
		t.Fatalf("expected login to succeed despite limiter error, got %v", err)
	}
}
