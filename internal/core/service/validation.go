package service

import (
	"regexp"
	"strings"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// emailPattern matches local@domain.tld with a 2+ letter TLD, mirroring what
// the frontend enforces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)

// normalizeEmail lowercases and trims an email for lookup and storage.
// Uniqueness is case-insensitive because every email passes through here
// before it touches the store.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateAccountFields applies the shared name/email/password rules for
// registration and admin user creation.
func validateAccountFields(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return domain.NewValidationError("Please fill in all fields")
	}
	if len(strings.TrimSpace(name)) < 2 {
		return domain.NewValidationError("Name must be at least 2 characters long")
	}
	if len(password) < 6 {
		return domain.NewValidationError("Password must be at least 6 characters long")
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return domain.NewValidationError("Please enter a valid email address")
	}
	return nil
}
