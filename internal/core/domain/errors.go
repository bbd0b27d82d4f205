package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDeactivated    = errors.New("account deactivated")
	ErrTooManyAttempts       = errors.New("too many login attempts")
	ErrMaterialNotFound      = errors.New("material not found")
	ErrDuplicateMaterialName = errors.New("duplicate material name")
)

// ValidationError carries a user-facing message for a rejected input field.
// It is surfaced verbatim in the 400 response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
