package authenticating

import (
	"errors"
	"fmt"
)

var (
	// Authentication errors
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserDisabled          = errors.New("user is disabled")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidToken          = errors.New("invalid token")
	ErrExpiredToken          = errors.New("expired token")
	ErrInsufficientPrivilege = errors.New("insufficient privileges")
	ErrUserAlreadyExists     = errors.New("user already exists")

	// Validation errors
	ErrMissingRequiredData = errors.New("required data is missing")

	// Password errors
	ErrWeakPassword      = errors.New("password is too weak")
	ErrSamePassword      = errors.New("new password must differ from the current one")
	ErrNoAdminPrivileges = errors.New("only administrators may perform this action")

	// Database errors
	ErrDatabaseOperation = errors.New("database operation failed")
)

// AuthError carries an API error code and optional user context along
// with the base error.
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError reports whether the error relates to invalid
// credentials or a blocked account.
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUserDisabled)
}

// IsAuthorizationError reports whether the error relates to
// authorization.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInsufficientPrivilege) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrNoAdminPrivileges)
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
