package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the session manager, the request pipeline and the stand-in API
var (
	// Session errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRefreshFailed        = errors.New("refresh failed, must log in again")
	ErrNoRefreshMaterial    = errors.New("no refresh material")

	// Request errors
	ErrAuthorizationExpired           = errors.New("authorization expired")
	ErrPersistentAuthorizationFailure = errors.New("authorization failed after refresh")

	// Resource errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternal       = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines a sentinel with the underlying cause so both match errors.Is
func Join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
