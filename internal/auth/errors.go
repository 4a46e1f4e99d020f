package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two are intentionally indistinguishable so the
	// login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken reports a signup against an already registered
	// email, whether caught by the pre-check or by the store's
	// uniqueness constraint under a race.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthenticated reports a missing, expired, or invalid
	// session token.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUserNotFound reports a valid token whose subject no longer
	// exists in the store.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError is a client-fixable input problem. Message is safe
// to surface verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}
