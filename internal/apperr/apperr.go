package apperr

import (
	"errors"
	"fmt"
)

// Sentinels shared across components.
var (
	// ErrNotAuthenticated is returned for gated operations attempted
	// without a live session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrValueRequired aborts a tracking dispatch for a numeric habit
	// when the caller supplied no value at all.
	ErrValueRequired = errors.New("a value is required for this habit type")
)

// AuthenticationError covers invalid credentials and expired sessions.
// Recovery is local: reset to unauthenticated and surface Message.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ValidationError blocks malformed habit input before any dispatch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError wraps a failed backend round-trip. Dashboard refreshes keep
// the previous snapshot; reminder polls skip the tick and retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IntegrationError covers third-party share/connect failures. It never
// affects dashboard state.
type IntegrationError struct {
	Service string
	Err     error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s integration: %v", e.Service, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr) || errors.Is(err, ErrValueRequired)
}
