package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced to the boundary layer.
var (
	ErrConflict     = errors.New("credential already exists")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("access forbidden")
	ErrInternal     = errors.New("internal error")

	// ErrInvalidInput rejects requests the boundary should have validated.
	ErrInvalidInput = errors.New("invalid input")
)

// Store-level outcomes, translated by the service into the kinds above.
var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialExists   = errors.New("credential identity taken")
)

// AccessDeniedError is returned by the role gate. It names the denied
// principal and the roles the route declared.
type AccessDeniedError struct {
	Principal string
	Required  []string
	Reason    string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("user %s: %s", e.Principal, e.Reason)
	}
	return fmt.Sprintf("user %s need a valid role: [%s]", e.Principal, strings.Join(e.Required, ","))
}

func (e *AccessDeniedError) Unwrap() error { return ErrForbidden }

// Internal wraps an unexpected collaborator failure so that it matches
// ErrInternal while keeping the cause in the chain.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// IsDomainKind reports whether err already carries one of the boundary kinds.
func IsDomainKind(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInternal) ||
		errors.Is(err, ErrInvalidInput)
}
