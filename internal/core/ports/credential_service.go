package ports

import (
	"context"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// CreateCredentialInput carries the registration data. At least one of Email
// or Username must be set.
type CreateCredentialInput struct {
	Email    string
	Username string
	Password string
}

// CreateCredentialResult is returned to the registering collaborator so it can
// link its own record. PasswordHash is never exposed over HTTP.
type CreateCredentialResult struct {
	ID           string
	PasswordHash string
}

// UpdateCredentialInput is a partial update; empty fields are left untouched.
type UpdateCredentialInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput carries the login identifier (email or username), the password
// and the claims to embed in the issued tokens.
type LoginInput struct {
	Identifier string
	Password   string
	Payload    domain.Claims
}

// LoginResult holds the sanitized credential (with its new refresh token) and
// a short-lived access token.
type LoginResult struct {
	Credential  *domain.Credential
	AccessToken string
}

// CredentialService defines the use-case operations of the identity core.
type CredentialService interface {
	Create(ctx context.Context, input CreateCredentialInput) (*CreateCredentialResult, error)
	FindOne(ctx context.Context, id string) (*domain.Credential, error)
	Update(ctx context.Context, id string, input UpdateCredentialInput) error
	Delete(ctx context.Context, id string) error
	CreateToken(ctx context.Context, refreshToken string) (string, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}
