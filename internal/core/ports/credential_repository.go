package ports

import (
	"context"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// CredentialRepository defines persistence operations for credentials.
//
// FindByID, FindByEmail and FindByUsername only return active credentials;
// FindByRefreshToken is not status-filtered. Lookups that match nothing return
// domain.ErrCredentialNotFound. Create and Update return
// domain.ErrCredentialExists when a uniqueness constraint rejects the write.
type CredentialRepository interface {
	// Create inserts the credential and returns it with its store-assigned ID.
	Create(ctx context.Context, c *domain.Credential) (*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)
	FindByRefreshToken(ctx context.Context, token string) (*domain.Credential, error)
	// Update replaces the stored record identified by c.ID.
	Update(ctx context.Context, c *domain.Credential) error
}
