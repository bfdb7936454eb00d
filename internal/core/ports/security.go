package ports

import (
	"time"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify compares in constant time; any mismatch or malformed digest is false.
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs claims into compact tokens and reads them back.
type TokenIssuer interface {
	// Sign embeds claims plus issued-at, expiry (now+ttl) and a token id.
	Sign(claims domain.Claims, ttl time.Duration) (string, error)
	// Decode returns the embedded claims without checking signature or
	// expiry, or nil when the token is malformed.
	Decode(token string) domain.Claims
}

// TokenVerifier enforces signature and expiry on inbound bearer tokens.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}
