package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
)

// RefreshTokenTTL is the fixed lifetime of refresh tokens issued at login.
const RefreshTokenTTL = 7 * 24 * time.Hour

const defaultAccessTTL = time.Hour

// IdentityLocker reserves an email or username while a credential holding it
// is being created (Redis).
type IdentityLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// CredentialService implements credential lifecycle, login and token renewal.
type CredentialService struct {
	repo      ports.CredentialRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	locker    IdentityLocker
	accessTTL time.Duration
	log       zerolog.Logger
	now       func() time.Time

	decoyOnce   sync.Once
	decoyDigest string
}

// Option customises a CredentialService.
type Option func(*CredentialService)

// WithIdentityLocker enables the identity reservation around Create.
func WithIdentityLocker(l IdentityLocker) Option {
	return func(s *CredentialService) { s.locker = l }
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CredentialService) { s.now = now }
}

func NewCredentialService(
	repo ports.CredentialRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	accessTTL time.Duration,
	log zerolog.Logger,
	opts ...Option,
) *CredentialService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	s := &CredentialService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new active credential. The existence check runs on the
// email when given, otherwise on the username.
func (s *CredentialService) Create(ctx context.Context, in ports.CreateCredentialInput) (*ports.CreateCredentialResult, error) {
	if (in.Email == "" && in.Username == "") || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if s.locker != nil {
		key := identityKey(in.Email, in.Username)
		acquired, err := s.locker.Acquire(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("identity reservation unavailable, relying on store constraints")
		case !acquired:
			return nil, domain.ErrConflict
		default:
			defer s.release(ctx, key)
		}
	}

	var (
		taken bool
		err   error
	)
	if in.Email != "" {
		taken, err = s.emailTaken(ctx, in.Email)
	} else {
		taken, err = s.usernameTaken(ctx, in.Username)
	}
	if err != nil {
		return nil, domain.Internal("create credential", err)
	}
	if taken {
		return nil, domain.ErrConflict
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}

	now := s.now().UnixMilli()
	created, err := s.repo.Create(ctx, &domain.Credential{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCredentialExists) {
			return nil, domain.ErrConflict
		}
		return nil, domain.Internal("create credential", err)
	}

	s.log.Info().Str("credential_id", created.ID).Msg("credential created")

	return &ports.CreateCredentialResult{ID: created.ID, PasswordHash: created.PasswordHash}, nil
}

// FindOne returns the active credential with the given id, without its
// password digest.
func (s *CredentialService) FindOne(ctx context.Context, id string) (*domain.Credential, error) {
	cred, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return cred.Sanitized(), nil
}

// Update applies a partial change. A new email or username is rejected when
// any active credential already holds it, including this one.
func (s *CredentialService) Update(ctx context.Context, id string, in ports.UpdateCredentialInput) error {
	found, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}

	updated := *found
	updated.UpdatedAt = s.now().UnixMilli()

	if in.Email != "" {
		taken, err := s.emailTaken(ctx, in.Email)
		if err != nil {
			return domain.Internal("update credential", err)
		}
		if taken {
			return domain.ErrConflict
		}
		updated.Email = in.Email
	}

	if in.Username != "" {
		taken, err := s.usernameTaken(ctx, in.Username)
		if err != nil {
			return domain.Internal("update credential", err)
		}
		if taken {
			return domain.ErrConflict
		}
		updated.Username = in.Username
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return domain.Internal("hash password", err)
		}
		updated.PasswordHash = hash
	}

	if err := s.save(ctx, &updated); err != nil {
		return err
	}

	s.log.Info().Str("credential_id", id).Msg("credential updated")
	return nil
}

// Delete soft-deletes the credential by flipping its status. Deleted
// credentials are invisible to id lookups, so a repeated Delete is
// Unauthorized.
func (s *CredentialService) Delete(ctx context.Context, id string) error {
	found, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}

	deleted := *found
	deleted.Status = domain.StatusDeleted
	deleted.UpdatedAt = s.now().UnixMilli()

	if err := s.save(ctx, &deleted); err != nil {
		return err
	}

	s.log.Info().Str("credential_id", id).Msg("credential deleted")
	return nil
}

// CreateToken exchanges a stored refresh token for a new access token. The
// refresh token is trusted because it matched a stored value exactly; its
// signature and expiry are not re-checked.
func (s *CredentialService) CreateToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrUnauthorized
	}

	owner, err := s.repo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", domain.Internal("find refresh token", err)
	}

	claims := s.tokens.Decode(refreshToken)
	if claims == nil {
		return "", fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
	}

	access, err := s.tokens.Sign(claims.Without(domain.ClaimIssuedAt, domain.ClaimExpiresAt, domain.ClaimTokenID), s.accessTTL)
	if err != nil {
		return "", domain.Internal("sign access token", err)
	}

	s.log.Info().Str("credential_id", owner.ID).Msg("access token refreshed")
	return access, nil
}

// Login verifies the password of the active credential matching the
// identifier, stores a fresh refresh token on it and issues an access token.
// Unknown identifiers and wrong passwords fail identically.
func (s *CredentialService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	var (
		cred *domain.Credential
		err  error
	)
	if domain.IsEmailIdentifier(in.Identifier) {
		cred, err = s.repo.FindByEmail(ctx, in.Identifier)
	} else {
		cred, err = s.repo.FindByUsername(ctx, in.Identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			// Spend the same bcrypt work as a wrong password.
			s.hasher.Verify(in.Password, s.decoy())
			s.log.Info().Msg("login rejected")
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.Internal("login", err)
	}

	if !s.hasher.Verify(in.Password, cred.PasswordHash) {
		s.log.Info().Str("credential_id", cred.ID).Msg("login rejected")
		return nil, domain.ErrUnauthorized
	}

	refresh, err := s.tokens.Sign(in.Payload, RefreshTokenTTL)
	if err != nil {
		return nil, domain.Internal("sign refresh token", err)
	}

	cred.RefreshToken = refresh
	cred.UpdatedAt = s.now().UnixMilli()
	if err := s.save(ctx, cred); err != nil {
		return nil, err
	}

	access, err := s.tokens.Sign(in.Payload, s.accessTTL)
	if err != nil {
		return nil, domain.Internal("sign access token", err)
	}

	s.log.Info().Str("credential_id", cred.ID).Msg("login succeeded")

	return &ports.LoginResult{Credential: cred.Sanitized(), AccessToken: access}, nil
}

// decoy returns a digest of the service's hasher, computed once, for unknown
// identifiers to be compared against.
func (s *CredentialService) decoy() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash("decoy-Password-0")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to compute decoy digest")
			return
		}
		s.decoyDigest = digest
	})
	return s.decoyDigest
}

func (s *CredentialService) findActive(ctx context.Context, id string) (*domain.Credential, error) {
	cred, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.Internal("find credential", err)
	}
	return cred, nil
}

func (s *CredentialService) save(ctx context.Context, c *domain.Credential) error {
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCredentialExists) {
			return domain.ErrConflict
		}
		return domain.Internal("update credential", err)
	}
	return nil
}

func (s *CredentialService) emailTaken(ctx context.Context, email string) (bool, error) {
	return taken(s.repo.FindByEmail(ctx, email))
}

func (s *CredentialService) usernameTaken(ctx context.Context, username string) (bool, error) {
	return taken(s.repo.FindByUsername(ctx, username))
}

func taken(c *domain.Credential, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return false, nil
		}
		return false, err
	}
	return c != nil, nil
}

func (s *CredentialService) release(ctx context.Context, key string) {
	if err := s.locker.Release(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn().Err(err).Msg("failed to release identity reservation")
	}
}

func identityKey(email, username string) string {
	if email != "" {
		return "email:" + email
	}
	return "username:" + username
}
