package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// JWTIssuer signs and reads HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

// IssuerOption customises a JWTIssuer.
type IssuerOption func(*JWTIssuer)

// WithTimeFunc sets the clock used for issued-at, expiry and validation.
func WithTimeFunc(now func() time.Time) IssuerOption {
	return func(i *JWTIssuer) { i.now = now }
}

func NewJWTIssuer(secret string, opts ...IssuerOption) *JWTIssuer {
	i := &JWTIssuer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Sign embeds claims plus iat, exp (now+ttl) and a random jti. Caller values
// for those three keys are overwritten.
func (i *JWTIssuer) Sign(claims domain.Claims, ttl time.Duration) (string, error) {
	now := i.now()

	mc := make(jwt.MapClaims, len(claims)+3)
	for k, v := range claims {
		mc[k] = v
	}
	mc[domain.ClaimIssuedAt] = now.Unix()
	mc[domain.ClaimExpiresAt] = now.Add(ttl).Unix()
	mc[domain.ClaimTokenID] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode parses the token without verifying it. It returns nil when the token
// cannot be parsed.
func (i *JWTIssuer) Decode(token string) domain.Claims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return domain.Claims(claims)
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// domain.ErrUnauthorized.
func (i *JWTIssuer) Verify(token string) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, errors.New("token not valid"))
	}
	return domain.Claims(claims), nil
}
