package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
)

// PrincipalKey is the echo context key holding the verified domain.Claims.
const PrincipalKey = "principal"

// Auth verifies the bearer token and attaches its claims as the request
// principal. Requests without a valid token never reach the next handler.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(err)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return unauthorized(err)
			}

			c.Set(PrincipalKey, claims)
			return next(c)
		}
	}
}

var (
	errMissingHeader = errors.New("missing authorization header")
	errMalformed     = errors.New("malformed authorization header")
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", errMalformed
	}
	return token, nil
}

// unauthorized answers every rejection with the same message; the cause is
// kept internal for logs.
func unauthorized(cause error) error {
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error()).SetInternal(cause)
}

// Principal returns the claims attached by Auth, or nil when the route is
// not behind it.
func Principal(c echo.Context) domain.Claims {
	claims, _ := c.Get(PrincipalKey).(domain.Claims)
	return claims
}
