package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/api/metrics"
	"github.com/99minutos/identity-service/internal/core/domain"
)

// RequireRoles lets the request through when the principal holds any of the
// given roles. superadmin always passes; an empty role list admits any
// principal. Denials return a *domain.AccessDeniedError.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	required := append([]string(nil), roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(Principal(c), required); err != nil {
				metrics.RoleGateDecisionsTotal.WithLabelValues("deny").Inc()
				return err
			}
			metrics.RoleGateDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}
