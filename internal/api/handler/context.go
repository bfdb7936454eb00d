package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/api/middleware"
)

// actor names the authenticated caller for audit logs. Routes outside the
// Auth middleware report "anonymous".
func actor(c echo.Context) string {
	principal := middleware.Principal(c)
	if principal == nil {
		return "anonymous"
	}
	return principal.Name()
}
