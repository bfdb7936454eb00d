package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/identity-service/internal/core/domain"
)

func newGateContext(principal domain.Claims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}
	return c
}

func TestRequireRoles_Allows(t *testing.T) {
	c := newGateContext(domain.Claims{"roles": []any{"client", "admin"}})

	called := false
	handler := RequireRoles("admin")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRoles_SuperadminOverride(t *testing.T) {
	c := newGateContext(domain.Claims{"roles": []string{"superadmin"}})

	called := false
	handler := RequireRoles("admin")(func(c echo.Context) error {
		called = true
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("superadmin should pass")
	}
}

func TestRequireRoles_Forbids(t *testing.T) {
	c := newGateContext(domain.Claims{"roles": []string{"client"}, "username": "bob"})

	handler := RequireRoles("admin")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var denied *domain.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden in chain")
	}
	if denied.Principal != "bob" {
		t.Fatalf("unexpected principal %q", denied.Principal)
	}
}

func TestRequireRoles_NoPrincipal(t *testing.T) {
	handler := RequireRoles("admin")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(newGateContext(nil)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_EmptyRequirementAdmitsEmptyRoleSet(t *testing.T) {
	c := newGateContext(domain.Claims{"roles": []string{}})

	called := false
	handler := RequireRoles()(func(c echo.Context) error {
		called = true
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
