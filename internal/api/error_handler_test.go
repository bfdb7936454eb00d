package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/identity-service/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"conflict", fmt.Errorf("create: %w", domain.ErrConflict), http.StatusConflict, "credential already exists"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "invalid credentials"},
		{
			"access denied",
			&domain.AccessDeniedError{Principal: "bob", Required: []string{"admin"}},
			http.StatusForbidden,
			"user bob need a valid role: [admin]",
		},
		{"invalid input", fmt.Errorf("%w: email or username is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: email or username is required"},
		{"internal", domain.Internal("hash password", errors.New("boom")), http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("mongo timeout"), http.StatusInternalServerError, "internal server error"},
		{"echo", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_InternalDoesNotLeakCause(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.Internal("find credential", errors.New("secret dsn")), c)

	if got := rec.Body.String(); got == "" || strings.Contains(got, "secret dsn") {
		t.Fatalf("response leaked cause: %s", got)
	}
}
