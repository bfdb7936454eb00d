package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/identity-service/docs"
	"github.com/99minutos/identity-service/internal/api/handler"
	"github.com/99minutos/identity-service/internal/api/middleware"
	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Credentials ports.CredentialService
	Verifier    ports.TokenVerifier
	// Readiness lists the dependencies probed by /health/ready.
	Readiness   map[string]handler.Pinger
	CORSOrigins []string
	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registerer  prometheus.Registerer
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "identity",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	credentialHandler := handler.NewCredentialHandler(deps.Credentials, deps.Log)
	authMiddleware := middleware.Auth(deps.Verifier)

	// --- Credential routes ---
	auth := e.Group("/auth")
	auth.POST("", credentialHandler.Create)
	auth.POST("/token", credentialHandler.CreateToken)
	auth.POST("/login", credentialHandler.Login)
	auth.GET("/:id", credentialHandler.FindOne, authMiddleware)
	auth.PUT("/:id", credentialHandler.Update, authMiddleware)
	auth.DELETE("/:id", credentialHandler.Delete, authMiddleware, middleware.RequireRoles(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
