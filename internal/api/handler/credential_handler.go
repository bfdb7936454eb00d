package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/identity-service/internal/api/metrics"
	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
)

const (
	msgCreated = "User created success"
	msgFound   = "User find success"
	msgUpdated = "User updated success"
	msgDeleted = "User deleted success"
	msgToken   = "Token success"
	msgLogin   = "Login Success"
)

// reservedClaims are owned by the issuer and dropped from login payloads.
// Roles pass through and end up in both issued tokens.
var reservedClaims = []string{
	domain.ClaimIssuedAt,
	domain.ClaimExpiresAt,
	domain.ClaimTokenID,
	"nbf",
}

// CredentialHandler handles HTTP requests for credential operations.
type CredentialHandler struct {
	service ports.CredentialService
	log     zerolog.Logger
}

func NewCredentialHandler(service ports.CredentialService, log zerolog.Logger) *CredentialHandler {
	return &CredentialHandler{service: service, log: log}
}

func ok(c echo.Context, message string, data ...any) error {
	if data == nil {
		data = []any{}
	}
	return c.JSON(http.StatusOK, envelope{Code: http.StatusOK, Message: message, Data: data})
}

// bindAndValidate decodes the JSON body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// Create handles POST /auth.
//
// @Summary      Register a credential
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createCredentialRequest  true  "Email and/or username with password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth [post]
func (h *CredentialHandler) Create(c echo.Context) error {
	var req createCredentialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), ports.CreateCredentialInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.CredentialsCreatedTotal.Inc()
	return ok(c, msgCreated, createdCredential{ID: res.ID})
}

// FindOne handles GET /auth/:id.
//
// @Summary      Get an active credential
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Credential id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/{id} [get]
func (h *CredentialHandler) FindOne(c echo.Context) error {
	cred, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, msgFound, cred)
}

// Update handles PUT /auth/:id.
//
// @Summary      Update an active credential
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Credential id"
// @Param        body  body      updateCredentialRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/{id} [put]
func (h *CredentialHandler) Update(c echo.Context) error {
	var req updateCredentialRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Update(c.Request().Context(), id, ports.UpdateCredentialInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		return err
	}

	h.log.Info().Str("credential_id", id).Str("actor", actor(c)).Msg("credential updated via api")
	return ok(c, msgUpdated)
}

// Delete handles DELETE /auth/:id.
//
// @Summary      Soft-delete a credential
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Credential id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/{id} [delete]
func (h *CredentialHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.log.Info().Str("credential_id", id).Str("actor", actor(c)).Msg("credential deleted via api")
	return ok(c, msgDeleted)
}

// CreateToken handles POST /auth/token.
//
// @Summary      Exchange a refresh token for an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createTokenRequest  true  "Refresh token"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/token [post]
func (h *CredentialHandler) CreateToken(c echo.Context) error {
	var req createTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.service.CreateToken(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	return ok(c, msgToken, issuedToken{Token: token})
}

// Login handles POST /auth/login.
//
// @Summary      Log in with email or username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Identifier, password and token payload"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *CredentialHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Identifier: req.User,
		Password:   req.Password,
		Payload:    domain.Claims(req.Payload).Without(reservedClaims...),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginsTotal.WithLabelValues("unauthorized").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	cred := res.Credential
	return ok(c, msgLogin, loginData{
		ID:           cred.ID,
		Email:        cred.Email,
		Username:     cred.Username,
		Status:       string(cred.Status),
		RefreshToken: cred.RefreshToken,
		Token:        res.AccessToken,
		CreatedAt:    cred.CreatedAt,
		UpdatedAt:    cred.UpdatedAt,
	})
}
