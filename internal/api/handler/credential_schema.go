package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// envelope is the success body of every credential endpoint.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    []any  `json:"data"`
}

// --- Request types ---

type createCredentialRequest struct {
	Email    string `json:"email"    validate:"required_without=Username,omitempty,email"`
	Username string `json:"username" validate:"required_without=Email,omitempty,min=5"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type updateCredentialRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=5"`
	Password string `json:"password" validate:"omitempty,min=8,password"`
}

type loginRequest struct {
	User     string         `json:"user"     validate:"required,min=5"`
	Password string         `json:"password" validate:"required,min=8,password"`
	Payload  map[string]any `json:"payload"  validate:"required"`
}

type createTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// --- Response types ---

type createdCredential struct {
	ID string `json:"id"`
}

type issuedToken struct {
	Token string `json:"token"`
}

type loginData struct {
	ID           string `json:"id"`
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	Status       string `json:"status"`
	RefreshToken string `json:"refresh_token"`
	Token        string `json:"token"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}
