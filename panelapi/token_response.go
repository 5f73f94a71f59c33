package panelapi

// TokenResponse is returned by the login and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the short-lived bearer credential.
	// Usage: Authorization: Bearer <accessToken>
	AccessToken *string `json:"accessToken,omitempty"`

	// RefreshToken is only echoed in the body for legacy clients. The current
	// server sets it as an HttpOnly cookie named "refreshToken" instead.
	RefreshToken *string `json:"refreshToken,omitempty"`

	// ExpiresIn is the access token lifetime in seconds. Zero means unknown,
	// in which case the client falls back to the JWT "exp" claim.
	ExpiresIn int `json:"expiresIn,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries refresh material in the body. Cookie based refresh sends an empty body.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}
