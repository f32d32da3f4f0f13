package auth

// LoginRequest carries the Jira credential set to validate.
// Binding failures map to 422: malformed email, domain shorter than 3
// characters, token shorter than 10 characters.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	JiraDomain string `json:"jira_domain" binding:"required,min=3,max=255"`
	APIToken   string `json:"api_token" binding:"required,min=10,max=500"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserEmail   string `json:"user_email"`
	JiraDomain  string `json:"jira_domain"`
	ExpiresIn   int64  `json:"expires_in"`
	Message     string `json:"message"`
}

// ErrorResponse is the stable error body shape for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
