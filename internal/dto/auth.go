package dto

import "regexp"

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// emailRegex is a simplified RFC 5322 check, stricter than the binding
// tag alone
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format
func (r *LoginRequest) ValidateEmail() (bool, string) {
	if !emailRegex.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// LoginResponse represents a successful login
type LoginResponse struct {
	RedirectURL     string `json:"redirectUrl"`
	SessionDuration int64  `json:"sessionDuration"` // seconds
	Role            string `json:"role"`
}

// RefreshRequest represents a session refresh request
type RefreshRequest struct {
	RememberMe bool `json:"rememberMe"`
}

// SessionResponse describes the caller's current session for display
type SessionResponse struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expiresAt"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
	LongSession bool   `json:"longSession"`
}

// LogoutResponse represents a JSON logout acknowledgement
type LogoutResponse struct {
	RedirectTo string `json:"redirectTo"`
}

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1"`
	Slug string `json:"slug" binding:"required,min=1"`
}

// ColoringPageRequest creates or updates a coloring page
type ColoringPageRequest struct {
	Title      string `json:"title" binding:"required,min=1"`
	Slug       string `json:"slug" binding:"required,min=1"`
	CategoryID string `json:"category_id" binding:"required"`
	ImageURL   string `json:"image_url"`
	Published  bool   `json:"published"`
}
