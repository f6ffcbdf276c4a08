package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RonUpdate/sitecf-sub001/internal/dto"
	"github.com/RonUpdate/sitecf-sub001/internal/middleware"
	"github.com/RonUpdate/sitecf-sub001/internal/service"
	"github.com/RonUpdate/sitecf-sub001/pkg/response"
)

// AuthHandlerConfig carries the cookie and redirect settings for the
// login boundary
type AuthHandlerConfig struct {
	CookieName   string
	CookieDomain string
	CookieSecure bool
	HomePath     string
}

// AuthHandler handles the admin panel login, logout and session endpoints
type AuthHandler struct {
	authService service.AuthService
	config      *AuthHandlerConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, config *AuthHandlerConfig) *AuthHandler {
	if config.CookieName == "" {
		config.CookieName = "cp_session"
	}
	if config.HomePath == "" {
		config.HomePath = "/"
	}
	return &AuthHandler{authService: authService, config: config}
}

// Login handles admin panel login
// POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if valid, msg := req.ValidateEmail(); !valid {
		response.Error(c, http.StatusBadRequest, "INVALID_EMAIL", msg, "")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", "")
			return
		}
		if errors.Is(err, service.ErrUserInactive) {
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", "User account is inactive", "")
			return
		}
		if errors.Is(err, service.ErrNoPanelAccess) {
			response.Error(c, http.StatusForbidden, "NO_PANEL_ACCESS", "Account has no admin panel access", "")
			return
		}
		response.InternalError(c, err)
		return
	}

	duration := int(result.Duration.Seconds())
	h.setSessionCookie(c, result.Credential.Token, duration)

	response.Success(c, &dto.LoginResponse{
		RedirectURL:     h.config.HomePath,
		SessionDuration: int64(duration),
		Role:            string(result.Role),
	})
}

// Logout handles programmatic logout from the panel UI
// POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.config.CookieName)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		response.InternalError(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, &dto.LogoutResponse{RedirectTo: "/"})
}

// LogoutRedirect handles logout via plain link navigation
// GET /admin/logout
func (h *AuthHandler) LogoutRedirect(c *gin.Context) {
	token, _ := c.Cookie(h.config.CookieName)

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		response.InternalError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// Refresh rotates the current session with a freshly chosen lifetime
// POST /admin/session/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := c.Cookie(h.config.CookieName)
	if err != nil || token == "" {
		response.Unauthorized(c, "No active session")
		return
	}

	cred, err := h.authService.Refresh(c.Request.Context(), token, req.RememberMe)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired session", "")
		return
	}

	duration := int(cred.Session.ExpiresAt.Sub(cred.Session.IssuedAt).Seconds())
	h.setSessionCookie(c, cred.Token, duration)

	response.Success(c, gin.H{"sessionDuration": duration})
}

// Session returns the authenticated user's session details
// GET /admin/session
func (h *AuthHandler) Session(c *gin.Context) {
	session := middleware.CurrentSession(c)
	role, ok := middleware.CurrentRole(c)
	if session == nil || !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	info := h.authService.SessionInfo(c.Request.Context(), session, role)
	response.Success(c, info)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.CookieName, token, maxAge, "/", h.config.CookieDomain, h.config.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.config.CookieName, "", -1, "/", h.config.CookieDomain, h.config.CookieSecure, true)
}
