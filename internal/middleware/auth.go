package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RonUpdate/sitecf-sub001/internal/authz"
	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/internal/service"
)

const (
	// SessionKey is the context key for the resolved session
	SessionKey = "auth_session"
	// RoleKey is the context key for the resolved role
	RoleKey = "auth_role"
)

// Session resolves the credential cookie once per request and caches the
// session and role in the gin context. Handlers and later middleware read
// the cached values instead of hitting the stores again. An absent or
// invalid credential does not abort here; the gates decide what a missing
// session means for their route.
func Session(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session := authService.Resolve(c.Request.Context(), token)
		if session == nil {
			c.Next()
			return
		}

		role, err := authService.ResolveRole(c.Request.Context(), session)
		if err != nil {
			// An unresolved role is treated as no session at all
			c.Next()
			return
		}

		c.Set(SessionKey, session)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// CurrentSession returns the session cached by Session, or nil
func CurrentSession(c *gin.Context) *domain.Session {
	if v, exists := c.Get(SessionKey); exists {
		if session, ok := v.(*domain.Session); ok {
			return session
		}
	}
	return nil
}

// CurrentRole returns the role cached by Session. The second value is
// false when no authenticated session is present.
func CurrentRole(c *gin.Context) (domain.Role, bool) {
	if v, exists := c.Get(RoleKey); exists {
		if role, ok := v.(domain.Role); ok {
			return role, true
		}
	}
	return "", false
}

// RequireSession aborts unauthenticated requests. Browser navigation is
// redirected to the login page with the original path preserved so the
// user lands back where they were heading; API clients get a 401 envelope.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Next()
			return
		}

		if wantsHTML(c) {
			target := loginPath + "?next=" + c.Request.URL.Path
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			},
		})
	}
}

// RequireCapability gates a route on a single capability. No session at
// all is a 401; an authenticated session whose role lacks the capability
// is a 403. The two cases are never conflated.
func RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if decision := authz.Check(role, capability); decision != authz.DecisionAllow {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions",
				},
			})
			return
		}

		c.Next()
	}
}

// wantsHTML reports whether the client is a browser navigating pages
// rather than an API caller
func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
