package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
)

const (
	// TokenCookieName is the session cookie candidates and admins receive on
	// login. A bearer Authorization header works as a fallback for API
	// clients.
	TokenCookieName = "test_token"

	contextKeyPrincipal = "principal"
)

// Authenticator verifies token strings into principals.
type Authenticator interface {
	Verify(tokenString string) (*service.Principal, error)
}

// RequireAdmin authenticates the request and rejects anything but an admin
// token.
func RequireAdmin(tokens Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, tokens)
		if !ok {
			return
		}
		if principal.Role != service.RoleAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		c.Set(contextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireCandidate authenticates the request and rejects anything but a
// candidate token.
func RequireCandidate(tokens Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, tokens)
		if !ok {
			return
		}
		if principal.Role != service.RoleCandidate {
			response.AbortFail(c, http.StatusForbidden, response.ErrCandidateAccessOnly)
			return
		}
		c.Set(contextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by RequireAdmin or
// RequireCandidate.
func GetPrincipal(c *gin.Context) (*service.Principal, bool) {
	v, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*service.Principal)
	return principal, ok
}

func authenticate(c *gin.Context, tokens Authenticator) (*service.Principal, bool) {
	tokenString := extractToken(c)
	if tokenString == "" {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	principal, err := tokens.Verify(tokenString)
	if err != nil {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return nil, false
	}
	return principal, true
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
