package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-feedback-backend/internal/auth"
)

// Context keys set by the auth middleware.
const (
	CtxUsername = "auth.username"
	CtxRole     = "auth.role"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireUser verifies the session token and stores identity and role on the
// context. Any valid role passes.
func RequireUser(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(CtxUsername, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin verifies the session token and fails closed unless the role is
// admin.
func RequireAdmin(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(CtxUsername, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}
