// Package middleware provides HTTP middleware for the booking service.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// identityKey is the gin context key under which the decoded credential is
// stored by RequireAuth.
const identityKey = "identity"

// RequireAuth validates the bearer token and attaches the decoded identity
// to the request context. Requests without a valid token are rejected
// with 401.
func RequireAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// RequireAdmin rejects requests whose identity does not hold the admin role.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if identity.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by RequireAuth.
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	return identity, ok
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
