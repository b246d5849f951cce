package middleware

import (
	"net/http"
	"strings"

	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	userapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// TokenVerifier resolves a bearer token to the caller identity.
type TokenVerifier interface {
	VerifyToken(token string) (*userapp.Identity, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the caller id (uuid.UUID) and role (user.Role) on the context.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(RoleKey, id.Role)
		c.Next()
	}
}

// RequireRole must run after JWTAuthMiddleware.
func RequireRole(role userEntity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or uuid.Nil on public routes.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func Role(c *gin.Context) userEntity.Role {
	if v, ok := c.Get(RoleKey); ok {
		if r, ok := v.(userEntity.Role); ok {
			return r
		}
	}
	return ""
}
