package middleware

import (
	"net/http"
	"strings"

	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/token"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// RequireAuth verifies the bearer token and stores its claims under
// response.ClaimsKey.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}

		if tokenString == "" {
			response.Message(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			response.Message(c, http.StatusForbidden, "Invalid token")
			c.Abort()
			return
		}

		c.Set(response.ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := response.GetClaims(c)
		if err != nil {
			response.Message(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		if !claims.IsAdmin() {
			response.Message(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
