package middleware

import (
	"net/http"                         // HTTP status codes
	"staking_dashboard/internal/utils" // JWT utility functions
	"strings"                          // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware validates JWT tokens and extracts user information.
// The token is read from the "token" cookie, falling back to a Bearer header.
// When enabled is false the middleware is a pass-through; the session layer
// is a stub and requests are accepted unauthenticated.
func JWTAuthMiddleware(secret string, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next() // Token enforcement disabled
			return
		}
		tokenStr, err := c.Cookie("token") // Session cookie
		if err != nil || tokenStr == "" {
			// Fall back to the Authorization header
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				// If not, abort with unauthorized status
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID)   // Store userID in context
		c.Set("address", claims.Address) // Store wallet address in context
		c.Next()                         // Proceed to the next handler
	}
}
