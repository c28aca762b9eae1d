package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Origins allowed to call the API with their own Access-Control-Allow-Origin
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173", // Vite dev server
	"http://localhost:4173", // Vite preview
	"https://cabverse-dapp.vercel.app",
}

// CORSMiddleware sets the CORS headers on every response and short-circuits
// preflight requests with an empty 204 before any business handler runs.
//
// Origins outside the allow-list still receive a CORS header: the first
// allow-listed origin, never "*" and never a hard block. Permissive by
// default rather than an allow/deny gate; flagged as a hardening candidate.
func CORSMiddleware(extraOrigins []string) gin.HandlerFunc {
	allowed := append(append([]string{}, defaultAllowedOrigins...), extraOrigins...)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin") // Origin of the request
		allowOrigin := allowed[0]       // Default to first allowed origin
		for _, o := range allowed {
			if origin != "" && o == origin {
				allowOrigin = origin // Echo back allow-listed origins
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		// Handle CORS preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next() // Proceed to the next handler
	}
}
