package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser aborts with 401 and message unless LoadSession found a session.
func RequireUser(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			log.Printf("[AUTH] [ERROR] %s %s without session", c.Request.Method, c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}
		c.Next()
	}
}
