package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"storefront/internal/session"
)

const sessionKey = "session"

// LoadSession resolves the session cookie and injects the session into the
// context. Requests without a valid session continue anonymously.
func LoadSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Load(c.Request.Context(), c.Request)
		switch {
		case err == nil:
			c.Set(sessionKey, s)
		case !errors.Is(err, session.ErrNotFound):
			log.Println("[AUTH] [ERROR] session lookup failed:", err)
		}
		c.Next()
	}
}

// CurrentSession returns the session injected by LoadSession.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := value.(*session.Session)
	return s, ok && s != nil
}
