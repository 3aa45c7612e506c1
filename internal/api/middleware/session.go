package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie identifies a browser's cart session
	SessionCookie = "cart_session"

	sessionContextKey = "cartSessionID"

	// thirty days, matching how long we keep cart files around
	sessionMaxAge = 30 * 24 * 60 * 60
)

// CartSessionMiddleware assigns every visitor a stable cart session id,
// creating one on first visit
func CartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
		} else if _, err := uuid.Parse(sessionID); err != nil {
			// reject forged cookies, they become file names
			sessionID = uuid.New().String()
			c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionFromContext returns the request's cart session id
func GetSessionFromContext(c *gin.Context) (string, bool) {
	sessionID, ok := c.Get(sessionContextKey)
	if !ok {
		return "", false
	}
	id, ok := sessionID.(string)
	return id, ok
}
