package middleware

import (
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "eco_session"

// SessionMiddleware guarantees every request carries a browser session id,
// minting one into an eco_session cookie when absent. Session-scoped state
// (staged password-reset identifier, recently viewed tips) keys off it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = utils.GenerateSessionID()
			// 30 days, lax, http-only
			c.SetCookie(sessionCookie, sid, 30*24*3600, "/", "", false, true)
		}
		c.Set("session_id", sid)
		c.Next()
	}
}
