package api

import (
	"net/http"
	"os"
	"time"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/gin-gonic/gin"
)

const sessionTTL = 24 * time.Hour

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// sessionToken reads the cookie, falling back to a bearer header for
// headless clients.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
		return token
	}
	h := c.GetHeader(constants.HeaderAuthorization)
	if len(h) > len(constants.BearerPrefix) && h[:len(constants.BearerPrefix)] == constants.BearerPrefix {
		return h[len(constants.BearerPrefix):]
	}
	return ""
}

// AuthRequired validates the session and injects identity into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set("userEmail", claims.Subject)
		c.Set("userName", claims.Name)
		c.Set("userUUID", claims.UUID)
		c.Next()
	}
}
