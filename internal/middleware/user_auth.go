package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/service"
)

// SessionKey is the gin context key holding the *service.Session.
const SessionKey = "session"

// SessionParser turns a raw access token into a session.
type SessionParser interface {
	Parse(raw string) (*service.Session, error)
}

// UserAuth validates the bearer token and stores the caller's session in
// the context. Requests without a valid token are rejected.
func UserAuth(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		token, ok := bearerToken(raw)
		if !ok {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		session, err := parser.Parse(token)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// OptionalUserAuth attaches a session when a valid token is present and
// lets anonymous requests through.
func OptionalUserAuth(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(strings.TrimSpace(c.GetHeader("Authorization"))); ok {
			if session, err := parser.Parse(token); err == nil {
				c.Set(SessionKey, session)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by UserAuth, or nil.
func CurrentSession(c *gin.Context) *service.Session {
	value, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*service.Session)
	return session
}

func bearerToken(raw string) (string, bool) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
