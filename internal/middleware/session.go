package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/service"
	"github.com/noah-isme/engagement-dashboard/pkg/config"
	"github.com/noah-isme/engagement-dashboard/pkg/logger"
)

// ContextSessionKey is the gin context key holding the reviewer's *service.Session.
const ContextSessionKey = "dashboard_session"

type sessionAcquirer interface {
	Acquire(ctx context.Context, id string) (*service.Session, bool)
}

// Session attaches the reviewer's dashboard session, starting one when the cookie is
// missing or stale. The cookie is refreshed on every request so idle expiry slides.
func Session(store sessionAcquirer, cfg config.SessionConfig) gin.HandlerFunc {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "dashboard_session"
	}
	maxAge := int(cfg.TTL.Seconds())
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		sess, _ := store.Acquire(c.Request.Context(), id)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sess.ID(), maxAge, "/", "", cfg.Secure, true)
		c.Set(ContextSessionKey, sess)
		c.Set(logger.SessionIDKey, sess.ID())
		c.Next()
	}
}

// SessionFrom returns the session attached by Session, or nil.
func SessionFrom(c *gin.Context) *service.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*service.Session)
	if !ok {
		return nil
	}
	return sess
}
