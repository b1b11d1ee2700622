package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"social-stream/internal/domain"
	"social-stream/internal/service"
)

const (
	sessionCookie = "session"

	ctxUserKey  = "user"
	ctxTokenKey = "session_token"
)

func (h *Handler) setSessionCookie(c *gin.Context, token string, remember bool) {
	maxAge := 0
	if remember {
		maxAge = int(h.opts.RememberTTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", h.opts.CookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.opts.CookieSecure, true)
}

// requireSession rejects anonymous requests by sending them to the login
// page with the original path and query in next.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)

		_, user, err := h.svc.Sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				h.internalError(c, err)
				c.Abort()
				return
			}
			if token != "" {
				h.clearSessionCookie(c)
			}
			h.redirectWithFlash(c, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()), msgLoginRequired)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// currentUser returns the user attached by requireSession.
func currentUser(c *gin.Context) *domain.User {
	user, _ := c.Get(ctxUserKey)
	u, _ := user.(*domain.User)
	return u
}
