package http

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	flashMaxAge = 60
)

// setFlash stores a one-shot message shown by the next rendered page.
func (h *Handler) setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString([]byte(msg)), flashMaxAge, "/", "", h.opts.CookieSecure, true)
}

// popFlash returns the pending message, if any, and clears it.
func (h *Handler) popFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", h.opts.CookieSecure, true)

	msg, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	return string(msg)
}

// redirectWithFlash answers a form submission with a 303 to location.
func (h *Handler) redirectWithFlash(c *gin.Context, location, msg string) {
	if msg != "" {
		h.setFlash(c, msg)
	}
	c.Redirect(http.StatusSeeOther, location)
}
