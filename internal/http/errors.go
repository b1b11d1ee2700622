package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-stream/internal/logx"
	"social-stream/internal/service"
)

// failPage answers a GET that could not be served.
func (h *Handler) failPage(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		renderError(c, http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		renderError(c, http.StatusForbidden)
	default:
		h.internalError(c, err)
	}
}

// internalError logs err with the request-scoped logger and answers 500
// without leaking details.
func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	logx.FromContext(c.Request.Context()).WithError(err).Error("request failed")
	renderError(c, http.StatusInternalServerError)
}
