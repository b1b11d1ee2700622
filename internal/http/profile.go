package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"social-stream/internal/form"
	"social-stream/internal/service"
)

func (h *Handler) showProfile(c *gin.Context) {
	user, err := h.svc.Profiles.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.failPage(c, err)
		return
	}
	h.render(c, http.StatusOK, "profile", "Profile", profileView(*user, user.ID == currentUser(c).ID))
}

func (h *Handler) updateProfile(c *gin.Context) {
	username := c.Param("username")
	back := "/profile/" + url.PathEscape(username)

	var in form.ProfileForm
	if err := c.ShouldBind(&in); err != nil {
		h.redirectWithFlash(c, back, msgProfileInvalid)
		return
	}

	_, err := h.svc.Profiles.Update(c.Request.Context(), currentUser(c), username, in)
	switch {
	case err == nil:
		h.redirectWithFlash(c, back, msgProfileUpdated)
	case errors.Is(err, service.ErrValidationFailed):
		h.redirectWithFlash(c, back, msgProfileInvalid)
	case errors.Is(err, service.ErrForbidden):
		renderError(c, http.StatusForbidden)
	default:
		h.internalError(c, err)
	}
}
