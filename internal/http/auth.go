package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"social-stream/internal/form"
	"social-stream/internal/service"
)

func (h *Handler) showIndex(c *gin.Context) {
	h.render(c, http.StatusOK, "index", "Welcome", nil)
}

// submitIndex handles the combined landing page, where the action field
// tells the login and registration forms apart.
func (h *Handler) submitIndex(c *gin.Context) {
	switch c.PostForm("action") {
	case "login":
		var in form.LoginForm
		if err := c.ShouldBind(&in); err != nil {
			h.redirectWithFlash(c, "/index", msgBadCredentials)
			return
		}
		h.login(c, in, "/index")
	case "register":
		h.register(c)
	default:
		h.redirectWithFlash(c, "/index", msgUnknownFormAction)
	}
}

func (h *Handler) register(c *gin.Context) {
	var in form.RegisterForm
	if err := c.ShouldBind(&in); err != nil {
		h.redirectWithFlash(c, "/index", msgRegisterFailed)
		return
	}

	_, err := h.svc.Users.Register(c.Request.Context(), in)
	switch {
	case err == nil:
		h.redirectWithFlash(c, "/index", msgRegistered)
	case errors.Is(err, service.ErrValidationFailed):
		h.redirectWithFlash(c, "/index", msgRegisterFailed)
	case errors.Is(err, service.ErrUserAlreadyExists):
		h.redirectWithFlash(c, "/index", msgUsernameTaken)
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) showLogin(c *gin.Context) {
	var data LoginData
	if next, err := SafeRedirect(c.Request, c.Query("next")); err == nil {
		data.Next = next
	}
	h.render(c, http.StatusOK, "login", "Sign in", data)
}

func (h *Handler) submitLogin(c *gin.Context) {
	var in form.LoginForm
	if err := c.ShouldBind(&in); err != nil {
		h.redirectWithFlash(c, "/login", msgBadCredentials)
		return
	}
	if in.Next == "" {
		in.Next = c.Query("next")
	}

	failure := "/login"
	if next, err := SafeRedirect(c.Request, in.Next); err == nil {
		failure += "?next=" + url.QueryEscape(next)
	}
	h.login(c, in, failure)
}

// login authenticates the form and starts a session. On failure it sends the
// user back to failurePath.
func (h *Handler) login(c *gin.Context, in form.LoginForm, failurePath string) {
	ctx := c.Request.Context()

	if errs := form.Validate(&in); errs != nil {
		h.redirectWithFlash(c, failurePath, msgBadCredentials)
		return
	}

	user, err := h.svc.Users.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.redirectWithFlash(c, failurePath, msgBadCredentials)
			return
		}
		h.internalError(c, err)
		return
	}

	_, token, err := h.svc.Sessions.Establish(ctx, user.ID, in.Remember())
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.setSessionCookie(c, token, in.Remember())

	home := "/stream/" + url.PathEscape(user.Username)
	if in.Next == "" {
		h.redirectWithFlash(c, home, msgLoggedIn)
		return
	}
	next, err := SafeRedirect(c.Request, in.Next)
	if err != nil {
		h.redirectWithFlash(c, home, msgUnsafeRedirect)
		return
	}
	h.redirectWithFlash(c, next, msgLoggedIn)
}

func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(ctxTokenKey)
	if err := h.svc.Sessions.Invalidate(c.Request.Context(), token); err != nil {
		h.internalError(c, err)
		return
	}
	h.clearSessionCookie(c)
	h.redirectWithFlash(c, "/", msgLoggedOut)
}

func (h *Handler) settings(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/profile/"+url.PathEscape(currentUser(c).Username))
}
