package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"social-stream/internal/form"
	"social-stream/internal/service"
)

func (h *Handler) showFriends(c *gin.Context) {
	owner, edges, err := h.svc.Friends.List(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.failPage(c, err)
		return
	}

	data := FriendsData{
		Owner:   userView(*owner),
		CanAdd:  owner.ID == currentUser(c).ID,
		Friends: make([]FriendView, len(edges)),
	}
	for i := range edges {
		data.Friends[i] = friendView(edges[i])
	}
	h.render(c, http.StatusOK, "friends", "Friends", data)
}

func (h *Handler) addFriend(c *gin.Context) {
	username := c.Param("username")
	back := "/friends/" + url.PathEscape(username)

	var in form.FriendForm
	if err := c.ShouldBind(&in); err != nil {
		in = form.FriendForm{}
	}

	_, err := h.svc.Friends.Add(c.Request.Context(), currentUser(c), username, in)
	switch {
	case err == nil:
		h.redirectWithFlash(c, back, msgFriendAdded)
	case errors.Is(err, service.ErrUserNotFound):
		h.redirectWithFlash(c, back, msgUserNotFound)
	case errors.Is(err, service.ErrAlreadyFriends):
		h.redirectWithFlash(c, back, msgAlreadyFriends)
	case errors.Is(err, service.ErrValidationFailed):
		h.redirectWithFlash(c, back, msgInvalidFriend)
	case errors.Is(err, service.ErrForbidden):
		renderError(c, http.StatusForbidden)
	default:
		h.internalError(c, err)
	}
}
