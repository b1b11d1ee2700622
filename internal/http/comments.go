package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-stream/internal/form"
	"social-stream/internal/service"
)

func (h *Handler) showComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		renderError(c, http.StatusNotFound)
		return
	}

	item, comments, err := h.svc.Comments.Thread(c.Request.Context(), postID)
	if err != nil {
		h.failPage(c, err)
		return
	}

	username := c.Param("username")
	data := CommentsData{
		Username: username,
		Post:     postView(*item, username),
		Comments: make([]CommentView, len(comments)),
	}
	for i := range comments {
		data.Comments[i] = commentView(comments[i])
	}
	h.render(c, http.StatusOK, "comments", "Comments", data)
}

// addComment records a comment by the session user. The username in the
// path only decides where to go back to.
func (h *Handler) addComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		renderError(c, http.StatusNotFound)
		return
	}

	var in form.CommentForm
	if err := c.ShouldBind(&in); err != nil {
		in = form.CommentForm{}
	}

	back := "/comments/" + url.PathEscape(c.Param("username")) + "/" + strconv.FormatInt(postID, 10)
	_, err := h.svc.Comments.Add(c.Request.Context(), currentUser(c), postID, in)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, back)
	case errors.Is(err, service.ErrValidationFailed):
		h.redirectWithFlash(c, back, msgEmptyComment)
	case errors.Is(err, service.ErrPostNotFound):
		renderError(c, http.StatusNotFound)
	default:
		h.internalError(c, err)
	}
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
