package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"social-stream/internal/form"
	"social-stream/internal/service"
)

// multipartSlack leaves room for the text fields and part headers on top
// of the image itself.
const multipartSlack = 64 << 10

func (h *Handler) showStream(c *gin.Context) {
	username := c.Param("username")

	owner, items, err := h.svc.Stream.Stream(c.Request.Context(), username)
	if err != nil {
		h.failPage(c, err)
		return
	}

	data := StreamData{
		Owner:   userView(*owner),
		CanPost: owner.ID == currentUser(c).ID,
		Posts:   make([]PostView, len(items)),
	}
	for i := range items {
		data.Posts[i] = postView(items[i], owner.Username)
	}
	h.render(c, http.StatusOK, "stream", "Stream", data)
}

func (h *Handler) createPost(c *gin.Context) {
	username := c.Param("username")
	back := "/stream/" + url.PathEscape(username)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+multipartSlack)
	if err := c.Request.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.redirectWithFlash(c, back, msgUploadTooLarge)
			return
		}
		h.redirectWithFlash(c, back, h.invalidUploadMessage())
		return
	}
	if c.Request.MultipartForm != nil {
		defer func() { _ = c.Request.MultipartForm.RemoveAll() }()
	}

	in := service.NewPost{Content: c.Request.PostFormValue("content")}

	if file := imageHeader(c.Request); file != nil {
		f, err := file.Open()
		if err != nil {
			h.internalError(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer f.Close()
		in.Image = &service.Upload{Filename: file.Filename, Body: f}
	}

	_, err := h.svc.Stream.CreatePost(c.Request.Context(), currentUser(c), username, in)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, back)
	case errors.Is(err, service.ErrInvalidUpload):
		h.redirectWithFlash(c, back, h.invalidUploadMessage())
	case errors.Is(err, service.ErrValidationFailed):
		var errs form.Errors
		if errors.As(err, &errs) && errs.Has("content") && strings.TrimSpace(in.Content) != "" {
			h.redirectWithFlash(c, back, msgPostTooLong)
			return
		}
		h.redirectWithFlash(c, back, msgEmptyPost)
	case errors.Is(err, service.ErrForbidden):
		renderError(c, http.StatusForbidden)
	default:
		h.internalError(c, err)
	}
}

func imageHeader(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func (h *Handler) invalidUploadMessage() string {
	exts := make([]string, len(h.opts.AllowedExtensions))
	for i, ext := range h.opts.AllowedExtensions {
		exts[i] = "." + strings.TrimPrefix(ext, ".")
	}
	return "Invalid upload file, please ensure you only upload images with: " + strings.Join(exts, ", ") + " extensions."
}
