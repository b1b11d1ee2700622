package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-stream/internal/service"
)

// Services groups the domain services the handlers depend on.
type Services struct {
	Users    service.UserService
	Sessions service.SessionService
	Stream   service.StreamService
	Comments service.CommentService
	Friends  service.FriendService
	Profiles service.ProfileService
}

// Options tunes cookies and uploads.
type Options struct {
	// CookieSecure marks session and flash cookies Secure.
	CookieSecure bool
	// RememberTTL is the Max-Age of a remember-me session cookie.
	RememberTTL time.Duration
	// MaxUploadBytes bounds the request body of a stream post.
	MaxUploadBytes int64
	// AllowedExtensions is echoed in the invalid upload message.
	AllowedExtensions []string
	// UploadsDir, when set, is served under /uploads.
	UploadsDir string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	svc  Services
	opts Options
}

func NewHandler(svc Services, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = service.DefaultMaxUploadBytes
	}
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = 30 * 24 * time.Hour
	}
	return &Handler{svc: svc, opts: opts}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.showIndex)
	router.POST("/", h.submitIndex)
	router.GET("/index", h.showIndex)
	router.POST("/index", h.submitIndex)
	router.GET("/login", h.showLogin)
	router.POST("/login", h.submitLogin)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if h.opts.UploadsDir != "" {
		router.Static("/uploads", h.opts.UploadsDir)
	}

	authed := router.Group("", h.requireSession())
	{
		authed.GET("/logout", h.logout)
		authed.GET("/settings", h.settings)
		authed.GET("/stream/:username", h.showStream)
		authed.POST("/stream/:username", h.createPost)
		authed.GET("/comments/:username/:post_id", h.showComments)
		authed.POST("/comments/:username/:post_id", h.addComment)
		authed.GET("/friends/:username", h.showFriends)
		authed.POST("/friends/:username", h.addFriend)
		authed.GET("/profile/:username", h.showProfile)
		authed.POST("/profile/:username", h.updateProfile)
	}
}
