package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"social-stream/internal/logx"
	"social-stream/internal/repository/sqlite"
	"social-stream/internal/service"
	"social-stream/internal/storage"
)

const (
	testPassword    = "Abcdef1!"
	testMaxUpload   = 1024
	testRememberTTL = 720 * time.Hour
)

type testServer struct {
	router     *gin.Engine
	uploadsDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db))

	uploadsDir := filepath.Join(dir, "uploads")
	store, err := storage.NewLocalService(uploadsDir, "/uploads")
	require.NoError(t, err)

	users := sqlite.NewUserRepository(db)
	posts := sqlite.NewPostRepository(db)
	exts := []string{"png", "jpg", "jpeg"}

	sessions, err := service.NewSessionService(sqlite.NewSessionRepository(db), users, service.SessionConfig{
		SecretKey:   []byte("test-secret"),
		TTL:         time.Hour,
		RememberTTL: testRememberTTL,
	})
	require.NoError(t, err)
	userSvc, err := service.NewUserService(users)
	require.NoError(t, err)

	handler := NewHandler(Services{
		Users:    userSvc,
		Sessions: sessions,
		Stream: service.NewStreamService(users, posts, store, service.UploadPolicy{
			AllowedExtensions: exts,
			MaxBytes:          testMaxUpload,
		}),
		Comments: service.NewCommentService(posts, sqlite.NewCommentRepository(db), store),
		Friends:  service.NewFriendService(users, sqlite.NewFriendRepository(db)),
		Profiles: service.NewProfileService(users),
	}, Options{
		RememberTTL:       testRememberTTL,
		MaxUploadBytes:    testMaxUpload,
		AllowedExtensions: exts,
		UploadsDir:        uploadsDir,
	})

	router := gin.New()
	router.Use(gin.Recovery(), logx.Middleware(logx.NewWithOutput(io.Discard, "info", "text")))
	handler.RegisterRoutes(router)

	return &testServer{router: router, uploadsDir: uploadsDir}
}

// client is a browser stand-in that keeps cookies between requests.
type client struct {
	t       *testing.T
	srv     *testServer
	cookies map[string]*http.Cookie
}

func (s *testServer) client(t *testing.T) *client {
	return &client{t: t, srv: s, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	rec := httptest.NewRecorder()
	c.srv.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postMultipart(path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	c.t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(c.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(c.t, err)
		_, err = part.Write(content)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

type pageResponse struct {
	Page   string          `json:"page"`
	Flash  string          `json:"flash"`
	Viewer *UserView       `json:"viewer"`
	Data   json.RawMessage `json:"data"`
}

// page fetches path and decodes the rendered page, filling data when non-nil.
func (c *client) page(path string, data any) pageResponse {
	c.t.Helper()

	rec := c.get(path)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var p pageResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &p))
	if data != nil {
		require.NoError(c.t, json.Unmarshal(p.Data, data))
	}
	return p
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}

func (s *testServer) register(t *testing.T, username string) {
	t.Helper()

	rec := s.client(t).postForm("/index", url.Values{
		"action":           {"register"},
		"username":         {username},
		"first_name":       {"First"},
		"last_name":        {"Last"},
		"password":         {testPassword},
		"confirm_password": {testPassword},
	})
	requireRedirect(t, rec, "/index")
}

// login registers username and returns a client holding its session.
func (s *testServer) login(t *testing.T, username string) *client {
	t.Helper()

	s.register(t, username)
	c := s.client(t)
	rec := c.postForm("/login", url.Values{"username": {username}, "password": {testPassword}})
	requireRedirect(t, rec, "/stream/"+username)
	require.Contains(t, c.cookies, sessionCookie)
	return c
}
