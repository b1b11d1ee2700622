package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalService keeps uploads in a directory on local disk. The HTTP layer
// serves that directory under URLPrefix.
type LocalService struct {
	root      string
	urlPrefix string
}

func NewLocalService(root, urlPrefix string) (*LocalService, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalService{
		root:      filepath.Clean(root),
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Root returns the directory uploads are written to.
func (s *LocalService) Root() string {
	return s.root
}

func (s *LocalService) Put(ctx context.Context, obj Object) error {
	dst, err := s.path(obj.Key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: obj.Body}); err != nil {
		tmp.Close()
		return fmt.Errorf("write upload %s: %w", obj.Key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload %s: %w", obj.Key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("store upload %s: %w", obj.Key, err)
	}
	return nil
}

func (s *LocalService) URL(_ context.Context, key string) (string, error) {
	if _, err := s.path(key); err != nil {
		return "", err
	}
	return path.Join(s.urlPrefix, url.PathEscape(key)), nil
}

// path maps key to a file directly under root. Keys are flat names, so
// anything carrying a separator or a dot-segment is refused.
func (s *LocalService) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, key), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var _ Service = (*LocalService)(nil)
