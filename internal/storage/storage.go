package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for object keys that could escape the upload root.
var ErrInvalidKey = errors.New("invalid object key")

// Object describes an upload about to be stored.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// Service stores uploaded post images and resolves the URL a browser uses to
// fetch them. Objects are never deleted: keys derive from content, so one
// object may back several posts.
type Service interface {
	Put(ctx context.Context, obj Object) error
	URL(ctx context.Context, key string) (string, error)
}
