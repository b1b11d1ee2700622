package domain

import "time"

// Post is a stream entry. Posts are immutable once created.
type Post struct {
	ID           int64
	AuthorID     int64
	Content      string
	Image        string
	CreatedAt    time.Time
	Author       Author
	CommentCount int
}

// HasImage reports whether the post references an uploaded image.
func (p Post) HasImage() bool {
	return p.Image != ""
}
