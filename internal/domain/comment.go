package domain

import "time"

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
	Author    Author
}
