package repository

import (
	"context"

	"social-stream/internal/domain"
)

// PostRepository exposes persistence operations for stream posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	// ListVisibleTo returns the posts authored by userID or by anyone sharing a
	// friend edge with userID in either direction, newest first.
	ListVisibleTo(ctx context.Context, userID int64) ([]domain.Post, error)
}

// CommentRepository manages comments on posts.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
}
