package repository

import (
	"context"

	"social-stream/internal/domain"
)

// FriendRepository manages directional friend edges.
type FriendRepository interface {
	// Add inserts the edge owner -> friend. It returns ErrConflict when the
	// edge already exists.
	Add(ctx context.Context, ownerID, friendID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.FriendEdge, error)
}
