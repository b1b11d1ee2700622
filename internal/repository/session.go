package repository

import (
	"context"
	"time"

	"social-stream/internal/domain"
)

// SessionRepository persists server-side login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error)
}
