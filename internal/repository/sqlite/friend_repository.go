package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"social-stream/internal/domain"
	"social-stream/internal/repository"
)

type FriendRepository struct {
	db *sql.DB
}

func NewFriendRepository(db *sql.DB) repository.FriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Add(ctx context.Context, ownerID, friendID int64) error {
	_, err := exec(ctx, r.db, `
INSERT INTO friends (u_id, f_id, created_at)
VALUES (?, ?, ?)`,
		ownerID,
		friendID,
		time.Now().UTC(),
	)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("friend edge %d->%d: %w", ownerID, friendID, repository.ErrConflict)
		}
		return fmt.Errorf("insert friend edge: %w", err)
	}
	return nil
}

func (r *FriendRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.FriendEdge, error) {
	edges, err := queryRows(ctx, r.db, scanFriendEdge, `
SELECT f.u_id, f.f_id, f.created_at, u.username, u.first_name, u.last_name
FROM friends AS f
JOIN users AS u ON u.id = f.f_id
WHERE f.u_id = ? AND f.f_id != ?
ORDER BY u.username ASC`, ownerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list friends of %d: %w", ownerID, err)
	}
	return edges, nil
}

func scanFriendEdge(row scanner) (domain.FriendEdge, error) {
	var e domain.FriendEdge
	if err := row.Scan(
		&e.OwnerID,
		&e.FriendID,
		&e.CreatedAt,
		&e.Friend.Username,
		&e.Friend.FirstName,
		&e.Friend.LastName,
	); err != nil {
		return domain.FriendEdge{}, err
	}
	e.Friend.ID = e.FriendID
	return e, nil
}
