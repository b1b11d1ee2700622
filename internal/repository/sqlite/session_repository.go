package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"social-stream/internal/domain"
	"social-stream/internal/repository"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if _, err := exec(ctx, r.db, `
INSERT INTO sessions (id, user_id, issued_at, expires_at, remember)
VALUES (?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.IssuedAt.UTC(),
		session.ExpiresAt.UTC(),
		session.Remember,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := queryRow(ctx, r.db, scanSession, `
SELECT id, user_id, issued_at, expires_at, remember
FROM sessions
WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.db, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error) {
	res, err := exec(ctx, r.db, `DELETE FROM sessions WHERE user_id = ? AND expires_at <= ?`, userID, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expired sessions rows affected: %w", err)
	}
	return n, nil
}

func scanSession(row scanner) (domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.IssuedAt, &s.ExpiresAt, &s.Remember); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}
