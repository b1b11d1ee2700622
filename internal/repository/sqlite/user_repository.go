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

const selectUser = `
SELECT id, username, first_name, last_name, password_hash,
	education, employment, music, movie, nationality, birthday,
	created_at, updated_at
FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := exec(ctx, r.db, `
INSERT INTO users (username, first_name, last_name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("user already exists: %w", err)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := queryRow(ctx, r.db, scanUser, selectUser+` WHERE username = ?`, username)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := queryRow(ctx, r.db, scanUser, selectUser+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, profile domain.Profile) error {
	var birthday any
	if profile.Birthday != nil {
		birthday = profile.Birthday.UTC()
	}

	res, err := exec(ctx, r.db, `
UPDATE users
SET education=?, employment=?, music=?, movie=?, nationality=?, birthday=?, updated_at=?
WHERE id=?`,
		profile.Education,
		profile.Employment,
		profile.Music,
		profile.Movie,
		profile.Nationality,
		birthday,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update profile %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user     domain.User
		birthday sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Profile.Education,
		&user.Profile.Employment,
		&user.Profile.Music,
		&user.Profile.Movie,
		&user.Profile.Nationality,
		&birthday,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Profile.Birthday = nullTime(birthday)
	return &user, nil
}
