package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"social-stream/internal/domain"
	"social-stream/internal/repository"
)

const selectPost = `
SELECT p.id, p.u_id, p.content, p.image, p.creation_time,
	u.username, u.first_name, u.last_name,
	(SELECT COUNT(*) FROM comments AS c WHERE c.p_id = p.id) AS comment_count
FROM posts AS p
JOIN users AS u ON u.id = p.u_id`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	post.CreatedAt = time.Now().UTC()

	res, err := exec(ctx, r.db, `
INSERT INTO posts (u_id, content, image, creation_time)
VALUES (?, ?, ?, ?)`,
		post.AuthorID,
		post.Content,
		post.Image,
		post.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := queryRow(ctx, r.db, scanPost, selectPost+` WHERE p.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (r *PostRepository) ListVisibleTo(ctx context.Context, userID int64) ([]domain.Post, error) {
	posts, err := queryRows(ctx, r.db, scanPost, selectPost+`
WHERE p.u_id = ?
	OR p.u_id IN (SELECT f_id FROM friends WHERE u_id = ?)
	OR p.u_id IN (SELECT u_id FROM friends WHERE f_id = ?)
ORDER BY p.creation_time DESC, p.id DESC`,
		userID, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stream for user %d: %w", userID, err)
	}
	return posts, nil
}

func scanPost(row scanner) (domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.Image,
		&post.CreatedAt,
		&post.Author.Username,
		&post.Author.FirstName,
		&post.Author.LastName,
		&post.CommentCount,
	); err != nil {
		return domain.Post{}, err
	}
	post.Author.ID = post.AuthorID
	return post, nil
}
