package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"social-stream/internal/domain"
	"social-stream/internal/repository"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	comment.CreatedAt = time.Now().UTC()

	res, err := exec(ctx, r.db, `
INSERT INTO comments (p_id, u_id, comment, creation_time)
VALUES (?, ?, ?, ?)`,
		comment.PostID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	comments, err := queryRows(ctx, r.db, scanComment, `
SELECT c.id, c.p_id, c.u_id, c.comment, c.creation_time,
	u.username, u.first_name, u.last_name
FROM comments AS c
JOIN users AS u ON u.id = c.u_id
WHERE c.p_id = ?
ORDER BY c.creation_time DESC, c.id DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return comments, nil
}

func scanComment(row scanner) (domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Text,
		&c.CreatedAt,
		&c.Author.Username,
		&c.Author.FirstName,
		&c.Author.LastName,
	); err != nil {
		return domain.Comment{}, err
	}
	c.Author.ID = c.AuthorID
	return c, nil
}
