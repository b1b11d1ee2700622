package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/repository"
	"social-stream/internal/storage"
)

// CommentService shows a post with its comments and adds new ones.
type CommentService interface {
	Thread(ctx context.Context, postID int64) (*FeedItem, []domain.Comment, error)
	Add(ctx context.Context, actor *domain.User, postID int64, in form.CommentForm) (*domain.Comment, error)
}

type commentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	store    storage.Service
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository, store storage.Service) CommentService {
	return &commentService{posts: posts, comments: comments, store: store}
}

// Thread returns the post and its comments, newest first.
func (s *commentService) Thread(ctx context.Context, postID int64) (*FeedItem, []domain.Comment, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	item, err := feedItem(ctx, s.store, *post)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list comments: %w", err)
	}
	return &item, comments, nil
}

// Add attaches a comment written by actor. The author always comes from the
// session, never from the request.
func (s *commentService) Add(ctx context.Context, actor *domain.User, postID int64, in form.CommentForm) (*domain.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	in.Comment = strings.TrimSpace(in.Comment)
	if errs := form.Validate(&in); errs != nil {
		return nil, validationError(errs)
	}

	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: actor.ID,
		Text:     in.Comment,
		Author: domain.Author{
			ID:        actor.ID,
			Username:  actor.Username,
			FirstName: actor.FirstName,
			LastName:  actor.LastName,
		},
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) getPost(ctx context.Context, postID int64) (*domain.Post, error) {
	if postID <= 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
