package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/repository"
	"social-stream/internal/storage"
)

// DefaultMaxUploadBytes bounds image uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 8 << 20

// FeedItem is a post ready for display with its image resolved to a URL.
type FeedItem struct {
	domain.Post
	ImageURL string
}

// Upload is an image attached to a new post.
type Upload struct {
	Filename string
	Body     io.Reader
}

// NewPost is the input of StreamService.CreatePost.
type NewPost struct {
	Content string
	Image   *Upload
}

// StreamService lists and creates posts on a user's stream.
type StreamService interface {
	Stream(ctx context.Context, username string) (*domain.User, []FeedItem, error)
	CreatePost(ctx context.Context, actor *domain.User, username string, in NewPost) (*FeedItem, error)
}

// UploadPolicy restricts what may be attached to a post.
type UploadPolicy struct {
	AllowedExtensions []string
	MaxBytes          int64
}

type streamService struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	store  storage.Service
	policy UploadPolicy
}

func NewStreamService(users repository.UserRepository, posts repository.PostRepository, store storage.Service, policy UploadPolicy) StreamService {
	if len(policy.AllowedExtensions) == 0 {
		policy.AllowedExtensions = []string{"png", "jpg", "jpeg"}
	}
	if policy.MaxBytes <= 0 {
		policy.MaxBytes = DefaultMaxUploadBytes
	}
	return &streamService{users: users, posts: posts, store: store, policy: policy}
}

func (s *streamService) Stream(ctx context.Context, username string) (*domain.User, []FeedItem, error) {
	owner, err := lookupUser(ctx, s.users, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.posts.ListVisibleTo(ctx, owner.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list stream: %w", err)
	}

	items := make([]FeedItem, 0, len(posts))
	for _, post := range posts {
		item, err := feedItem(ctx, s.store, post)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}
	return owner, items, nil
}

func (s *streamService) CreatePost(ctx context.Context, actor *domain.User, username string, in NewPost) (*FeedItem, error) {
	if err := authorizeOwner(actor, username); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if errs := form.Validate(&form.PostForm{Content: content}); errs != nil {
		return nil, validationError(errs)
	}
	if content == "" && in.Image == nil {
		return nil, validationError(form.Errors{{Field: "content", Rule: "required", Message: "is required"}})
	}

	post := &domain.Post{AuthorID: actor.ID, Content: content}
	if in.Image != nil {
		key, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = key
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = domain.Author{
		ID:        actor.ID,
		Username:  actor.Username,
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
	}

	item, err := feedItem(ctx, s.store, *post)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// storeImage checks the upload against the policy and writes it under a key
// derived from its content, returning that key.
func (s *streamService) storeImage(ctx context.Context, up *Upload) (string, error) {
	name := storage.SanitizeFilename(up.Filename)
	if name == "" || !storage.HasAllowedExtension(name, s.policy.AllowedExtensions) {
		return "", fmt.Errorf("%w: file type not allowed", ErrInvalidUpload)
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, s.policy.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.policy.MaxBytes {
		return "", fmt.Errorf("%w: file too large", ErrInvalidUpload)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])[:12] + "_" + name

	if err := s.store.Put(ctx, storage.Object{
		Key:         key,
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: storage.ContentTypeFor(name),
	}); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

func feedItem(ctx context.Context, store storage.Service, post domain.Post) (FeedItem, error) {
	item := FeedItem{Post: post}
	if !post.HasImage() {
		return item, nil
	}
	url, err := store.URL(ctx, post.Image)
	if err != nil {
		return FeedItem{}, fmt.Errorf("image url for post %d: %w", post.ID, err)
	}
	item.ImageURL = url
	return item, nil
}
