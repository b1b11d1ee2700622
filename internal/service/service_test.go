package service

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/repository"
	"social-stream/internal/repository/sqlite"
	"social-stream/internal/storage"
)

const testPassword = "Abcdef1!"

type testEnv struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	friends  repository.FriendRepository
	sessions repository.SessionRepository
	store    *storage.LocalService

	userSvc UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := sqlite.Open(filepath.Join(dir, "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db))

	store, err := storage.NewLocalService(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	env := &testEnv{
		users:    sqlite.NewUserRepository(db),
		posts:    sqlite.NewPostRepository(db),
		comments: sqlite.NewCommentRepository(db),
		friends:  sqlite.NewFriendRepository(db),
		sessions: sqlite.NewSessionRepository(db),
		store:    store,
	}
	env.userSvc, err = NewUserService(env.users)
	require.NoError(t, err)
	return env
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()

	user, err := e.userSvc.Register(context.Background(), form.RegisterForm{
		Username:        username,
		FirstName:       "First",
		LastName:        "Last",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) befriend(t *testing.T, owner, friend *domain.User) {
	t.Helper()
	require.NoError(t, e.friends.Add(context.Background(), owner.ID, friend.ID))
}

func (e *testEnv) post(t *testing.T, author *domain.User, content string) *domain.Post {
	t.Helper()

	post := &domain.Post{AuthorID: author.ID, Content: content}
	_, err := e.posts.Create(context.Background(), post)
	require.NoError(t, err)
	return post
}

func pngUpload(name string) *Upload {
	return &Upload{Filename: name, Body: bytes.NewReader([]byte("\x89PNG\r\n\x1a\nfake image body"))}
}
