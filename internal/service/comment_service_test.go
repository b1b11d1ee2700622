package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"social-stream/internal/form"
)

func TestCommentThread(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.posts, env.comments, env.store)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "hello")

	_, err := svc.Add(ctx, bob, post.ID, form.CommentForm{Comment: "first"})
	require.NoError(t, err)
	added, err := svc.Add(ctx, alice, post.ID, form.CommentForm{Comment: " second "})
	require.NoError(t, err)
	require.Equal(t, "second", added.Text)
	require.Equal(t, alice.ID, added.AuthorID)

	item, comments, err := svc.Thread(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", item.Content)
	require.Equal(t, 2, item.CommentCount)
	require.Len(t, comments, 2)
	require.Equal(t, "second", comments[0].Text)
	require.Equal(t, "alice", comments[0].Author.Username)
	require.Equal(t, "first", comments[1].Text)
	require.Equal(t, "bob", comments[1].Author.Username)
}

func TestCommentErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.posts, env.comments, env.store)
	ctx := context.Background()

	alice := env.register(t, "alice")
	post := env.post(t, alice, "hello")

	_, _, err := svc.Thread(ctx, post.ID+1)
	require.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Add(ctx, alice, post.ID+1, form.CommentForm{Comment: "lost"})
	require.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Add(ctx, alice, post.ID, form.CommentForm{Comment: "   "})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Add(ctx, alice, post.ID, form.CommentForm{Comment: strings.Repeat("c", 2001)})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Add(ctx, nil, post.ID, form.CommentForm{Comment: "anon"})
	require.ErrorIs(t, err, ErrUnauthenticated)
}
