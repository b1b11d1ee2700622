package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"social-stream/internal/form"
	"social-stream/internal/password"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.register(t, "alice")
	require.NotZero(t, user.ID)
	require.Empty(t, user.PasswordHash)

	stored, err := env.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, testPassword, stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, "$argon2id$")

	t.Run("duplicate username", func(t *testing.T) {
		_, err := env.userSvc.Register(ctx, form.RegisterForm{
			Username:        "Alice",
			FirstName:       "Other",
			LastName:        "Alice",
			Password:        testPassword,
			ConfirmPassword: testPassword,
		})
		require.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := env.userSvc.Register(ctx, form.RegisterForm{
			Username:        "bob",
			FirstName:       "Bob",
			LastName:        "Builder",
			Password:        "Abcdefg!",
			ConfirmPassword: "Abcdefg!",
		})
		require.ErrorIs(t, err, ErrValidationFailed)

		var errs form.Errors
		require.ErrorAs(t, err, &errs)
		require.True(t, errs.Has("password"))

		_, err = env.users.GetByUsername(ctx, "bob")
		require.Error(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.register(t, "alice")

	user, err := env.userSvc.Authenticate(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	_, err = env.userSvc.Authenticate(ctx, "alice", "Abcdef1?")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.userSvc.Authenticate(ctx, "nobody", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.userSvc.Authenticate(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUnknownUserVerifiesAgainstRealHash(t *testing.T) {
	env := newTestEnv(t)

	svc, ok := env.userSvc.(*userService)
	require.True(t, ok)
	require.Contains(t, svc.dummy, "$argon2id$")
	// A well-formed hash means the unknown-user path pays the full cost.
	require.ErrorIs(t, password.Verify(testPassword, svc.dummy), password.ErrMismatch)

	_, err := env.userSvc.Authenticate(context.Background(), "nobody", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created := env.register(t, "alice")

	user, err := env.userSvc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)

	_, err = env.userSvc.GetByID(ctx, created.ID+100)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.userSvc.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}
