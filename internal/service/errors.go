package service

import (
	"errors"
	"fmt"
	"strings"

	"social-stream/internal/domain"
	"social-stream/internal/form"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidationFailed wraps the form.Errors describing which fields failed.
	ErrValidationFailed = errors.New("validation failed")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a named user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post id matches no post.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidUpload rejects files with a disallowed extension, an unusable
	// name, no content, or more bytes than the configured limit.
	ErrInvalidUpload = errors.New("invalid upload")
	// ErrAlreadyFriends is returned when the friend edge already exists.
	ErrAlreadyFriends = errors.New("already friends")
	// ErrUnauthenticated is returned for missing, forged, or expired sessions.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the session user acts on another user's page.
	ErrForbidden = errors.New("forbidden")
)

func validationError(errs form.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, errs)
}

// authorizeOwner checks that actor is the owner of the page named by username.
func authorizeOwner(actor *domain.User, username string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !strings.EqualFold(actor.Username, strings.TrimSpace(username)) {
		return ErrForbidden
	}
	return nil
}
