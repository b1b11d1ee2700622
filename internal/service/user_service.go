package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/password"
	"social-stream/internal/repository"
)

// UserService describes account and profile operations.
type UserService interface {
	Register(ctx context.Context, in form.RegisterForm) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
	// dummy is verified against when the username is unknown.
	dummy string
}

func NewUserService(users repository.UserRepository) (UserService, error) {
	dummy, err := password.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &userService{users: users, dummy: dummy}, nil
}

func (s *userService) Register(ctx context.Context, in form.RegisterForm) (*domain.User, error) {
	in.Normalize()
	if errs := form.Validate(&in); errs != nil {
		return nil, validationError(errs)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, plain string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn the same hashing cost as a real check so response time
			// does not reveal which usernames exist.
			_ = password.Verify(plain, s.dummy)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.Verify(plain, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return lookupUserByID(ctx, s.users, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return lookupUser(ctx, s.users, username)
}

// lookupUser resolves a username from a URL or form into a sanitized user.
func lookupUser(ctx context.Context, users repository.UserRepository, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func lookupUserByID(ctx context.Context, users repository.UserRepository, id int64) (*domain.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
