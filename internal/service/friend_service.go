package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/repository"
)

// FriendService manages the directional friend edges of a user.
type FriendService interface {
	List(ctx context.Context, username string) (*domain.User, []domain.FriendEdge, error)
	Add(ctx context.Context, actor *domain.User, username string, in form.FriendForm) (*domain.User, error)
}

type friendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
}

func NewFriendService(users repository.UserRepository, friends repository.FriendRepository) FriendService {
	return &friendService{users: users, friends: friends}
}

func (s *friendService) List(ctx context.Context, username string) (*domain.User, []domain.FriendEdge, error) {
	owner, err := lookupUser(ctx, s.users, username)
	if err != nil {
		return nil, nil, err
	}
	edges, err := s.friends.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list friends: %w", err)
	}
	return owner, edges, nil
}

// Add records that actor follows the user named in the form and returns that
// user. Only the owner of the friends page may add to it.
func (s *friendService) Add(ctx context.Context, actor *domain.User, username string, in form.FriendForm) (*domain.User, error) {
	if err := authorizeOwner(actor, username); err != nil {
		return nil, err
	}

	in.Username = strings.TrimSpace(in.Username)
	if errs := form.Validate(&in); errs != nil {
		return nil, validationError(errs)
	}

	target, err := lookupUser(ctx, s.users, in.Username)
	if err != nil {
		return nil, err
	}
	if target.ID == actor.ID {
		return nil, validationError(form.Errors{{Field: "username", Rule: "self", Message: "cannot add yourself"}})
	}

	if err := s.friends.Add(ctx, actor.ID, target.ID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyFriends
		}
		return nil, fmt.Errorf("add friend: %w", err)
	}
	return target, nil
}
