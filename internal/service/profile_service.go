package service

import (
	"context"
	"errors"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/repository"
)

// ProfileService reads and edits the optional profile details of a user.
type ProfileService interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, username string, in form.ProfileForm) (*domain.User, error)
}

type profileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) Get(ctx context.Context, username string) (*domain.User, error) {
	return lookupUser(ctx, s.users, username)
}

// Update replaces every profile field at once; only the owner may call it.
func (s *profileService) Update(ctx context.Context, actor *domain.User, username string, in form.ProfileForm) (*domain.User, error) {
	if err := authorizeOwner(actor, username); err != nil {
		return nil, err
	}
	in.Normalize()
	if errs := form.Validate(&in); errs != nil {
		return nil, validationError(errs)
	}

	if err := s.users.UpdateProfile(ctx, actor.ID, in.Profile()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return lookupUserByID(ctx, s.users, actor.ID)
}
