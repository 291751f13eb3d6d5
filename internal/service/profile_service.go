package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

type ProfileService struct {
	store repository.Store
	gate  *AccessGate
}

func NewProfileService(store repository.Store, gate *AccessGate) *ProfileService {
	return &ProfileService{store: store, gate: gate}
}

type EditProfileInput struct {
	CountryCode *string `json:"countryCode,omitempty" validate:"omitnil,alpha2"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
	Phone       *string `json:"phone,omitempty" validate:"omitnil,max=20,phone"`
	Image       *string `json:"image,omitempty" validate:"omitnil,min=1,max=200"`
}

// Get returns the profile of login as seen by requester. Private profiles
// the requester has not added are reported exactly like missing ones.
func (s *ProfileService) Get(ctx context.Context, requester *domain.User, login string) (*domain.User, error) {
	if requester.Login == login {
		return requester, nil
	}

	target, err := s.store.Users().GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil, ErrProfileNotFound
	}
	if err := s.gate.Authorize(ctx, requester, target, ErrProfileNotFound); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *ProfileService) Edit(ctx context.Context, user *domain.User, input EditProfileInput) (*domain.User, error) {
	update := domain.ProfileUpdate{
		IsPublic: input.IsPublic,
		Phone:    input.Phone,
		Image:    input.Image,
	}

	if input.CountryCode != nil {
		code := strings.ToUpper(*input.CountryCode)
		country, err := s.store.Countries().GetByAlpha2(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("looking up country: %w", err)
		}
		if country == nil {
			return nil, ErrUnknownCountry
		}
		update.CountryCode = &code
	}

	// The update is applied to the row as it is now, not to the caller's
	// copy, so fields left out of the request keep their latest values.
	var updated domain.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		current, err := uow.Users().GetForUpdate(ctx, user.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrProfileNotFound
		}

		if input.Phone != nil && (current.Phone == nil || *current.Phone != *input.Phone) {
			owner, err := uow.Users().GetByPhone(ctx, *input.Phone)
			if err != nil {
				return fmt.Errorf("looking up phone: %w", err)
			}
			if owner != nil && owner.ID != current.ID {
				return ErrPhoneTaken
			}
		}

		updated = update.Apply(*current)
		return uow.Users().UpdateProfile(ctx, &updated)
	})
	switch {
	case errors.Is(err, ErrPhoneTaken), errors.Is(err, repository.ErrDuplicate):
		return nil, ErrPhoneTaken
	case errors.Is(err, ErrProfileNotFound):
		return nil, ErrProfileNotFound
	case err != nil:
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return &updated, nil
}
