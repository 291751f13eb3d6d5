package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
	"github.com/vedran77/circle/internal/security"
)

type AuthService struct {
	store  repository.Store
	hasher *security.PasswordHasher
	tokens *security.TokenService
}

func NewAuthService(store repository.Store, hasher *security.PasswordHasher, tokens *security.TokenService) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Login       string  `json:"login" validate:"required,login"`
	Email       string  `json:"email" validate:"required,max=50,email"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	CountryCode string  `json:"countryCode" validate:"required,alpha2"`
	IsPublic    *bool   `json:"isPublic" validate:"required"`
	Phone       *string `json:"phone,omitempty" validate:"omitnil,max=20,phone"`
	Image       *string `json:"image,omitempty" validate:"omitnil,min=1,max=200"`
}

type SignInInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	countryCode := strings.ToUpper(input.CountryCode)
	country, err := s.store.Countries().GetByAlpha2(ctx, countryCode)
	if err != nil {
		return nil, fmt.Errorf("looking up country: %w", err)
	}
	if country == nil {
		return nil, ErrUnknownCountry
	}

	existing, err := s.store.Users().FindConflicting(ctx, input.Login, input.Email, input.Phone)
	if err != nil {
		return nil, fmt.Errorf("checking existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Login:        input.Login,
		Email:        input.Email,
		PasswordHash: hash,
		CountryCode:  countryCode,
		IsPublic:     input.IsPublic != nil && *input.IsPublic,
		Phone:        input.Phone,
		Image:        input.Image,
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		return uow.Users().Create(ctx, user)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// SignIn checks credentials and issues a token with the configured lifetime.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (string, error) {
	user, err := s.store.Users().GetByLogin(ctx, input.Login)
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueDefault(user.Login)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user. Every failure, including
// a valid token for a login that no longer exists, is ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.store.Users().GetByLogin(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, user *domain.User, input UpdatePasswordInput) error {
	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		return uow.Users().UpdatePassword(ctx, user.ID, hash)
	})
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}
