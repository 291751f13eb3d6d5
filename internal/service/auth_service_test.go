package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/circle/internal/config"
	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/security"
)

func ptr[T any](v T) *T { return &v }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.auth.Register(ctx, RegisterInput{
		Login:       "alice",
		Email:       "alice@example.com",
		Password:    "secret1",
		CountryCode: "ke",
		IsPublic:    ptr(false),
		Phone:       ptr("+254700000000"),
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "KE", u.CountryCode)
	assert.False(t, u.IsPublic)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, f.hasher.Verify("secret1", u.PasswordHash))
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.Register(ctx, RegisterInput{
		Login: "alice", Email: "alice@example.com", Password: "secret1",
		CountryCode: "RU", IsPublic: ptr(true), Phone: ptr("+7900"),
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"same login", RegisterInput{Login: "alice", Email: "other@example.com"}},
		{"same email", RegisterInput{Login: "bob", Email: "alice@example.com"}},
		{"same phone", RegisterInput{Login: "bob", Email: "bob@example.com", Phone: ptr("+7900")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Password = "secret1"
			in.CountryCode = "RU"
			in.IsPublic = ptr(true)
			_, err := f.auth.Register(ctx, in)
			assert.ErrorIs(t, err, ErrUserExists)
			assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		})
	}
}

func TestRegisterUnknownCountry(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), RegisterInput{
		Login: "alice", Email: "alice@example.com", Password: "secret1",
		CountryCode: "ZZ", IsPublic: ptr(true),
	})
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestSignInAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", true)

	token, err := f.auth.SignIn(ctx, SignInInput{Login: "alice", Password: "password-alice"})
	require.NoError(t, err)

	got, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = f.auth.SignIn(ctx, SignInInput{Login: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.SignIn(ctx, SignInInput{Login: "nobody", Password: "password-alice"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "alice", true)

	issuer, err := security.NewTokenService(config.TokenConfig{Secret: "shh", Algorithm: "HS256", TTLHours: 1})
	require.NoError(t, err)
	past := issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	stale, err := past.IssueDefault("alice")
	require.NoError(t, err)

	ghost, err := f.tokens.IssueDefault("ghost")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":         "",
		"garbage":       "not-a-token",
		"expired":       stale,
		"unknown login": ghost,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.Authenticate(ctx, token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", true)

	err := f.auth.UpdatePassword(ctx, alice, UpdatePasswordInput{OldPassword: "nope", NewPassword: "brand-new"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	require.NoError(t, f.auth.UpdatePassword(ctx, alice, UpdatePasswordInput{
		OldPassword: "password-alice",
		NewPassword: "brand-new",
	}))

	_, err = f.auth.SignIn(ctx, SignInInput{Login: "alice", Password: "password-alice"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.SignIn(ctx, SignInInput{Login: "alice", Password: "brand-new"})
	assert.NoError(t, err)
}
