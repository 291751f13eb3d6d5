package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/circle/internal/domain"
)

func TestCountryService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewCountryService(f.store.Countries())

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "KE", all[0].Alpha2)

	europe, err := svc.List(ctx, "Europe")
	require.NoError(t, err)
	require.Len(t, europe, 1)
	assert.Equal(t, "RU", europe[0].Alpha2)

	asia, err := svc.List(ctx, "Asia")
	require.NoError(t, err)
	assert.Equal(t, []domain.Country{}, asia)

	_, err = svc.List(ctx, "Atlantis")
	assert.ErrorIs(t, err, ErrUnknownRegion)

	ke, err := svc.Get(ctx, "ke")
	require.NoError(t, err)
	assert.Equal(t, "Kenya", ke.Name)

	_, err = svc.Get(ctx, "zz")
	assert.ErrorIs(t, err, ErrCountryNotFound)
}
