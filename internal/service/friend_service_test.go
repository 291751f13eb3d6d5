package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.user(t, "alice", false)
	f.user(t, "bob", false)

	require.NoError(t, f.friends.Add(ctx, a, "bob"))
	require.NoError(t, f.friends.Add(ctx, a, "bob"))

	edges, err := f.friends.List(ctx, a, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "bob", edges[0].TargetLogin)
	assert.Len(t, f.notes.added, 1, "only the first add changes state")
}

func TestAddFriendNotifiesStoredTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.user(t, "alice", false)
	f.user(t, "bob", false)

	require.NoError(t, f.friends.Add(ctx, a, "bob"))

	edges, err := f.friends.List(ctx, a, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Len(t, f.notes.addedAt, 1)
	assert.True(t, f.notes.addedAt[0].Equal(edges[0].AddedAt))
}

func TestAddSelfIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.user(t, "alice", false)
	require.NoError(t, f.friends.Add(ctx, a, "alice"))

	edges, err := f.friends.List(ctx, a, Page{})
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestAddUnknownLogin(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "alice", false)

	err := f.friends.Add(context.Background(), a, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveIsTolerant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.user(t, "alice", false)
	f.user(t, "bob", false)

	assert.NoError(t, f.friends.Remove(ctx, a, "ghost"))
	assert.NoError(t, f.friends.Remove(ctx, a, "bob"))
	assert.NoError(t, f.friends.Remove(ctx, a, "alice"))
	assert.Empty(t, f.notes.removed)

	require.NoError(t, f.friends.Add(ctx, a, "bob"))
	require.NoError(t, f.friends.Remove(ctx, a, "bob"))
	assert.Len(t, f.notes.removed, 1)
}

func TestListFriendsPairsLoginWithAddedAt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	f.store.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	a := f.user(t, "alice", false)
	for _, login := range []string{"bob", "carol", "dave", "erin"} {
		f.user(t, login, true)
		require.NoError(t, f.friends.Add(ctx, a, login))
	}
	require.NoError(t, f.friends.Remove(ctx, a, "carol"))

	first, err := f.friends.List(ctx, a, Page{Offset: 0, Limit: 2})
	require.NoError(t, err)
	second, err := f.friends.List(ctx, a, Page{Offset: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 1)
	assert.Equal(t, "bob", first[0].TargetLogin)
	assert.Equal(t, base.Add(1*time.Minute), first[0].AddedAt)
	assert.Equal(t, "dave", first[1].TargetLogin)
	assert.Equal(t, base.Add(3*time.Minute), first[1].AddedAt)
	assert.Equal(t, "erin", second[0].TargetLogin)
	assert.Equal(t, base.Add(4*time.Minute), second[0].AddedAt)
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Offset: 0, Limit: 5}, Page{Offset: -3}.normalize())
	assert.Equal(t, Page{Offset: 4, Limit: 5}, Page{Offset: 4, Limit: 500}.normalize())
	assert.Equal(t, Page{Offset: 1, Limit: 20}, Page{Offset: 1, Limit: 20}.normalize())
}
