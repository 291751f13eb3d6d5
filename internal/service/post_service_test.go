package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", false)

	p, err := f.posts.Create(ctx, alice, CreatePostInput{Content: "first"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "alice", p.Author)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, []string{p.ID}, f.notes.created)

	got, err := f.posts.Get(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
	assert.Zero(t, got.LikesCount)
	assert.Zero(t, got.DislikesCount)
}

func TestPostVisibilityFollowsAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", false)
	p := f.post(t, alice, "private thoughts")

	_, err := f.posts.Get(ctx, bob, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	ok, err := f.posts.CanView(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.posts.CanView(ctx, bob, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.friends.Add(ctx, bob, "alice"))
	ok, err = f.posts.CanView(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// the reverse edge is not enough.
	_, err = f.posts.Get(ctx, alice, f.post(t, bob, "mine").ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", true)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	f.posts.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	for i := range 7 {
		f.post(t, alice, fmt.Sprintf("post %d", i))
	}

	first, err := f.posts.Feed(ctx, alice, Page{})
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, "post 6", first[0].Content)
	assert.Equal(t, "post 2", first[4].Content)

	rest, err := f.posts.Feed(ctx, alice, Page{Offset: 5, Limit: 5})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "post 1", rest[0].Content)

	empty, err := f.posts.Feed(ctx, alice, Page{Offset: 50})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFeedByLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice", false)
	bob := f.user(t, "bob", true)
	f.post(t, alice, "a")
	f.post(t, bob, "b")

	_, err := f.posts.FeedByLogin(ctx, bob, "alice", Page{})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	_, err = f.posts.FeedByLogin(ctx, bob, "nobody", Page{})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	posts, err := f.posts.FeedByLogin(ctx, alice, "bob", Page{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b", posts[0].Content)

	own, err := f.posts.FeedByLogin(ctx, alice, "alice", Page{})
	require.NoError(t, err)
	assert.Len(t, own, 1)
}
