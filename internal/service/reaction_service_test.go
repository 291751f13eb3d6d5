package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/circle/internal/domain"
)

func counters(p *domain.Post) [2]int {
	return [2]int{p.LikesCount, p.DislikesCount}
}

func TestToggleScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author := f.user(t, "alice", true)
	bob := f.user(t, "bob", false)
	post := f.post(t, author, "hello")
	assert.Equal(t, [2]int{0, 0}, counters(post))

	p, err := f.ledger.Toggle(ctx, bob, post.ID, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, counters(p))

	p, err = f.ledger.Toggle(ctx, bob, post.ID, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, counters(p))

	p, err = f.ledger.Toggle(ctx, bob, post.ID, domain.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 1}, counters(p))

	p, err = f.ledger.Toggle(ctx, bob, post.ID, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, counters(p))
	assert.Equal(t, "alice", p.Author)

	assert.Equal(t, []string{
		post.ID + ":like",
		post.ID + ":dislike",
		post.ID + ":like",
	}, f.notes.reacted, "repeated requests are not announced")
}

func TestToggleConservesSum(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author := f.user(t, "author", true)
	post := f.post(t, author, "counted")

	users := make([]*domain.User, 6)
	for i := range users {
		users[i] = f.user(t, fmt.Sprintf("user-%d", i), false)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	live := map[int64]domain.ReactionType{}
	for range 200 {
		u := users[rng.IntN(len(users))]
		req := domain.ReactionLike
		if rng.IntN(2) == 0 {
			req = domain.ReactionDislike
		}
		p, err := f.ledger.Toggle(ctx, u, post.ID, req)
		require.NoError(t, err)
		live[u.ID] = req

		likes, dislikes := 0, 0
		for _, r := range live {
			if r == domain.ReactionLike {
				likes++
			} else {
				dislikes++
			}
		}
		require.Equal(t, [2]int{likes, dislikes}, counters(p))
		require.Equal(t, len(live), p.LikesCount+p.DislikesCount)
	}
}

func TestConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author := f.user(t, "author", true)
	post := f.post(t, author, "contended")

	const n = 16
	users := make([]*domain.User, n)
	for i := range users {
		users[i] = f.user(t, fmt.Sprintf("racer-%d", i), false)
	}

	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				req := domain.ReactionLike
				if (i+j)%3 == 0 {
					req = domain.ReactionDislike
				}
				_, err := f.ledger.Toggle(ctx, u, post.ID, req)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	final, err := f.posts.Get(ctx, author, post.ID)
	require.NoError(t, err)
	assert.Equal(t, f.store.CountReactions(post.ID, domain.ReactionLike), final.LikesCount)
	assert.Equal(t, f.store.CountReactions(post.ID, domain.ReactionDislike), final.DislikesCount)
	assert.Equal(t, n, final.LikesCount+final.DislikesCount)
}

func TestTogglePrivatePostLooksMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author := f.user(t, "hidden", false)
	stranger := f.user(t, "stranger", false)
	post := f.post(t, author, "secret")

	_, err := f.ledger.Toggle(ctx, stranger, post.ID, domain.ReactionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.ledger.Toggle(ctx, stranger, "no-such-post", domain.ReactionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)

	require.NoError(t, f.friends.Add(ctx, stranger, author.Login))
	p, err := f.ledger.Toggle(ctx, stranger, post.ID, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, counters(p))
}

func TestToggleRejectsUnknownReaction(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice", true)
	post := f.post(t, u, "x")

	for _, r := range []domain.ReactionType{domain.ReactionNone, "love"} {
		_, err := f.ledger.Toggle(context.Background(), u, post.ID, r)
		assert.ErrorIs(t, err, ErrInvalidReaction)
	}
}

func TestToggleCancelledLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice", true)
	post := f.post(t, u, "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ledger.Toggle(ctx, u, post.ID, domain.ReactionLike)
	assert.ErrorIs(t, err, context.Canceled)

	p, err := f.posts.Get(context.Background(), u, post.ID)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 0}, counters(p))
	assert.Zero(t, f.store.CountReactions(post.ID, domain.ReactionLike))
}
