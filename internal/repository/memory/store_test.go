package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

func seededStore(t *testing.T) (*Store, *domain.User, *domain.User) {
	t.Helper()
	s := NewStore()
	ctx := context.Background()

	alice := &domain.User{Login: "alice", Email: "alice@example.com", CountryCode: "RU"}
	bob := &domain.User{Login: "bob", Email: "bob@example.com", CountryCode: "RU"}
	require.NoError(t, s.Users().Create(ctx, alice))
	require.NoError(t, s.Users().Create(ctx, bob))
	return s, alice, bob
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	s, alice, bob := seededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		edge, err := uow.Friends().AddEdge(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.NotNil(t, edge)
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Friends().HasEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	s, alice, bob := seededStore(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
			_, _ = uow.Friends().AddEdge(ctx, alice.ID, bob.ID)
			panic("unexpected")
		})
	})

	ok, err := s.Friends().HasEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinTxRollsBackOnCancel(t *testing.T) {
	s, alice, _ := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	post := &domain.Post{ID: "p1", Content: "x", AuthorID: alice.ID, CreatedAt: time.Now()}
	err := s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		require.NoError(t, uow.Posts().Create(ctx, post))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	got, err := s.Posts().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithinTxCommits(t *testing.T) {
	s, alice, bob := seededStore(t)
	ctx := context.Background()

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		_, err := uow.Friends().AddEdge(ctx, alice.ID, bob.ID)
		return err
	}))

	ok, err := s.Friends().HasEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Friends().HasEdge(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok, "edges are directed")
}

func TestUniqueUsers(t *testing.T) {
	s, _, _ := seededStore(t)
	ctx := context.Background()

	err := s.Users().Create(ctx, &domain.User{Login: "alice", Email: "new@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.Users().Create(ctx, &domain.User{Login: "carol", Email: "bob@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCountersNeverNegative(t *testing.T) {
	s, alice, _ := seededStore(t)
	ctx := context.Background()
	require.NoError(t, s.Posts().Create(ctx, &domain.Post{ID: "p1", AuthorID: alice.ID, CreatedAt: time.Now()}))

	err := s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		_, err := uow.Posts().AdjustCounters(ctx, "p1", domain.CounterDelta{Likes: -1})
		return err
	})
	require.Error(t, err)

	p, err := s.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, p.LikesCount)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s, alice, _ := seededStore(t)
	ctx := context.Background()
	require.NoError(t, s.Posts().Create(ctx, &domain.Post{ID: "p1", AuthorID: alice.ID, Tags: []string{"a"}}))

	p, err := s.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Tags[0] = "mutated"
	p.LikesCount = 100

	again, err := s.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.Zero(t, again.LikesCount)
	assert.Equal(t, "alice", again.Author)
}

func TestWithinTxRollbackRestoresEveryWrite(t *testing.T) {
	s, alice, bob := seededStore(t)
	ctx := context.Background()
	carol := &domain.User{Login: "carol", Email: "carol@example.com", CountryCode: "RU"}
	require.NoError(t, s.Users().Create(ctx, carol))
	for _, target := range []int64{bob.ID, carol.ID} {
		_, err := s.Friends().AddEdge(ctx, alice.ID, target)
		require.NoError(t, err)
	}
	require.NoError(t, s.Posts().Create(ctx, &domain.Post{ID: "p1", AuthorID: bob.ID, CreatedAt: time.Now()}))
	before, err := s.Friends().ListEdges(ctx, alice.ID, 0, 10)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		require.NoError(t, uow.Users().Create(ctx, &domain.User{Login: "dave", Email: "dave@example.com"}))
		flipped := *alice
		flipped.IsPublic = true
		require.NoError(t, uow.Users().UpdateProfile(ctx, &flipped))
		removed, err := uow.Friends().RemoveEdge(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.True(t, removed)
		_, err = uow.Friends().AddEdge(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		require.NoError(t, uow.Reactions().Upsert(ctx, &domain.Reaction{UserID: alice.ID, PostID: "p1", Type: domain.ReactionLike}))
		_, err = uow.Posts().AdjustCounters(ctx, "p1", domain.CounterDelta{Likes: 1})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := s.Friends().ListEdges(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, before, after, "removed edge is back in its place")

	ok, err := s.Friends().HasEdge(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	u, err := s.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, u.IsPublic)

	dave, err := s.Users().GetByLogin(ctx, "dave")
	require.NoError(t, err)
	assert.Nil(t, dave)

	rc, err := s.Reactions().Get(ctx, alice.ID, "p1")
	require.NoError(t, err)
	assert.Nil(t, rc)

	p, err := s.Posts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, p.LikesCount)

	next := &domain.User{Login: "erin", Email: "erin@example.com"}
	require.NoError(t, s.Users().Create(ctx, next))
	assert.Equal(t, carol.ID+1, next.ID, "ids handed out inside the rolled back unit are reused")
}
