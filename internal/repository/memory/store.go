// Package memory is a process-local implementation of the repository
// interfaces. A unit of work holds the store lock for its whole duration.
// Every write inside it logs its inverse, and the log is replayed backwards
// when the unit does not commit, so rollback costs the writes made rather
// than the size of the store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

type reactionKey struct {
	userID int64
	postID string
}

type state struct {
	nextUserID int64
	users      map[int64]domain.User
	countries  map[string]domain.Country
	posts      map[string]domain.Post
	// friends keeps each owner's edges in insertion order.
	friends   map[int64][]domain.FriendEdge
	reactions map[reactionKey]domain.Reaction

	// undo is non-nil while a unit of work is open.
	undo []func()
}

func newState() *state {
	return &state{
		nextUserID: 1,
		users:      make(map[int64]domain.User),
		countries:  make(map[string]domain.Country),
		posts:      make(map[string]domain.Post),
		friends:    make(map[int64][]domain.FriendEdge),
		reactions:  make(map[reactionKey]domain.Reaction),
	}
}

func (s *state) begin() {
	s.undo = make([]func(), 0, 8)
}

// finish closes the unit of work, replaying the undo log unless it commits.
func (s *state) finish(commit bool) {
	if !commit {
		for i := len(s.undo) - 1; i >= 0; i-- {
			s.undo[i]()
		}
	}
	s.undo = nil
}

// remember logs how to restore m[k] to its current value. Stored values
// must not be mutated in place afterwards, only replaced.
func remember[K comparable, V any](s *state, m map[K]V, k K) {
	if s.undo == nil {
		return
	}
	old, ok := m[k]
	s.undo = append(s.undo, func() {
		if ok {
			m[k] = old
		} else {
			delete(m, k)
		}
	})
}

func (s *state) rememberNextUserID() {
	if s.undo == nil {
		return
	}
	old := s.nextUserID
	s.undo = append(s.undo, func() { s.nextUserID = old })
}

type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// SetClock replaces the time source used for edge and reaction timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedCountries loads reference data.
func (s *Store) SeedCountries(countries ...domain.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range countries {
		s.st.countries[c.Alpha2] = c
	}
}

func (s *Store) Users() repository.UserRepository         { return userRepo{s.access(false)} }
func (s *Store) Friends() repository.FriendRepository     { return friendRepo{s.access(false)} }
func (s *Store) Posts() repository.PostRepository         { return postRepo{s.access(false)} }
func (s *Store) Reactions() repository.ReactionRepository { return reactionRepo{s.access(false)} }
func (s *Store) Countries() repository.CountryRepository  { return countryRepo{s.access(false)} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.st
	st.begin()
	committed := false
	defer func() { st.finish(committed) }()

	if err := fn(ctx, &unitOfWork{acc: s.access(true)}); err != nil {
		return fmt.Errorf("unit of work: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work: %w", err)
	}
	committed = true
	return nil
}

type unitOfWork struct {
	acc *access
}

func (u *unitOfWork) Users() repository.UserRepository         { return userRepo{u.acc} }
func (u *unitOfWork) Friends() repository.FriendRepository     { return friendRepo{u.acc} }
func (u *unitOfWork) Posts() repository.PostRepository         { return postRepo{u.acc} }
func (u *unitOfWork) Reactions() repository.ReactionRepository { return reactionRepo{u.acc} }

// access is the shared handle of every repo. Outside a unit of work each
// call takes the store lock; inside one the lock is already held.
type access struct {
	store *Store
	inTx  bool
}

func (s *Store) access(inTx bool) *access {
	return &access{store: s, inTx: inTx}
}

// enter checks the context and returns the live state with a release func.
func (a *access) enter(ctx context.Context) (*state, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if a.inTx {
		return a.store.st, func() {}, nil
	}
	a.store.mu.Lock()
	return a.store.st, a.store.mu.Unlock, nil
}

func (a *access) now() time.Time {
	return a.store.now()
}
