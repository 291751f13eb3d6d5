package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vedran77/circle/internal/config"
	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository/memory"
	"github.com/vedran77/circle/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store    *memory.Store
	hasher   *security.PasswordHasher
	tokens   *security.TokenService
	gate     *AccessGate
	auth     *AuthService
	profiles *ProfileService
	friends  *FriendService
	posts    *PostService
	ledger   *ReactionLedger
	notes    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.SeedCountries(
		domain.Country{Name: "Russia", Alpha2: "RU", Alpha3: "RUS", Region: "Europe"},
		domain.Country{Name: "Kenya", Alpha2: "KE", Alpha3: "KEN", Region: "Africa"},
	)

	hasher, err := security.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := security.NewTokenService(config.TokenConfig{Secret: "shh", Algorithm: "HS256", TTLHours: 1})
	require.NoError(t, err)

	gate := NewAccessGate(store.Friends())
	notes := &recorder{}

	f := &fixture{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		gate:     gate,
		auth:     NewAuthService(store, hasher, tokens),
		profiles: NewProfileService(store, gate),
		friends:  NewFriendService(store),
		posts:    NewPostService(store, gate),
		ledger:   NewReactionLedger(store, gate),
		notes:    notes,
	}
	f.friends.SetNotifier(notes)
	f.posts.SetNotifier(notes)
	f.ledger.SetNotifier(notes)
	return f
}

func (f *fixture) user(t *testing.T, login string, public bool) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterInput{
		Login:       login,
		Email:       login + "@example.com",
		Password:    "password-" + login,
		CountryCode: "ru",
		IsPublic:    &public,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, author *domain.User, content string) *domain.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), author, CreatePostInput{Content: content, Tags: []string{"go"}})
	require.NoError(t, err)
	return p
}

type recorder struct {
	mu      sync.Mutex
	created []string
	reacted []string
	added   [][2]string
	addedAt []time.Time
	removed [][2]string
}

func (r *recorder) NotifyPostCreated(post *domain.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, post.ID)
}

func (r *recorder) NotifyPostReacted(post *domain.Post, _ int64, reaction domain.ReactionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reacted = append(r.reacted, post.ID+":"+string(reaction))
}

func (r *recorder) NotifyFriendAdded(owner, target *domain.User, addedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, [2]string{owner.Login, target.Login})
	r.addedAt = append(r.addedAt, addedAt)
}

func (r *recorder) NotifyFriendRemoved(owner, target *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, [2]string{owner.Login, target.Login})
}
