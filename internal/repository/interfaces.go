package repository

import (
	"context"
	"errors"

	"github.com/vedran77/circle/internal/domain"
)

// ErrDuplicate is returned when a write hits a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// Lookups return (nil, nil) when the row does not exist.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// GetForUpdate reads the user and holds the row until the enclosing unit
	// of work ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.User, error)
	// FindConflicting returns users sharing the login, email or phone.
	FindConflicting(ctx context.Context, login, email string, phone *string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type CountryRepository interface {
	List(ctx context.Context) ([]domain.Country, error)
	ListByRegion(ctx context.Context, region string) ([]domain.Country, error)
	GetByAlpha2(ctx context.Context, alpha2 string) (*domain.Country, error)
}

type FriendRepository interface {
	// AddEdge inserts the directed edge unless it already exists. It returns
	// the stored edge when a row was created and nil otherwise.
	AddEdge(ctx context.Context, ownerID, targetID int64) (*domain.FriendEdge, error)
	// RemoveEdge deletes the edge if present and reports whether it existed.
	RemoveEdge(ctx context.Context, ownerID, targetID int64) (bool, error)
	HasEdge(ctx context.Context, ownerID, targetID int64) (bool, error)
	// ListEdges returns (target, addedAt) pairs in insertion order from a
	// single read.
	ListEdges(ctx context.Context, ownerID int64, offset, limit int) ([]domain.FriendEdge, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// GetForUpdate reads the post and holds it exclusively until the
	// enclosing unit of work ends.
	GetForUpdate(ctx context.Context, id string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]domain.Post, error)
	AdjustCounters(ctx context.Context, id string, delta domain.CounterDelta) (*domain.Post, error)
}

type ReactionRepository interface {
	Get(ctx context.Context, userID int64, postID string) (*domain.Reaction, error)
	Upsert(ctx context.Context, reaction *domain.Reaction) error
}

// UnitOfWork exposes repositories bound to one transaction.
type UnitOfWork interface {
	Users() UserRepository
	Friends() FriendRepository
	Posts() PostRepository
	Reactions() ReactionRepository
}

// Transactor runs fn inside a fresh unit of work. The work is committed when
// fn returns nil and rolled back on error, panic or context cancellation.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// Store is the full storage surface used by the services.
type Store interface {
	UnitOfWork
	Transactor
	Countries() CountryRepository
}
