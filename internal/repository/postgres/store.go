package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/circle/internal/repository"
)

type unitOfWork struct {
	users     *UserRepo
	friends   *FriendRepo
	posts     *PostRepo
	reactions *ReactionRepo
}

func newUnitOfWork(db DBTX) *unitOfWork {
	return &unitOfWork{
		users:     NewUserRepo(db),
		friends:   NewFriendRepo(db),
		posts:     NewPostRepo(db),
		reactions: NewReactionRepo(db),
	}
}

func (u *unitOfWork) Users() repository.UserRepository         { return u.users }
func (u *unitOfWork) Friends() repository.FriendRepository     { return u.friends }
func (u *unitOfWork) Posts() repository.PostRepository         { return u.posts }
func (u *unitOfWork) Reactions() repository.ReactionRepository { return u.reactions }

// Store serves reads straight from the pool and opens a transaction per
// WithinTx call.
type Store struct {
	*unitOfWork
	pool      *pgxpool.Pool
	countries *CountryRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		unitOfWork: newUnitOfWork(pool),
		pool:       pool,
		countries:  NewCountryRepo(pool),
	}
}

func (s *Store) Countries() repository.CountryRepository {
	return s.countries
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, newUnitOfWork(tx))
	})
	if err != nil {
		return fmt.Errorf("unit of work: %w", err)
	}
	return nil
}
