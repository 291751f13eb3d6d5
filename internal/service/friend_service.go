package service

import (
	"context"
	"fmt"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/metrics"
	"github.com/vedran77/circle/internal/repository"
)

// FriendService maintains the directed friend graph.
type FriendService struct {
	store    repository.Store
	notifier Notifier
}

func NewFriendService(store repository.Store) *FriendService {
	return &FriendService{store: store}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *FriendService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Add makes owner a friend of the user with targetLogin. Adding yourself or
// an existing friend succeeds without changes.
func (s *FriendService) Add(ctx context.Context, owner *domain.User, targetLogin string) error {
	if owner.Login == targetLogin {
		return nil
	}

	target, err := s.store.Users().GetByLogin(ctx, targetLogin)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	var edge *domain.FriendEdge
	err = s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		edge, err = uow.Friends().AddEdge(ctx, owner.ID, target.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("adding friend: %w", err)
	}

	if edge != nil {
		metrics.FriendEdges.WithLabelValues("add").Inc()
		if s.notifier != nil {
			s.notifier.NotifyFriendAdded(owner, target, edge.AddedAt)
		}
	}
	return nil
}

// Remove deletes the owner→target edge. Unknown logins and missing edges
// are treated as already removed.
func (s *FriendService) Remove(ctx context.Context, owner *domain.User, targetLogin string) error {
	if owner.Login == targetLogin {
		return nil
	}

	target, err := s.store.Users().GetByLogin(ctx, targetLogin)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil
	}

	var removed bool
	err = s.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		removed, err = uow.Friends().RemoveEdge(ctx, owner.ID, target.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("removing friend: %w", err)
	}

	if removed {
		metrics.FriendEdges.WithLabelValues("remove").Inc()
		if s.notifier != nil {
			s.notifier.NotifyFriendRemoved(owner, target)
		}
	}
	return nil
}

// List returns the owner's friends in the order they were added.
func (s *FriendService) List(ctx context.Context, owner *domain.User, page Page) ([]domain.FriendEdge, error) {
	page = page.normalize()
	edges, err := s.store.Friends().ListEdges(ctx, owner.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	if edges == nil {
		edges = []domain.FriendEdge{}
	}
	return edges, nil
}
