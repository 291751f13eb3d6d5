package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/metrics"
	"github.com/vedran77/circle/internal/repository"
)

// ReactionLedger keeps each user's single live reaction per post and the
// post's like/dislike counters in step. It is the only writer of counters.
type ReactionLedger struct {
	store    repository.Store
	gate     *AccessGate
	notifier Notifier
	now      func() time.Time
}

func NewReactionLedger(store repository.Store, gate *AccessGate) *ReactionLedger {
	return &ReactionLedger{store: store, gate: gate, now: time.Now}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (l *ReactionLedger) SetNotifier(n Notifier) {
	l.notifier = n
}

// Toggle moves user's reaction on postID to requested and returns the post
// with its counters after the change. The post row is locked for the whole
// read-modify-write, so concurrent toggles on one post serialize.
func (l *ReactionLedger) Toggle(ctx context.Context, user *domain.User, postID string, requested domain.ReactionType) (*domain.Post, error) {
	if !requested.Requestable() {
		return nil, ErrInvalidReaction
	}

	if err := l.authorize(ctx, user, postID); err != nil {
		return nil, err
	}

	var (
		updated *domain.Post
		from    domain.ReactionType
	)
	err := l.store.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		post, err := uow.Posts().GetForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}

		current, err := uow.Reactions().Get(ctx, user.ID, postID)
		if err != nil {
			return err
		}
		from = domain.ReactionNone
		if current != nil {
			from = current.Type
		}

		next, delta := from.Transition(requested)
		if delta.IsZero() {
			updated = post
			return nil
		}

		if err := uow.Reactions().Upsert(ctx, &domain.Reaction{
			UserID:    user.ID,
			PostID:    postID,
			Type:      next,
			CreatedAt: l.now().UTC(),
		}); err != nil {
			return fmt.Errorf("writing reaction: %w", err)
		}

		updated, err = uow.Posts().AdjustCounters(ctx, postID, delta)
		if err != nil {
			return fmt.Errorf("updating counters: %w", err)
		}
		if updated == nil {
			return ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		metrics.ReactionToggles.WithLabelValues(string(requested), "error").Inc()
		return nil, err
	}

	changed := from != requested
	if changed {
		metrics.ReactionToggles.WithLabelValues(string(requested), "changed").Inc()
		if l.notifier != nil {
			l.notifier.NotifyPostReacted(updated, user.ID, requested)
		}
	} else {
		metrics.ReactionToggles.WithLabelValues(string(requested), "unchanged").Inc()
	}
	return updated, nil
}

// authorize hides posts the user may not see behind the same outcome as a
// missing post.
func (l *ReactionLedger) authorize(ctx context.Context, user *domain.User, postID string) error {
	post, err := l.store.Posts().GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("loading post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	author, err := l.store.Users().GetByID(ctx, post.AuthorID)
	if err != nil {
		return fmt.Errorf("loading author: %w", err)
	}
	if author == nil {
		return ErrPostNotFound
	}
	return l.gate.Authorize(ctx, user, author, ErrPostNotFound)
}
