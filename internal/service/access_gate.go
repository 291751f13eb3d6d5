package service

import (
	"context"
	"fmt"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/metrics"
	"github.com/vedran77/circle/internal/repository"
)

type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllowSelf
	DecisionAllowPublic
	DecisionAllowFriend
)

func (d Decision) Allowed() bool {
	return d != DecisionDeny
}

func (d Decision) String() string {
	switch d {
	case DecisionAllowSelf:
		return "self"
	case DecisionAllowPublic:
		return "public"
	case DecisionAllowFriend:
		return "friend"
	default:
		return "deny"
	}
}

// AccessGate decides whether a requester may read another user's profile
// and posts. Only the requester's outgoing edge counts: B adding A does not
// let A see B.
type AccessGate struct {
	friends repository.FriendRepository
}

func NewAccessGate(friends repository.FriendRepository) *AccessGate {
	return &AccessGate{friends: friends}
}

func (g *AccessGate) Decide(ctx context.Context, requester, target *domain.User) (Decision, error) {
	d, err := g.decide(ctx, requester, target)
	if err != nil {
		return DecisionDeny, err
	}
	metrics.AccessDecisions.WithLabelValues(d.String()).Inc()
	return d, nil
}

func (g *AccessGate) decide(ctx context.Context, requester, target *domain.User) (Decision, error) {
	if requester.ID == target.ID {
		return DecisionAllowSelf, nil
	}
	if target.IsPublic {
		return DecisionAllowPublic, nil
	}
	ok, err := g.friends.HasEdge(ctx, requester.ID, target.ID)
	if err != nil {
		return DecisionDeny, fmt.Errorf("checking friend edge: %w", err)
	}
	if ok {
		return DecisionAllowFriend, nil
	}
	return DecisionDeny, nil
}

// Authorize returns denied when the requester may not view target. Callers
// pass their own not-found outcome so a denial looks like absence.
func (g *AccessGate) Authorize(ctx context.Context, requester, target *domain.User, denied error) error {
	d, err := g.Decide(ctx, requester, target)
	if err != nil {
		return err
	}
	if !d.Allowed() {
		return denied
	}
	return nil
}
