package service

import (
	"time"

	"github.com/vedran77/circle/internal/domain"
)

// Notifier receives committed changes for real-time delivery. Calls happen
// after the unit of work commits and must not block.
type Notifier interface {
	NotifyPostCreated(post *domain.Post)
	NotifyPostReacted(post *domain.Post, userID int64, reaction domain.ReactionType)
	NotifyFriendAdded(owner, target *domain.User, addedAt time.Time)
	NotifyFriendRemoved(owner, target *domain.User)
}

// Notifiers fans a notification out to every member.
type Notifiers []Notifier

func (ns Notifiers) NotifyPostCreated(post *domain.Post) {
	for _, n := range ns {
		n.NotifyPostCreated(post)
	}
}

func (ns Notifiers) NotifyPostReacted(post *domain.Post, userID int64, reaction domain.ReactionType) {
	for _, n := range ns {
		n.NotifyPostReacted(post, userID, reaction)
	}
}

func (ns Notifiers) NotifyFriendAdded(owner, target *domain.User, addedAt time.Time) {
	for _, n := range ns {
		n.NotifyFriendAdded(owner, target, addedAt)
	}
}

func (ns Notifiers) NotifyFriendRemoved(owner, target *domain.User) {
	for _, n := range ns {
		n.NotifyFriendRemoved(owner, target)
	}
}

const (
	defaultPageLimit = 5
	maxPageLimit     = 50
)

type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 || p.Limit > maxPageLimit {
		p.Limit = defaultPageLimit
	}
	return p
}
