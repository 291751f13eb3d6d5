package ws

import (
	"time"

	"github.com/vedran77/circle/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// NotifyPostCreated has no websocket audience: clients follow existing posts.
func (n *HubNotifier) NotifyPostCreated(*domain.Post) {}

func (n *HubNotifier) NotifyPostReacted(post *domain.Post, _ int64, _ domain.ReactionType) {
	evt, err := NewEvent(EventTypePostReactions, post.ID, ReactionsPayload{
		PostID:        post.ID,
		LikesCount:    post.LikesCount,
		DislikesCount: post.DislikesCount,
	})
	if err != nil {
		n.hub.logger.Error("ws notifier: marshal", "error", err)
		return
	}
	n.hub.BroadcastToPost(post.ID, evt)
}

// NotifyFriendAdded tells the target who added them.
func (n *HubNotifier) NotifyFriendAdded(owner, target *domain.User, addedAt time.Time) {
	evt, err := NewEvent(EventTypeFriendAdded, "", FriendAddedPayload{
		Login:   owner.Login,
		AddedAt: addedAt,
	})
	if err != nil {
		n.hub.logger.Error("ws notifier: marshal", "error", err)
		return
	}
	n.hub.BroadcastToUser(target.ID, evt)
}

func (n *HubNotifier) NotifyFriendRemoved(_, _ *domain.User) {}
