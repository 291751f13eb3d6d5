// Package events publishes committed domain changes to NATS.
package events

import "time"

// Event subjects (topics)
const (
	SubjectPostCreated   = "post.created"
	SubjectPostReacted   = "post.reacted"
	SubjectFriendAdded   = "friend.added"
	SubjectFriendRemoved = "friend.removed"
)

// PostCreatedEvent is published when a user creates a post
type PostCreatedEvent struct {
	EventID   string    `json:"event_id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
}

// PostReactedEvent carries the counters after a reaction changed
type PostReactedEvent struct {
	EventID       string    `json:"event_id"`
	PostID        string    `json:"post_id"`
	UserID        int64     `json:"user_id"`
	Reaction      string    `json:"reaction"`
	LikesCount    int       `json:"likes_count"`
	DislikesCount int       `json:"dislikes_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// FriendEvent is published when a directed friend edge is added or removed
type FriendEvent struct {
	EventID   string    `json:"event_id"`
	Owner     string    `json:"owner"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}
