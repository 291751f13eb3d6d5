package ws

import (
	"encoding/json"
	"time"
)

// Event types - Client → Server
const (
	EventTypePostSubscribe   = "post.subscribe"
	EventTypePostUnsubscribe = "post.unsubscribe"
	EventTypePing            = "ping"
)

// Event types - Server → Client
const (
	EventTypePostSubscribed = "post.subscribed"
	EventTypePostReactions  = "post.reactions"
	EventTypeFriendAdded    = "friend.added"
	EventTypePong           = "pong"
	EventTypeError          = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	PostID    string          `json:"postId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type PostPayload struct {
	PostID string `json:"postId"`
}

// --- Server → Client payloads ---

type ReactionsPayload struct {
	PostID        string `json:"postId"`
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
}

type FriendAddedPayload struct {
	Login   string    `json:"login"`
	AddedAt time.Time `json:"addedAt"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType, postID string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		PostID:    postID,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
