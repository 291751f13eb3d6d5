package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/vedran77/circle/internal/metrics"
)

// Hub owns the set of connected clients. All membership changes and fan-out
// happen on the Run goroutine.
type Hub struct {
	logger *slog.Logger

	// clients maps userID → that user's open connections.
	clients map[int64]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
	done       chan struct{}
}

// broadcastMsg targets either the subscribers of a post or one user.
type broadcastMsg struct {
	postID string
	userID int64
	data   []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled, after
// disconnecting every client.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		close(h.done)
		for _, conns := range h.clients {
			for client := range conns {
				h.drop(client)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			conns, ok := h.clients[client.user.ID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.user.ID] = conns
			}
			conns[client] = struct{}{}
			metrics.WSClients.Inc()
			h.logger.Debug("ws client connected", "login", client.user.Login)

		case client := <-h.unregister:
			if _, ok := h.clients[client.user.ID][client]; ok {
				h.drop(client)
				h.logger.Debug("ws client disconnected", "login", client.user.Login)
			}

		case msg := <-h.broadcast:
			if msg.postID != "" {
				for _, conns := range h.clients {
					for client := range conns {
						if client.IsSubscribed(msg.postID) {
							h.deliver(client, outbound{postID: msg.postID, data: msg.data})
						}
					}
				}
				continue
			}
			for client := range h.clients[msg.userID] {
				h.deliver(client, outbound{data: msg.data})
			}
		}
	}
}

// deliver queues data for client, disconnecting it when its buffer is full.
func (h *Hub) deliver(client *Client, msg outbound) {
	select {
	case client.send <- msg:
	default:
		h.logger.Warn("ws client too slow, disconnecting", "login", client.user.Login)
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	conns := h.clients[client.user.ID]
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.user.ID)
	}
	client.close()
	metrics.WSClients.Dec()
}

// BroadcastToPost sends an event to all subscribers of a post.
func (h *Hub) BroadcastToPost(postID string, event *Event) {
	h.enqueue(&broadcastMsg{postID: postID}, event)
}

// BroadcastToUser sends an event to every connection of a user.
func (h *Hub) BroadcastToUser(userID int64, event *Event) {
	h.enqueue(&broadcastMsg{userID: userID}, event)
}

func (h *Hub) enqueue(msg *broadcastMsg, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws hub: marshal event", "type", event.Type, "error", err)
		return
	}
	msg.data = data

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("ws hub: broadcast queue full, dropping event", "type", event.Type)
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
