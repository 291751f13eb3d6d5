package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/vedran77/circle/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait      = 10 * time.Second
	checkWait      = 5 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Viewer decides whether a user may follow a post.
type Viewer interface {
	CanView(ctx context.Context, user *domain.User, postID string) (bool, error)
}

// Client represents a single WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	user   *domain.User
	viewer Viewer

	// subscribedPosts tracks which posts this client listens to.
	subscribedPosts map[string]struct{}
	mu              sync.RWMutex

	send      chan outbound
	done      chan struct{}
	closeOnce sync.Once
}

// outbound is a queued frame. Frames fanned out to post subscribers carry
// the post ID so access is checked again right before the write.
type outbound struct {
	postID string
	data   []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, user *domain.User, viewer Viewer) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		hub:             hub,
		conn:            conn,
		user:            user,
		viewer:          viewer,
		subscribedPosts: make(map[string]struct{}),
		send:            make(chan outbound, sendBufSize),
		done:            make(chan struct{}),
	}
}

// IsSubscribed checks if this client is subscribed to a post.
func (c *Client) IsSubscribed(postID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subscribedPosts[postID]
	return ok
}

func (c *Client) Subscribe(postID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribedPosts[postID] = struct{}{}
}

func (c *Client) Unsubscribe(postID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribedPosts, postID)
}

// ReadPump reads messages from the WebSocket and handles them.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(ctx, c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				c.hub.logger.Debug("ws read error", "login", c.user.Login, "error", err)
			}
			return
		}

		c.handleEvent(ctx, &event)
	}
}

// close stops the write loop. Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// WritePump writes queued messages to the WebSocket until the client is
// closed or ctx ends.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			if message.postID != "" && !c.canStillView(ctx, message.postID) {
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(wctx, websocket.MessageText, message.data)
			cancel()
			if err != nil {
				c.hub.logger.Debug("ws write error", "login", c.user.Login, "error", err)
				return
			}

		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				c.hub.logger.Debug("ws ping error", "login", c.user.Login, "error", err)
				return
			}

		case <-c.done:
			return

		case <-ctx.Done():
			return
		}
	}
}

// canStillView re-runs the access check for a subscribed post. A user who
// lost access is unsubscribed; so is one whose check fails.
func (c *Client) canStillView(ctx context.Context, postID string) bool {
	if !c.IsSubscribed(postID) {
		return false
	}
	cctx, cancel := context.WithTimeout(ctx, checkWait)
	ok, err := c.viewer.CanView(cctx, c.user, postID)
	cancel()
	if err != nil {
		c.hub.logger.Error("ws delivery check", "login", c.user.Login, "post_id", postID, "error", err)
	}
	if err != nil || !ok {
		c.Unsubscribe(postID)
		c.hub.logger.Debug("ws subscription revoked", "login", c.user.Login, "post_id", postID)
		return false
	}
	return true
}

func (c *Client) handleEvent(ctx context.Context, event *Event) {
	switch event.Type {
	case EventTypePostSubscribe:
		var p PostPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.PostID == "" {
			c.sendError("INVALID_PAYLOAD", "invalid post.subscribe payload")
			return
		}

		cctx, cancel := context.WithTimeout(ctx, checkWait)
		ok, err := c.viewer.CanView(cctx, c.user, p.PostID)
		cancel()
		if err != nil {
			c.hub.logger.Error("ws subscribe check", "login", c.user.Login, "post_id", p.PostID, "error", err)
			c.sendError("INTERNAL", "something went wrong")
			return
		}
		if !ok {
			c.sendError("NOT_FOUND", "post not found or not accessible")
			return
		}
		c.Subscribe(p.PostID)
		c.sendEvent(EventTypePostSubscribed, p.PostID, p)

	case EventTypePostUnsubscribe:
		var p PostPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid post.unsubscribe payload")
			return
		}
		c.Unsubscribe(p.PostID)

	case EventTypePing:
		c.sendEvent(EventTypePong, "", nil)

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendError(code, message string) {
	c.sendEvent(EventTypeError, "", ErrorPayload{Code: code, Message: message})
}

// sendEvent queues a reply from the read loop. Replies are dropped when the
// buffer is full.
func (c *Client) sendEvent(eventType, postID string, payload any) {
	evt := &Event{Type: eventType, PostID: postID}
	if payload != nil {
		var err error
		if evt, err = NewEvent(eventType, postID, payload); err != nil {
			return
		}
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- outbound{data: data}:
	default:
	}
}
