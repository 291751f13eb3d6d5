package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/metrics"
)

// Conn is the publishing side of a broker connection.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher turns service notifications into broker events. Publishing is
// fire-and-forget: failures are logged and counted, never returned.
type Publisher struct {
	conn   Conn
	logger *slog.Logger
	now    func() time.Time
}

func NewPublisher(conn Conn, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger, now: time.Now}
}

func (p *Publisher) NotifyPostCreated(post *domain.Post) {
	p.publish(SubjectPostCreated, PostCreatedEvent{
		EventID:   uuid.NewString(),
		PostID:    post.ID,
		Author:    post.Author,
		Tags:      post.Tags,
		Timestamp: p.now().UTC(),
	})
}

func (p *Publisher) NotifyPostReacted(post *domain.Post, userID int64, reaction domain.ReactionType) {
	p.publish(SubjectPostReacted, PostReactedEvent{
		EventID:       uuid.NewString(),
		PostID:        post.ID,
		UserID:        userID,
		Reaction:      string(reaction),
		LikesCount:    post.LikesCount,
		DislikesCount: post.DislikesCount,
		Timestamp:     p.now().UTC(),
	})
}

func (p *Publisher) NotifyFriendAdded(owner, target *domain.User, addedAt time.Time) {
	p.publish(SubjectFriendAdded, friendEvent(owner, target, addedAt))
}

func (p *Publisher) NotifyFriendRemoved(owner, target *domain.User) {
	p.publish(SubjectFriendRemoved, friendEvent(owner, target, p.now()))
}

func friendEvent(owner, target *domain.User, at time.Time) FriendEvent {
	return FriendEvent{
		EventID:   uuid.NewString(),
		Owner:     owner.Login,
		Target:    target.Login,
		Timestamp: at.UTC(),
	}
}

func (p *Publisher) publish(subject string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(subject, "error").Inc()
		p.logger.Error("marshal event", "subject", subject, "error", err)
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues(subject, "error").Inc()
		p.logger.Error("publish event", "subject", subject, "error", err)
		return
	}

	metrics.EventsPublished.WithLabelValues(subject, "ok").Inc()
	p.logger.Debug("published event", "subject", subject)
}
