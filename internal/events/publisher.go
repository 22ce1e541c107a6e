package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"treelink-backend/internal/models"
)

// EventPublisher announces profile mutations to downstream consumers.
// Publishing is fire-and-forget: failures are logged and never surfaced to
// the client that caused the mutation.
type EventPublisher interface {
	PublishLinkAdded(email string, item models.LinkItem) error
	PublishLinkRemoved(email, url string) error
	PublishHandleChanged(email, newHandle string) error
	PublishImageUpdated(email string) error
}

type NatsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNatsPublisher(natsURL string, logger *zap.Logger) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc, logger: logger}, nil
}

type LinkAddedEvent struct {
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	AddedAt   time.Time `json:"added_at"`
}

type LinkRemovedEvent struct {
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	URL       string    `json:"url"`
	RemovedAt time.Time `json:"removed_at"`
}

type HandleChangedEvent struct {
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	NewHandle string    `json:"new_handle"`
	ChangedAt time.Time `json:"changed_at"`
}

type ImageUpdatedEvent struct {
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *NatsPublisher) PublishLinkAdded(email string, item models.LinkItem) error {
	return p.publish("treelink.link.added", LinkAddedEvent{
		EventType: "link.added",
		Email:     email,
		Title:     item.Title,
		URL:       item.URL,
		AddedAt:   time.Now(),
	})
}

func (p *NatsPublisher) PublishLinkRemoved(email, url string) error {
	return p.publish("treelink.link.removed", LinkRemovedEvent{
		EventType: "link.removed",
		Email:     email,
		URL:       url,
		RemovedAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishHandleChanged(email, newHandle string) error {
	return p.publish("treelink.handle.changed", HandleChangedEvent{
		EventType: "handle.changed",
		Email:     email,
		NewHandle: newHandle,
		ChangedAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishImageUpdated(email string) error {
	return p.publish("treelink.image.updated", ImageUpdatedEvent{
		EventType: "image.updated",
		Email:     email,
		UpdatedAt: time.Now(),
	})
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		p.logger.Error("marshal event", zap.String("subject", subject), zap.Error(err))
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		p.logger.Error("publish event", zap.String("subject", subject), zap.Error(err))
		return err
	}

	p.logger.Debug("published event", zap.String("subject", subject))

	return nil
}

// NoopPublisher is used when NATS_URL is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() EventPublisher { return NoopPublisher{} }

func (NoopPublisher) PublishLinkAdded(string, models.LinkItem) error { return nil }
func (NoopPublisher) PublishLinkRemoved(string, string) error        { return nil }
func (NoopPublisher) PublishHandleChanged(string, string) error      { return nil }
func (NoopPublisher) PublishImageUpdated(string) error               { return nil }
