package event

import (
	"context"
	"log/slog"

	"github.com/q-lng/Christmas-Community/pkg/kafka"
	"github.com/q-lng/Christmas-Community/pkg/logger"
)

const source = "wishlist-service"

// Topics for domain events.
const (
	TopicPledges  = "wishlist.pledges"
	TopicProfiles = "wishlist.profiles"
)

// Event types.
const (
	TypePurchaseToggled       = "pledge.purchase_toggled"
	TypeProfileInfoUpdated    = "profile.info_updated"
	TypePasswordChanged       = "profile.password_changed"
	TypeProfilePictureUpdated = "profile.picture_updated"
)

// PurchaseToggledData is the payload of a purchase_toggled event.
type PurchaseToggledData struct {
	Owner     string `json:"owner"`
	ItemID    string `json:"item_id"`
	PledgedBy string `json:"pledged_by"`
	Purchased bool   `json:"purchased"`
}

// ProfileUpdatedData is the payload of the profile update events. Fields
// lists what changed, never the values.
type ProfileUpdatedData struct {
	UserID string   `json:"user_id"`
	Fields []string `json:"fields,omitempty"`
}

// Publisher publishes domain events. Implementations must not block request
// handling on broker availability beyond the context deadline.
type Publisher interface {
	PurchaseToggled(ctx context.Context, data PurchaseToggledData)
	ProfileUpdated(ctx context.Context, eventType string, data ProfileUpdatedData)
}

// KafkaPublisher publishes domain events to Kafka. Publish failures are
// logged and swallowed: events are informative, not part of the write path.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed domain event publisher.
func NewKafkaPublisher(producer *kafka.Producer, log *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: log}
}

// PurchaseToggled publishes a pledge.purchase_toggled event keyed by the
// wishlist owner.
func (p *KafkaPublisher) PurchaseToggled(ctx context.Context, data PurchaseToggledData) {
	p.publish(ctx, TopicPledges, TypePurchaseToggled, data.Owner, "wishlist", data)
}

// ProfileUpdated publishes one of the profile.* events keyed by the user id.
func (p *KafkaPublisher) ProfileUpdated(ctx context.Context, eventType string, data ProfileUpdatedData) {
	p.publish(ctx, TopicProfiles, eventType, data.UserID, "user", data)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	// Failures are logged by the producer; events are not retried.
	_ = p.producer.Publish(ctx, topic, evt)
}

// NopPublisher discards all events. Used in tests and when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PurchaseToggled(context.Context, PurchaseToggledData) {}
func (NopPublisher) ProfileUpdated(context.Context, string, ProfileUpdatedData) {}
