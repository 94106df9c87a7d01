package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact staged by an aggregate and published only after
// the aggregate has been persisted.
type Event interface {
	EventID() string
	AggregateID() string
	EventType() string
	OccurredAt() time.Time
	Payload() map[string]any
}

// Publisher delivers committed domain events. Fire-and-forget from the
// domain's perspective; delivery guarantees live behind the implementation.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	PublishAll(ctx context.Context, events []Event) error
}

// BaseEvent carries the envelope fields shared by every domain event.
type BaseEvent struct {
	eventID     string
	aggregateID string
	eventType   string
	occurredAt  time.Time
}

func NewBaseEvent(aggregateID, eventType string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.NewString(),
		aggregateID: aggregateID,
		eventType:   eventType,
		occurredAt:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
