// Package events provides the event bus infrastructure the backend modules
// use to talk to each other without direct imports: a closed work order
// reaches the notification and leaderboard modules as an event, not a call.
// This is part of the platform layer and contains no business logic.
package events

import (
	"context"
	"time"
)

// Event is the base interface all domain events must implement.
type Event interface {
	// EventName returns a unique identifier for the event type,
	// e.g. "workorders.closed".
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent provides the common timestamp field for all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent creates a new base event stamped with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts an ordinary function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus is the interface for publishing and subscribing to domain events.
type Bus interface {
	// Publish sends an event to all registered handlers for that event
	// type. Handlers run asynchronously; use this for side effects the
	// caller need not wait on, such as sending a notification.
	Publish(ctx context.Context, event Event)

	// PublishSync sends an event and waits for all handlers to complete,
	// returning the first handler error. Use this when the caller must
	// know the outcome, such as seeding a freshly provisioned tenant.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type. The
	// eventName must match the value returned by Event.EventName().
	Subscribe(eventName string, handler Handler)
}
