package shared

import "context"

// EventHandler consumes domain events.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants. Empty means
	// all events.
	EventTypes() []string
}

// EventPublisher is what application services hold to emit the events an
// aggregate recorded during an operation.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers. Explicit types override the
// handler's own EventTypes.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is both sides of the in-process event pipeline.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
