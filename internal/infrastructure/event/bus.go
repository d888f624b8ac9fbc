package event

import (
	"context"
	"sync"

	"github.com/wholesale/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// wildcard subscribes a handler to every event type.
const wildcard = "*"

// InProcessBus dispatches domain events synchronously to subscribed
// handlers. Handler errors and panics are logged and do not fail the
// publishing operation; events here are notifications, not commands.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	log      *zap.Logger
}

func NewInProcessBus(log *zap.Logger) *InProcessBus {
	return &InProcessBus{
		handlers: make(map[string][]shared.EventHandler),
		log:      log.Named("events"),
	}
}

func (b *InProcessBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, h := range b.handlersFor(ev.EventType()) {
			b.dispatch(ctx, h, ev)
		}
	}
	return nil
}

// Subscribe registers a handler. With no explicit types the handler's own
// EventTypes() is used; an empty result there subscribes it to everything.
func (b *InProcessBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{wildcard}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

func (b *InProcessBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for t, hs := range b.handlers {
		kept := hs[:0]
		for _, h := range hs {
			if h != handler {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = kept
		}
	}
}

func (b *InProcessBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]shared.EventHandler, 0, len(b.handlers[eventType])+len(b.handlers[wildcard]))
	out = append(out, b.handlers[eventType]...)
	out = append(out, b.handlers[wildcard]...)
	return out
}

func (b *InProcessBus) dispatch(ctx context.Context, h shared.EventHandler, ev shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				zap.String("event_type", ev.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	if err := h.Handle(ctx, ev); err != nil {
		b.log.Error("event handler failed",
			zap.String("event_type", ev.EventType()),
			zap.String("event_id", ev.EventID().String()),
			zap.Error(err),
		)
	}
}

var _ shared.EventBus = (*InProcessBus)(nil)
