package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wholesale/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Order", uuid.New()),
	}
}

type recordingHandler struct {
	types    []string
	received []string
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, ev.EventType())
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func TestBusDeliversToMatchingHandlers(t *testing.T) {
	bus := NewInProcessBus(zap.NewNop())

	submitted := &recordingHandler{types: []string{"order.submitted"}}
	all := &recordingHandler{}
	bus.Subscribe(submitted)
	bus.Subscribe(all)

	err := bus.Publish(context.Background(),
		newTestEvent("order.submitted"),
		newTestEvent("order.approved"),
	)
	assert.NoError(t, err)

	assert.Equal(t, []string{"order.submitted"}, submitted.received)
	assert.Equal(t, []string{"order.submitted", "order.approved"}, all.received)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewInProcessBus(zap.NewNop())

	h := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	assert.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
	assert.Empty(t, h.received)
}

func TestBusIsolatesFailingHandlers(t *testing.T) {
	bus := NewInProcessBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"order.created"}, err: errors.New("boom")}
	panicking := &recordingHandler{types: []string{"order.created"}, panics: true}
	healthy := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("order.created"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"order.created"}, healthy.received)
}

func TestAuditLogHandlerReceivesEverything(t *testing.T) {
	h := NewAuditLogHandler(zap.NewNop())
	assert.Empty(t, h.EventTypes())
	assert.NoError(t, h.Handle(context.Background(), newTestEvent("retailer.synced")))
}
