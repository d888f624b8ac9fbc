package event

import (
	"context"

	"github.com/wholesale/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes every published domain event to the log. It is the
// default subscriber, giving operators a trail of order and directory
// lifecycle changes without a separate audit store.
type AuditLogHandler struct {
	log *zap.Logger
}

func NewAuditLogHandler(log *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{log: log.Named("audit")}
}

func (h *AuditLogHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.log.Info("domain event",
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.String("aggregate_type", ev.AggregateType()),
		zap.String("aggregate_id", ev.AggregateID().String()),
		zap.Time("occurred_at", ev.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil: the audit handler receives all events.
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
