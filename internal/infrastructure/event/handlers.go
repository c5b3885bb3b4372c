package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes an audit trail entry for every domain event.
// It subscribes as a wildcard handler.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle logs the event with its aggregate context
func (h *AuditLogHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice: the handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// LedgerInvalidator drops a cached ledger snapshot for a scope
type LedgerInvalidator interface {
	Invalidate(ctx context.Context, query adjustment.LedgerQuery) error
}

// LedgerCacheInvalidationHandler evicts the cached ledger snapshot for
// an adjustment's scope once the adjustment is approved, so the next
// candidate fetch sees post-approval stock.
type LedgerCacheInvalidationHandler struct {
	invalidator LedgerInvalidator
	logger      *zap.Logger
}

// NewLedgerCacheInvalidationHandler creates a new invalidation handler
func NewLedgerCacheInvalidationHandler(invalidator LedgerInvalidator, logger *zap.Logger) *LedgerCacheInvalidationHandler {
	return &LedgerCacheInvalidationHandler{invalidator: invalidator, logger: logger}
}

// Handle evicts the snapshot for the approved adjustment's branch and rep
func (h *LedgerCacheInvalidationHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	approved, ok := evt.(*adjustment.AdjustmentApprovedEvent)
	if !ok {
		return nil
	}

	query := adjustment.LedgerQuery{BranchID: approved.BranchID}
	if approved.SalesRepID != uuid.Nil {
		repID := approved.SalesRepID
		query.SalesRepID = &repID
	}

	if err := h.invalidator.Invalidate(ctx, query); err != nil {
		h.logger.Warn("ledger cache invalidation failed",
			zap.String("adjustment_no", approved.AdjustmentNo),
			zap.Error(err),
		)
	}
	return nil
}

// EventTypes subscribes this handler to approval events only
func (h *LedgerCacheInvalidationHandler) EventTypes() []string {
	return []string{adjustment.EventTypeAdjustmentApproved}
}
