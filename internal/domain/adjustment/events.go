package adjustment

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeAdjustment = "StockAdjustment"

// Event type constants
const (
	EventTypeAdjustmentCreated  = "StockAdjustmentCreated"
	EventTypeAdjustmentUpdated  = "StockAdjustmentUpdated"
	EventTypeAdjustmentApproved = "StockAdjustmentApproved"
	EventTypeAdjustmentDeleted  = "StockAdjustmentDeleted"
)

// AdjustmentCreatedEvent is raised when a new stock adjustment is created
type AdjustmentCreatedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID       `json:"adjustment_id"`
	AdjustmentNo string          `json:"adjustment_no"`
	BranchID     uuid.UUID       `json:"branch_id"`
	SalesRepID   uuid.UUID       `json:"sales_rep_id"`
	Type         Type            `json:"type"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// NewAdjustmentCreatedEvent creates a new AdjustmentCreatedEvent
func NewAdjustmentCreatedEvent(adj *Adjustment) *AdjustmentCreatedEvent {
	return &AdjustmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentCreated, AggregateTypeAdjustment, adj.ID),
		AdjustmentID:    adj.ID,
		AdjustmentNo:    adj.AdjustmentNo,
		BranchID:        adj.BranchID,
		SalesRepID:      adj.SalesRepID,
		Type:            adj.Type,
		TotalValue:      adj.TotalValue,
	}
}

// EventType returns the event type name
func (e *AdjustmentCreatedEvent) EventType() string {
	return EventTypeAdjustmentCreated
}

// AdjustmentUpdatedEvent is raised when a pending adjustment is modified
type AdjustmentUpdatedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID       `json:"adjustment_id"`
	AdjustmentNo string          `json:"adjustment_no"`
	TotalValue   decimal.Decimal `json:"total_value"`
	LineCount    int             `json:"line_count"`
}

// NewAdjustmentUpdatedEvent creates a new AdjustmentUpdatedEvent
func NewAdjustmentUpdatedEvent(adj *Adjustment) *AdjustmentUpdatedEvent {
	return &AdjustmentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentUpdated, AggregateTypeAdjustment, adj.ID),
		AdjustmentID:    adj.ID,
		AdjustmentNo:    adj.AdjustmentNo,
		TotalValue:      adj.TotalValue,
		LineCount:       len(adj.Lines),
	}
}

// EventType returns the event type name
func (e *AdjustmentUpdatedEvent) EventType() string {
	return EventTypeAdjustmentUpdated
}

// AdjustmentApprovedEvent is raised when an adjustment is approved.
// Downstream stock projections react to this event.
type AdjustmentApprovedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID       `json:"adjustment_id"`
	AdjustmentNo string          `json:"adjustment_no"`
	BranchID     uuid.UUID       `json:"branch_id"`
	SalesRepID   uuid.UUID       `json:"sales_rep_id"`
	Type         Type            `json:"type"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ApprovedByID uuid.UUID       `json:"approved_by_id"`
}

// NewAdjustmentApprovedEvent creates a new AdjustmentApprovedEvent
func NewAdjustmentApprovedEvent(adj *Adjustment, approverID uuid.UUID) *AdjustmentApprovedEvent {
	return &AdjustmentApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentApproved, AggregateTypeAdjustment, adj.ID),
		AdjustmentID:    adj.ID,
		AdjustmentNo:    adj.AdjustmentNo,
		BranchID:        adj.BranchID,
		SalesRepID:      adj.SalesRepID,
		Type:            adj.Type,
		TotalValue:      adj.TotalValue,
		ApprovedByID:    approverID,
	}
}

// EventType returns the event type name
func (e *AdjustmentApprovedEvent) EventType() string {
	return EventTypeAdjustmentApproved
}

// AdjustmentDeletedEvent is raised when a pending adjustment is removed
type AdjustmentDeletedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID `json:"adjustment_id"`
	AdjustmentNo string    `json:"adjustment_no"`
}

// NewAdjustmentDeletedEvent creates a new AdjustmentDeletedEvent
func NewAdjustmentDeletedEvent(adj *Adjustment) *AdjustmentDeletedEvent {
	return &AdjustmentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentDeleted, AggregateTypeAdjustment, adj.ID),
		AdjustmentID:    adj.ID,
		AdjustmentNo:    adj.AdjustmentNo,
	}
}

// EventType returns the event type name
func (e *AdjustmentDeletedEvent) EventType() string {
	return EventTypeAdjustmentDeleted
}
