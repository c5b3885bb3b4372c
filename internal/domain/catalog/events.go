package catalog

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeItem = "Item"

// Event type constants
const (
	EventTypeItemCreated  = "ItemCreated"
	EventTypeItemRepriced = "ItemRepriced"
)

// ItemCreatedEvent is raised when a new catalog item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID `json:"item_id"`
	ItemCode string    `json:"item_code"`
	Name     string    `json:"name"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID),
		ItemID:          item.ID,
		ItemCode:        item.ItemCode,
		Name:            item.Name,
	}
}

// EventType returns the event type name
func (e *ItemCreatedEvent) EventType() string {
	return EventTypeItemCreated
}

// ItemRepricedEvent is raised when an item's primary rates change
type ItemRepricedEvent struct {
	shared.BaseDomainEvent
	ItemID              uuid.UUID       `json:"item_id"`
	ItemCode            string          `json:"item_code"`
	AvgCostPrimary      decimal.Decimal `json:"avg_cost_primary"`
	SellingPricePrimary decimal.Decimal `json:"selling_price_primary"`
}

// NewItemRepricedEvent creates a new ItemRepricedEvent
func NewItemRepricedEvent(item *Item) *ItemRepricedEvent {
	return &ItemRepricedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeItemRepriced, AggregateTypeItem, item.ID),
		ItemID:              item.ID,
		ItemCode:            item.ItemCode,
		AvgCostPrimary:      item.AvgCostPrimary,
		SellingPricePrimary: item.SellingPricePrimary,
	}
}

// EventType returns the event type name
func (e *ItemRepricedEvent) EventType() string {
	return EventTypeItemRepriced
}
