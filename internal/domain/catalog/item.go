package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a catalog product. Pricing is held per primary unit; when a
// base unit is linked, base-unit rates are derived from the primary rates and
// the link factor and are never entered independently.
type Item struct {
	shared.BaseAggregateRoot
	ItemCode            string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                string `gorm:"type:varchar(200);not null"`
	BrandID             uuid.UUID
	GroupID             uuid.UUID
	PrimaryUom          string  `gorm:"type:varchar(20);not null"`
	BaseUom             *string `gorm:"type:varchar(20)"`
	AvgCostPrimary      decimal.Decimal
	SellingPricePrimary decimal.Decimal
	AvgCostBase         *decimal.Decimal
	SellingPriceBase    *decimal.Decimal
	ReorderLevel        decimal.Decimal
	UomLinks            []UnitLink `gorm:"foreignKey:ItemID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(itemCode, name string, brandID, groupID uuid.UUID, primaryUom string, avgCost, sellingPrice decimal.Decimal) (*Item, error) {
	if itemCode == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if len(itemCode) > 50 {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if primaryUom == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Primary unit cannot be empty")
	}
	if avgCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Average cost cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	item := &Item{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		ItemCode:            itemCode,
		Name:                name,
		BrandID:             brandID,
		GroupID:             groupID,
		PrimaryUom:          primaryUom,
		AvgCostPrimary:      avgCost,
		SellingPricePrimary: sellingPrice,
		ReorderLevel:        decimal.Zero,
		UomLinks:            make([]UnitLink, 0),
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's basic information
func (i *Item) Update(name string, brandID, groupID uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}

	i.Name = name
	i.BrandID = brandID
	i.GroupID = groupID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetPricing sets the primary-unit cost and price and rederives base rates
// when a base unit is linked
func (i *Item) SetPricing(avgCost, sellingPrice decimal.Decimal) error {
	if avgCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Average cost cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	i.AvgCostPrimary = avgCost
	i.SellingPricePrimary = sellingPrice
	i.rederiveBaseRates()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemRepricedEvent(i))

	return nil
}

// SetReorderLevel sets the reorder level
func (i *Item) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	i.ReorderLevel = level
	i.UpdatedAt = time.Now()

	return nil
}

// LinkBaseUnit links a base unit to the item's primary unit. An item carries
// at most one active primary-to-base link; linking again replaces it.
func (i *Item) LinkBaseUnit(baseUom string, factor decimal.Decimal) error {
	link, err := NewUnitLink(i.ID, baseUom, i.PrimaryUom, factor)
	if err != nil {
		return err
	}

	kept := make([]UnitLink, 0, len(i.UomLinks)+1)
	for _, l := range i.UomLinks {
		if l.ParentCode == i.PrimaryUom && l.Active {
			continue
		}
		kept = append(kept, l)
	}
	i.UomLinks = append(kept, *link)
	i.BaseUom = &baseUom
	i.rederiveBaseRates()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// UnlinkBaseUnit removes the base-unit link and clears derived base rates
func (i *Item) UnlinkBaseUnit() {
	kept := make([]UnitLink, 0, len(i.UomLinks))
	for _, l := range i.UomLinks {
		if l.ParentCode == i.PrimaryUom && l.Active {
			continue
		}
		kept = append(kept, l)
	}
	i.UomLinks = kept
	i.BaseUom = nil
	i.AvgCostBase = nil
	i.SellingPriceBase = nil
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// HasBaseUnit returns true if the item has an active base-unit link
func (i *Item) HasBaseUnit() bool {
	_, ok := i.BaseLink()
	return ok
}

// BaseLink returns the active primary-to-base unit link, if any
func (i *Item) BaseLink() (*UnitLink, bool) {
	if i.BaseUom == nil {
		return nil, false
	}
	for idx := range i.UomLinks {
		l := &i.UomLinks[idx]
		if l.Active && l.ParentCode == i.PrimaryUom && l.UnitCode == *i.BaseUom {
			return l, true
		}
	}
	return nil, false
}

// rederiveBaseRates recomputes base-unit rates from the primary rates and the
// active link factor. Without a valid link the previously stored base values
// are left untouched, per the derivation no-op policy.
func (i *Item) rederiveBaseRates() {
	link, ok := i.BaseLink()
	if !ok {
		return
	}

	rates, ok := DeriveBaseRates(&i.AvgCostPrimary, &i.SellingPricePrimary, link.Factor)
	if !ok {
		return
	}
	i.AvgCostBase = rates.Cost
	i.SellingPriceBase = rates.Price
}
