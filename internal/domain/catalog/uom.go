package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitLink links a base unit to its parent (primary) unit for an item.
// The factor expresses how many base units make up one parent unit
// (e.g., 1 BOX = 12 PCS has UnitCode "PCS", ParentCode "BOX", Factor 12).
type UnitLink struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_item_unit_link,priority:1"`
	UnitCode   string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_item_unit_link,priority:2"`
	ParentCode string          `gorm:"type:varchar(20);not null"`
	Factor     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UnitLink) TableName() string {
	return "item_unit_links"
}

// NewUnitLink creates a new unit link
func NewUnitLink(itemID uuid.UUID, unitCode, parentCode string, factor decimal.Decimal) (*UnitLink, error) {
	if unitCode == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Unit code cannot be empty")
	}
	if parentCode == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Parent unit code cannot be empty")
	}
	if unitCode == parentCode {
		return nil, shared.NewDomainError("INVALID_UNIT_LINK", "Unit cannot be linked to itself")
	}
	if !factor.IsPositive() {
		return nil, shared.NewDomainError("INVALID_FACTOR", "Conversion factor must be positive")
	}

	now := time.Now()
	return &UnitLink{
		ID:         uuid.New(),
		ItemID:     itemID,
		UnitCode:   unitCode,
		ParentCode: parentCode,
		Factor:     factor,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ConvertToBase converts a quantity in the parent unit to the base unit
// Formula: baseQuantity = quantity * factor
func (l *UnitLink) ConvertToBase(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(l.Factor).Round(4)
}

// ConvertFromBase converts a quantity in the base unit to the parent unit
func (l *UnitLink) ConvertFromBase(baseQuantity decimal.Decimal) decimal.Decimal {
	if l.Factor.IsZero() {
		return decimal.Zero
	}
	return baseQuantity.Div(l.Factor).Round(4)
}

// BaseRates holds per-base-unit rates derived from primary-unit rates.
// A nil field means the corresponding primary rate was absent and no base
// value should be written.
type BaseRates struct {
	Cost  *decimal.Decimal
	Price *decimal.Decimal
}

// DeriveBaseRates derives base-unit cost and price from primary-unit rates.
// Base values are computed only for inputs that are present; absent inputs
// leave the corresponding field nil. When the factor is zero or negative the
// second return value is false and callers must leave previously entered base
// values untouched. This is policy, not failure: derivation never errors.
func DeriveBaseRates(primaryCost, primaryPrice *decimal.Decimal, factor decimal.Decimal) (BaseRates, bool) {
	if !factor.IsPositive() {
		return BaseRates{}, false
	}

	var rates BaseRates
	if primaryCost != nil {
		c := primaryCost.Div(factor)
		rates.Cost = &c
	}
	if primaryPrice != nil {
		p := primaryPrice.Div(factor)
		rates.Price = &p
	}
	return rates, true
}
