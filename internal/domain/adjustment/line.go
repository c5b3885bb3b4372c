package adjustment

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Line represents one row of an adjustment. Exactly one rate pair applies at
// a time, keyed by the parent adjustment's type family: selling prices for
// sales-type documents, average costs for goods-type documents. The pair that
// does not apply is nil, never zero.
type Line struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AdjustmentID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID              uuid.UUID `gorm:"type:uuid;not null"`
	ItemCode            string    `gorm:"type:varchar(50);not null"`
	ItemName            string    `gorm:"type:varchar(200);not null"`
	PrimaryQty          decimal.Decimal
	BaseQty             decimal.Decimal
	AvgCostPrimary      *decimal.Decimal
	AvgCostBase         *decimal.Decimal
	SellingPricePrimary *decimal.Decimal
	SellingPriceBase    *decimal.Decimal
	LineTotal           decimal.Decimal
	CreatedAt           time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "adjustment_lines"
}

// NewLineFromLedger seeds a new line from a stock ledger snapshot row. Only
// the rate pair matching the adjustment's type family is carried over; the
// other pair stays nil. Base quantity is only accepted when the snapshot
// carries base-unit rates.
func NewLineFromLedger(adjustmentID uuid.UUID, row StockLedgerRow, adjType Type, primaryQty, baseQty decimal.Decimal) (*Line, error) {
	if row.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LINE", "Ledger row has no item")
	}
	if primaryQty.IsNegative() || baseQty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE", "Quantities cannot be negative")
	}
	if baseQty.IsPositive() && !row.HasBaseUnit() {
		return nil, shared.NewDomainError("INVALID_LINE", "Item has no base unit; base quantity is not allowed")
	}

	now := time.Now()
	line := &Line{
		ID:           uuid.New(),
		AdjustmentID: adjustmentID,
		ItemID:       row.ItemID,
		ItemCode:     row.ItemCode,
		ItemName:     row.ItemName,
		PrimaryQty:   primaryQty,
		BaseQty:      baseQty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch {
	case adjType.IsSalesType():
		price := row.SellingPricePrimary
		line.SellingPricePrimary = &price
		line.SellingPriceBase = copyRate(row.SellingPriceBase)
	case adjType.IsGoodsType():
		cost := row.AvgCostPrimary
		line.AvgCostPrimary = &cost
		line.AvgCostBase = copyRate(row.AvgCostBase)
	}

	line.Recompute(adjType)

	return line, nil
}

// SetQuantities updates the line quantities
func (l *Line) SetQuantities(primaryQty, baseQty decimal.Decimal) error {
	if primaryQty.IsNegative() || baseQty.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Quantities cannot be negative")
	}

	l.PrimaryQty = primaryQty
	l.BaseQty = baseQty
	l.UpdatedAt = time.Now()

	return nil
}

// ComputeTotal computes the line's monetary value for the given adjustment
// type. Missing rates count as zero; an unset type yields zero.
func (l *Line) ComputeTotal(adjType Type) decimal.Decimal {
	switch {
	case adjType.IsSalesType():
		return rateOrZero(l.SellingPricePrimary).Mul(l.PrimaryQty).
			Add(rateOrZero(l.SellingPriceBase).Mul(l.BaseQty))
	case adjType.IsGoodsType():
		return rateOrZero(l.AvgCostPrimary).Mul(l.PrimaryQty).
			Add(rateOrZero(l.AvgCostBase).Mul(l.BaseQty))
	}
	return decimal.Zero
}

// Recompute refreshes the stored line total from current quantities and
// rates. It is idempotent for unchanged inputs.
func (l *Line) Recompute(adjType Type) {
	l.LineTotal = l.ComputeTotal(adjType)
}

// applyTypeFamily clears the rate pair that no longer applies after a type
// change, so stale cross-family values cannot contribute to totals.
func (l *Line) applyTypeFamily(adjType Type) {
	switch {
	case adjType.IsSalesType():
		l.AvgCostPrimary = nil
		l.AvgCostBase = nil
	case adjType.IsGoodsType():
		l.SellingPricePrimary = nil
		l.SellingPriceBase = nil
	}
	l.UpdatedAt = time.Now()
}

// primaryRate returns the primary-unit rate applicable for the given type
func (l *Line) primaryRate(adjType Type) *decimal.Decimal {
	if adjType.IsSalesType() {
		return l.SellingPricePrimary
	}
	if adjType.IsGoodsType() {
		return l.AvgCostPrimary
	}
	return nil
}

// baseRate returns the base-unit rate applicable for the given type
func (l *Line) baseRate(adjType Type) *decimal.Decimal {
	if adjType.IsSalesType() {
		return l.SellingPriceBase
	}
	if adjType.IsGoodsType() {
		return l.AvgCostBase
	}
	return nil
}

func rateOrZero(rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}

func copyRate(rate *decimal.Decimal) *decimal.Decimal {
	if rate == nil {
		return nil
	}
	v := *rate
	return &v
}
