package adjustment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedgerRow is a read-only valuation snapshot for one item within one
// (branch[, sales rep]) scope. The engine never mutates it; it is only read
// to seed adjustment lines. Base rates are nil when the item carries no
// base-unit link.
type StockLedgerRow struct {
	ItemID              uuid.UUID        `json:"item_id"`
	ItemCode            string           `json:"item_code"`
	ItemName            string           `json:"item_name"`
	BranchID            uuid.UUID        `json:"branch_id"`
	SalesRepID          *uuid.UUID       `json:"sales_rep_id,omitempty"`
	AvgCostPrimary      decimal.Decimal  `json:"avg_cost_primary"`
	AvgCostBase         *decimal.Decimal `json:"avg_cost_base"`
	SellingPricePrimary decimal.Decimal  `json:"selling_price_primary"`
	SellingPriceBase    *decimal.Decimal `json:"selling_price_base"`
}

// HasBaseUnit returns true when the snapshot carries base-unit rates
func (r *StockLedgerRow) HasBaseUnit() bool {
	return r.AvgCostBase != nil || r.SellingPriceBase != nil
}

// LedgerQuery identifies a fully resolved ledger scope
type LedgerQuery struct {
	BranchID   uuid.UUID
	SalesRepID *uuid.UUID
}

// LedgerGateway supplies the sellable/adjustable item snapshot for a scope.
// Implementations must return the rows as-is; valuation is computed upstream.
type LedgerGateway interface {
	FetchLedger(ctx context.Context, query LedgerQuery) ([]StockLedgerRow, error)
}
