package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockLedgerEntry is the persistence model for one row of the stock ledger
// snapshot. Rows with a NULL sales_rep_id are branch-level stock; rows with a
// sales rep belong to that rep's van stock. Base rates are NULL for items
// without a base-unit link.
type StockLedgerEntry struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ItemID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemCode            string     `gorm:"type:varchar(50);not null"`
	ItemName            string     `gorm:"type:varchar(200);not null"`
	BranchID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	SalesRepID          *uuid.UUID `gorm:"type:uuid;index"`
	AvgCostPrimary      decimal.Decimal
	AvgCostBase         *decimal.Decimal
	SellingPricePrimary decimal.Decimal
	SellingPriceBase    *decimal.Decimal
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (StockLedgerEntry) TableName() string {
	return "stock_ledger"
}

// ToDomain converts the persistence model to a domain ledger row
func (e *StockLedgerEntry) ToDomain() adjustment.StockLedgerRow {
	return adjustment.StockLedgerRow{
		ItemID:              e.ItemID,
		ItemCode:            e.ItemCode,
		ItemName:            e.ItemName,
		BranchID:            e.BranchID,
		SalesRepID:          e.SalesRepID,
		AvgCostPrimary:      e.AvgCostPrimary,
		AvgCostBase:         e.AvgCostBase,
		SellingPricePrimary: e.SellingPricePrimary,
		SellingPriceBase:    e.SellingPriceBase,
	}
}

// GormLedgerGateway implements LedgerGateway against the stock ledger table
type GormLedgerGateway struct {
	db *gorm.DB
}

// NewGormLedgerGateway creates a new GormLedgerGateway
func NewGormLedgerGateway(db *gorm.DB) *GormLedgerGateway {
	return &GormLedgerGateway{db: db}
}

// FetchLedger returns the valuation snapshot for the given scope. A query
// with a sales rep sees the rep's van stock plus the branch-level stock; a
// query without one sees only branch-level stock.
func (g *GormLedgerGateway) FetchLedger(ctx context.Context, query adjustment.LedgerQuery) ([]adjustment.StockLedgerRow, error) {
	q := g.db.WithContext(ctx).
		Model(&StockLedgerEntry{}).
		Where("branch_id = ?", query.BranchID)

	if query.SalesRepID != nil {
		q = q.Where("sales_rep_id = ? OR sales_rep_id IS NULL", *query.SalesRepID)
	} else {
		q = q.Where("sales_rep_id IS NULL")
	}

	var entries []StockLedgerEntry
	if err := q.Order("item_code ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	rows := make([]adjustment.StockLedgerRow, len(entries))
	for i := range entries {
		rows[i] = entries[i].ToDomain()
	}
	return rows, nil
}
