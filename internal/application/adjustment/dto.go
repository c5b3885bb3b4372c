package adjustment

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/shopspring/decimal"
)

// ===================== Request DTOs =====================

// LineRequest is one requested adjustment line. Rates are never accepted from
// the caller; they are seeded from the stock ledger snapshot server-side.
type LineRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	PrimaryQty decimal.Decimal `json:"primary_qty"`
	BaseQty    decimal.Decimal `json:"base_qty"`
}

// AdjustmentPayload carries the writable fields shared by the create and
// update requests. TotalValue, when supplied, is advisory only and recomputed
// server-side.
type AdjustmentPayload struct {
	BranchID       uuid.UUID        `json:"branch_id"`
	SalesRepID     uuid.UUID        `json:"sales_rep_id"`
	Type           string           `json:"type"`
	AdjustmentDate *time.Time       `json:"adjustment_date"`
	Remarks        string           `json:"remarks"`
	Lines          []LineRequest    `json:"lines"`
	TotalValue     *decimal.Decimal `json:"total_value"`
}

// CreateAdjustmentRequest represents a request to create a stock adjustment.
type CreateAdjustmentRequest struct {
	AdjustmentPayload
}

// UpdateAdjustmentRequest represents a full-document edit of a pending
// adjustment. The line set replaces the existing one.
type UpdateAdjustmentRequest struct {
	AdjustmentPayload
}

// ListAdjustmentsFilter represents filter options for the adjustment list
type ListAdjustmentsFilter struct {
	BranchID   *uuid.UUID `form:"branch_id"`
	SalesRepID *uuid.UUID `form:"sales_rep_id"`
	Type       string     `form:"type"`
	Status     string     `form:"status"`
	DateFrom   *time.Time `form:"date_from"`
	DateTo     *time.Time `form:"date_to"`
	Search     string     `form:"search"`
	Page       int        `form:"page" binding:"min=0"`
	PageSize   int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LedgerCandidatesRequest identifies the scope to load adjustable items for
type LedgerCandidatesRequest struct {
	BranchID   uuid.UUID  `form:"branch_id" binding:"required"`
	SalesRepID *uuid.UUID `form:"sales_rep_id"`
}

// ===================== Response DTOs =====================

// LineResponse represents an adjustment line in API responses
type LineResponse struct {
	ID                  uuid.UUID        `json:"id"`
	ItemID              uuid.UUID        `json:"item_id"`
	ItemCode            string           `json:"item_code"`
	ItemName            string           `json:"item_name"`
	PrimaryQty          decimal.Decimal  `json:"primary_qty"`
	BaseQty             decimal.Decimal  `json:"base_qty"`
	AvgCostPrimary      *decimal.Decimal `json:"avg_cost_primary,omitempty"`
	AvgCostBase         *decimal.Decimal `json:"avg_cost_base,omitempty"`
	SellingPricePrimary *decimal.Decimal `json:"selling_price_primary,omitempty"`
	SellingPriceBase    *decimal.Decimal `json:"selling_price_base,omitempty"`
	LineTotal           decimal.Decimal  `json:"line_total"`
}

// AdjustmentResponse represents a stock adjustment in API responses
type AdjustmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	AdjustmentNo   string          `json:"adjustment_no"`
	BranchID       uuid.UUID       `json:"branch_id"`
	SalesRepID     uuid.UUID       `json:"sales_rep_id"`
	Type           string          `json:"type"`
	AdjustmentDate time.Time       `json:"adjustment_date"`
	Remarks        string          `json:"remarks"`
	Lines          []LineResponse  `json:"lines"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Status         string          `json:"status"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	ApprovedByID   *uuid.UUID      `json:"approved_by_id,omitempty"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AdjustmentListResponse is the slim shape used in listings
type AdjustmentListResponse struct {
	ID             uuid.UUID       `json:"id"`
	AdjustmentNo   string          `json:"adjustment_no"`
	BranchID       uuid.UUID       `json:"branch_id"`
	SalesRepID     uuid.UUID       `json:"sales_rep_id"`
	Type           string          `json:"type"`
	AdjustmentDate time.Time       `json:"adjustment_date"`
	LineCount      int             `json:"line_count"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Status         string          `json:"status"`
}

// LedgerCandidateResponse is one adjustable item within the resolved scope
type LedgerCandidateResponse struct {
	ItemID              uuid.UUID        `json:"item_id"`
	ItemCode            string           `json:"item_code"`
	ItemName            string           `json:"item_name"`
	HasBaseUnit         bool             `json:"has_base_unit"`
	AvgCostPrimary      decimal.Decimal  `json:"avg_cost_primary"`
	AvgCostBase         *decimal.Decimal `json:"avg_cost_base,omitempty"`
	SellingPricePrimary decimal.Decimal  `json:"selling_price_primary"`
	SellingPriceBase    *decimal.Decimal `json:"selling_price_base,omitempty"`
}

// ===================== Mappers =====================

// ToLineResponse converts a domain line to a response DTO
func ToLineResponse(line adjustment.Line) LineResponse {
	return LineResponse{
		ID:                  line.ID,
		ItemID:              line.ItemID,
		ItemCode:            line.ItemCode,
		ItemName:            line.ItemName,
		PrimaryQty:          line.PrimaryQty,
		BaseQty:             line.BaseQty,
		AvgCostPrimary:      line.AvgCostPrimary,
		AvgCostBase:         line.AvgCostBase,
		SellingPricePrimary: line.SellingPricePrimary,
		SellingPriceBase:    line.SellingPriceBase,
		LineTotal:           line.LineTotal,
	}
}

// ToAdjustmentResponse converts a domain adjustment to a response DTO
func ToAdjustmentResponse(adj *adjustment.Adjustment) AdjustmentResponse {
	lines := make([]LineResponse, len(adj.Lines))
	for i, line := range adj.Lines {
		lines[i] = ToLineResponse(line)
	}

	return AdjustmentResponse{
		ID:             adj.ID,
		AdjustmentNo:   adj.AdjustmentNo,
		BranchID:       adj.BranchID,
		SalesRepID:     adj.SalesRepID,
		Type:           adj.Type.String(),
		AdjustmentDate: adj.AdjustmentDate,
		Remarks:        adj.Remarks,
		Lines:          lines,
		TotalValue:     adj.TotalValue,
		Status:         adj.Status.String(),
		ApprovedAt:     adj.ApprovedAt,
		ApprovedByID:   adj.ApprovedByID,
		Version:        adj.GetVersion(),
		CreatedAt:      adj.CreatedAt,
		UpdatedAt:      adj.UpdatedAt,
	}
}

// ToAdjustmentListResponses converts adjustments to list DTOs
func ToAdjustmentListResponses(adjs []adjustment.Adjustment) []AdjustmentListResponse {
	responses := make([]AdjustmentListResponse, len(adjs))
	for i := range adjs {
		adj := &adjs[i]
		responses[i] = AdjustmentListResponse{
			ID:             adj.ID,
			AdjustmentNo:   adj.AdjustmentNo,
			BranchID:       adj.BranchID,
			SalesRepID:     adj.SalesRepID,
			Type:           adj.Type.String(),
			AdjustmentDate: adj.AdjustmentDate,
			LineCount:      adj.LineCount(),
			TotalValue:     adj.TotalValue,
			Status:         adj.Status.String(),
		}
	}
	return responses
}

// ToLedgerCandidateResponses converts ledger rows to candidate DTOs
func ToLedgerCandidateResponses(rows []adjustment.StockLedgerRow) []LedgerCandidateResponse {
	responses := make([]LedgerCandidateResponse, len(rows))
	for i, row := range rows {
		responses[i] = LedgerCandidateResponse{
			ItemID:              row.ItemID,
			ItemCode:            row.ItemCode,
			ItemName:            row.ItemName,
			HasBaseUnit:         row.HasBaseUnit(),
			AvgCostPrimary:      row.AvgCostPrimary,
			AvgCostBase:         row.AvgCostBase,
			SellingPricePrimary: row.SellingPricePrimary,
			SellingPriceBase:    row.SellingPriceBase,
		}
	}
	return responses
}
