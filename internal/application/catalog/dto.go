package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ===================== Request DTOs =====================

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	ItemCode     string          `json:"item_code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	BrandID      uuid.UUID       `json:"brand_id"`
	GroupID      uuid.UUID       `json:"group_id"`
	PrimaryUom   string          `json:"primary_uom" binding:"required"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// UpdateItemRequest represents a request to update a catalog item
type UpdateItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	BrandID      uuid.UUID       `json:"brand_id"`
	GroupID      uuid.UUID       `json:"group_id"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// LinkBaseUnitRequest links a base unit to an item. The factor is the number
// of base units in one primary unit.
type LinkBaseUnitRequest struct {
	BaseUom string          `json:"base_uom" binding:"required"`
	Factor  decimal.Decimal `json:"factor" binding:"required"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// CreateProductGroupRequest represents a request to create a product group
type CreateProductGroupRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// RenameRequest renames a brand or product group
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListFilter represents common list filter options
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID                  uuid.UUID        `json:"id"`
	ItemCode            string           `json:"item_code"`
	Name                string           `json:"name"`
	BrandID             uuid.UUID        `json:"brand_id"`
	GroupID             uuid.UUID        `json:"group_id"`
	PrimaryUom          string           `json:"primary_uom"`
	BaseUom             *string          `json:"base_uom,omitempty"`
	Factor              *decimal.Decimal `json:"factor,omitempty"`
	AvgCostPrimary      decimal.Decimal  `json:"avg_cost_primary"`
	SellingPricePrimary decimal.Decimal  `json:"selling_price_primary"`
	AvgCostBase         *decimal.Decimal `json:"avg_cost_base,omitempty"`
	SellingPriceBase    *decimal.Decimal `json:"selling_price_base,omitempty"`
	ReorderLevel        decimal.Decimal  `json:"reorder_level"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// ProductGroupResponse represents a product group in API responses
type ProductGroupResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// ===================== Mappers =====================

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(item *catalog.Item) ItemResponse {
	response := ItemResponse{
		ID:                  item.ID,
		ItemCode:            item.ItemCode,
		Name:                item.Name,
		BrandID:             item.BrandID,
		GroupID:             item.GroupID,
		PrimaryUom:          item.PrimaryUom,
		BaseUom:             item.BaseUom,
		AvgCostPrimary:      item.AvgCostPrimary,
		SellingPricePrimary: item.SellingPricePrimary,
		AvgCostBase:         item.AvgCostBase,
		SellingPriceBase:    item.SellingPriceBase,
		ReorderLevel:        item.ReorderLevel,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
	if link, ok := item.BaseLink(); ok {
		factor := link.Factor
		response.Factor = &factor
	}
	return response
}

// ToItemResponses converts domain items to response DTOs
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

// ToBrandResponse converts a domain brand to a response DTO
func ToBrandResponse(brand *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:     brand.ID,
		Code:   brand.Code,
		Name:   brand.Name,
		Active: brand.Active,
	}
}

// ToProductGroupResponse converts a domain product group to a response DTO
func ToProductGroupResponse(group *catalog.ProductGroup) ProductGroupResponse {
	return ProductGroupResponse{
		ID:     group.ID,
		Code:   group.Code,
		Name:   group.Name,
		Active: group.Active,
	}
}
