package masterdata

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/masterdata"
)

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// CreateSalesRepRequest represents a request to create a sales representative
type CreateSalesRepRequest struct {
	Code     string    `json:"code" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
}

// RenameRequest renames a branch
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// SalesRepResponse represents a sales representative in API responses
type SalesRepResponse struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	BranchID uuid.UUID `json:"branch_id"`
	Active   bool      `json:"active"`
}

// ToBranchResponse converts a domain branch to a response DTO
func ToBranchResponse(branch *masterdata.Branch) BranchResponse {
	return BranchResponse{
		ID:     branch.ID,
		Code:   branch.Code,
		Name:   branch.Name,
		Active: branch.Active,
	}
}

// ToSalesRepResponse converts a domain sales rep to a response DTO
func ToSalesRepResponse(rep *masterdata.SalesRep) SalesRepResponse {
	return SalesRepResponse{
		ID:       rep.ID,
		Code:     rep.Code,
		Name:     rep.Name,
		BranchID: rep.BranchID,
		Active:   rep.Active,
	}
}
