package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	masterdataapp "github.com/retailops/backoffice/internal/application/masterdata"
)

// MasterDataHandler handles branch and sales representative API endpoints
type MasterDataHandler struct {
	BaseHandler
	masterDataService *masterdataapp.MasterDataService
}

// NewMasterDataHandler creates a new MasterDataHandler
func NewMasterDataHandler(masterDataService *masterdataapp.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{
		masterDataService: masterDataService,
	}
}

// RegisterRoutes registers master data routes
func (h *MasterDataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.ListBranches)
		branches.POST("", h.CreateBranch)
		branches.PUT("/:id", h.RenameBranch)
	}

	reps := rg.Group("/sales-reps")
	{
		reps.GET("", h.ListSalesReps)
		reps.POST("", h.CreateSalesRep)
	}
}

// ListBranches returns all branches
func (h *MasterDataHandler) ListBranches(c *gin.Context) {
	result, err := h.masterDataService.ListBranches(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateBranch creates a branch
func (h *MasterDataHandler) CreateBranch(c *gin.Context) {
	var req masterdataapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.masterDataService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RenameBranch renames a branch
func (h *MasterDataHandler) RenameBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	var req masterdataapp.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.masterDataService.RenameBranch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListSalesReps returns sales representatives, optionally for one branch
func (h *MasterDataHandler) ListSalesReps(c *gin.Context) {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		branchID = &id
	}

	result, err := h.masterDataService.ListSalesReps(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateSalesRep creates a sales representative
func (h *MasterDataHandler) CreateSalesRep(c *gin.Context) {
	var req masterdataapp.CreateSalesRepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.masterDataService.CreateSalesRep(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
