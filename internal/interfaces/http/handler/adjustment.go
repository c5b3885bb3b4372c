package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	adjustmentapp "github.com/retailops/backoffice/internal/application/adjustment"
)

// AdjustmentHandler handles stock adjustment API endpoints
type AdjustmentHandler struct {
	BaseHandler
	adjustmentService *adjustmentapp.AdjustmentService
}

// NewAdjustmentHandler creates a new AdjustmentHandler
func NewAdjustmentHandler(adjustmentService *adjustmentapp.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{
		adjustmentService: adjustmentService,
	}
}

// RegisterRoutes registers adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adjustments := rg.Group("/adjustments")
	{
		adjustments.GET("", h.List)
		adjustments.POST("", h.Create)
		adjustments.GET("/ledger-candidates", h.LedgerCandidates)
		adjustments.GET("/:id", h.GetByID)
		adjustments.PUT("/:id", h.Update)
		adjustments.POST("/:id/approve", h.Approve)
		adjustments.DELETE("/:id", h.Delete)
	}
}

// List returns adjustments visible to the actor, paginated
func (h *AdjustmentHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var filter adjustmentapp.ListAdjustmentsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustmentService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single adjustment with its lines
func (h *AdjustmentHandler) GetByID(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	result, err := h.adjustmentService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// LedgerCandidates returns the adjustable items for the selected scope
func (h *AdjustmentHandler) LedgerCandidates(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req adjustmentapp.LedgerCandidatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustmentService.LoadLedgerCandidates(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create submits a new adjustment
func (h *AdjustmentHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req adjustmentapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustmentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update replaces a pending adjustment's content
func (h *AdjustmentHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	var req adjustmentapp.UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustmentService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve moves a pending adjustment to approved
func (h *AdjustmentHandler) Approve(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	result, err := h.adjustmentService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a pending adjustment
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	if err := h.adjustmentService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
