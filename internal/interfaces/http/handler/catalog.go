package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/retailops/backoffice/internal/application/catalog"
	csvimport "github.com/retailops/backoffice/internal/infrastructure/import"
	"github.com/retailops/backoffice/internal/interfaces/http/dto"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
)

// CatalogHandler handles item, brand and product group API endpoints
type CatalogHandler struct {
	BaseHandler
	itemService     *catalogapp.ItemService
	taxonomyService *catalogapp.TaxonomyService
	importService   *catalogapp.ImportService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(itemService *catalogapp.ItemService, taxonomyService *catalogapp.TaxonomyService, importService *catalogapp.ImportService) *CatalogHandler {
	return &CatalogHandler{
		itemService:     itemService,
		taxonomyService: taxonomyService,
		importService:   importService,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/base-unit", h.LinkBaseUnit)
		items.DELETE("/:id/base-unit", h.UnlinkBaseUnit)
		items.POST("/import", h.ImportItems)
	}

	brands := rg.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.POST("", h.CreateBrand)
		brands.PUT("/:id", h.RenameBrand)
		brands.DELETE("/:id", h.DeleteBrand)
	}

	groups := rg.Group("/product-groups")
	{
		groups.GET("", h.ListProductGroups)
		groups.POST("", h.CreateProductGroup)
		groups.PUT("/:id", h.RenameProductGroup)
		groups.DELETE("/:id", h.DeleteProductGroup)
	}
}

// ===================== Items =====================

// ListItems returns catalog items, paginated
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetItem returns a single item
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	result, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateItem creates a catalog item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// UpdateItem updates a catalog item
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req catalogapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteItem deletes a catalog item
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// LinkBaseUnit links a base unit to an item and derives base rates
func (h *CatalogHandler) LinkBaseUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req catalogapp.LinkBaseUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.itemService.LinkBaseUnit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UnlinkBaseUnit removes an item's base unit link and clears base rates
func (h *CatalogHandler) UnlinkBaseUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	result, err := h.itemService.UnlinkBaseUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportItems loads catalog items from an uploaded CSV file. A file
// with any invalid row is rejected as a whole.
func (h *CatalogHandler) ImportItems(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing 'file' upload field")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportItems(c.Request.Context(), file)
	if err != nil {
		switch err {
		case csvimport.ErrEmptyFile, csvimport.ErrInvalidEncoding, csvimport.ErrMissingHeader, csvimport.ErrNoDataRows:
			h.BadRequest(c, err.Error())
		default:
			h.HandleError(c, err)
		}
		return
	}

	if result.TotalErrors > 0 {
		details := make([]dto.ValidationDetail, len(result.Errors))
		for i, rowErr := range result.Errors {
			details[i] = dto.ValidationDetail{
				Code:    rowErr.Code,
				Message: rowErr.Error(),
				Line:    rowErr.Row,
			}
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
			"Item import rejected", middleware.GetRequestID(c), details))
		return
	}

	h.Success(c, result)
}

// ===================== Brands =====================

// ListBrands returns all brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.ListBrands(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateBrand creates a brand
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.CreateBrand(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RenameBrand renames a brand
func (h *CatalogHandler) RenameBrand(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.RenameBrand(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteBrand deletes a brand
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := h.taxonomyService.DeleteBrand(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ===================== Product Groups =====================

// ListProductGroups returns all product groups
func (h *CatalogHandler) ListProductGroups(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.ListProductGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateProductGroup creates a product group
func (h *CatalogHandler) CreateProductGroup(c *gin.Context) {
	var req catalogapp.CreateProductGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.CreateProductGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RenameProductGroup renames a product group
func (h *CatalogHandler) RenameProductGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product group ID format")
		return
	}

	var req catalogapp.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.RenameProductGroup(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteProductGroup deletes a product group
func (h *CatalogHandler) DeleteProductGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product group ID format")
		return
	}

	if err := h.taxonomyService.DeleteProductGroup(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
