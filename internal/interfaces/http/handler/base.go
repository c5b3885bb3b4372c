package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/retailops/backoffice/internal/interfaces/http/dto"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getActor returns the authenticated actor or aborts with 401
func getActor(c *gin.Context) (adjustment.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrCodeUnauthorized,
			"Authentication required",
			middleware.GetRequestID(c),
		))
	}
	return actor, ok
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrCodeBadRequest,
		message,
		middleware.GetRequestID(c),
	))
}

// HandleError converts service errors to HTTP responses. Validation failures
// carry every violation found; other domain errors map to a status by code.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := middleware.GetRequestID(c)

	var validationErr *adjustment.ValidationError
	if errors.As(err, &validationErr) {
		details := make([]dto.ValidationDetail, len(validationErr.Result.Violations))
		for i, v := range validationErr.Result.Violations {
			details[i] = dto.ValidationDetail{
				Code:    v.Code,
				Message: v.Message,
				Line:    v.Line,
			}
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
			"Adjustment validation failed",
			requestID,
			details,
		))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}
