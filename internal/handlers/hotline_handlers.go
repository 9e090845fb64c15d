package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/services"
	"github.com/barangay-portal/api/internal/utils"
)

// HotlineHandler serves the hotline directory endpoints
type HotlineHandler struct {
	service *services.HotlineService
	logger  *logging.SafeLogger
}

// NewHotlineHandler creates a new hotline handler
func NewHotlineHandler(service *services.HotlineService, logger *logging.SafeLogger) *HotlineHandler {
	return &HotlineHandler{service: service, logger: logger}
}

// List godoc
// @Summary List hotlines
// @Description Returns a paginated page of directory hotlines with optional filtering.
// @Tags hotlines
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over name, description, number, address and tags"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction (asc or desc)"
// @Param category query string false "Filter by category"
// @Param availability query string false "Filter by availability"
// @Success 200 {object} models.HotlineListResponse
// @Failure 500 {object} ErrorResponse
// @Router /hotlines [get]
func (h *HotlineHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListHotlines")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("category", c.Query("category")).
		WithFilter("availability", c.Query("availability"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list hotlines", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Emergency godoc
// @Summary Emergency hotline directory
// @Description Returns active, verified hotlines in the emergency categories (Police, Fire, Medical, Disaster).
// @Tags hotlines
// @Produce json
// @Success 200 {array} models.Hotline
// @Failure 500 {object} ErrorResponse
// @Router /hotlines/emergency [get]
func (h *HotlineHandler) Emergency(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "EmergencyHotlines")
	defer span.End()

	hotlines, err := h.service.Emergency(ctx)
	if err != nil {
		h.logger.Error("failed to load emergency hotlines", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hotlines)
}

// Get godoc
// @Summary Get a hotline
// @Tags hotlines
// @Produce json
// @Param id path string true "Hotline ID"
// @Success 200 {object} models.Hotline
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /hotlines/{id} [get]
func (h *HotlineHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetHotline")
	defer span.End()

	hotline, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hotline)
}

// Create godoc
// @Summary Add a hotline
// @Tags hotlines
// @Accept json
// @Produce json
// @Param hotline body models.HotlineRequest true "Hotline payload"
// @Success 201 {object} models.Hotline
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /hotlines [post]
func (h *HotlineHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateHotline")
	defer span.End()

	var req models.HotlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateHotline(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	hotline, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to create hotline", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hotline)
}

// Update godoc
// @Summary Update a hotline
// @Tags hotlines
// @Accept json
// @Produce json
// @Param id path string true "Hotline ID"
// @Param hotline body models.HotlineRequest true "Hotline payload"
// @Success 200 {object} models.Hotline
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record was modified by another session"
// @Security ApiKeyAuth
// @Router /hotlines/{id} [put]
func (h *HotlineHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateHotline")
	defer span.End()

	var req models.HotlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateHotline(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	hotline, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hotline)
}

// Delete godoc
// @Summary Delete a hotline
// @Tags hotlines
// @Produce json
// @Param id path string true "Hotline ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /hotlines/{id} [delete]
func (h *HotlineHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteHotline")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "hotline deleted"})
}

// BulkVerify godoc
// @Summary Bulk verification toggle
// @Description Sets the verification flag on a set of hotlines in one write.
// @Tags hotlines
// @Accept json
// @Produce json
// @Param request body models.HotlineBulkVerifyRequest true "IDs and verification flag"
// @Success 200 {object} BulkUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /hotlines/verify/bulk [put]
func (h *HotlineHandler) BulkVerify(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "BulkVerifyHotlines")
	defer span.End()

	var req models.HotlineBulkVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.BulkUpdateVerification(ctx, req.IDs, req.IsVerified)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BulkUpdateResponse{Success: true, Matched: result.Matched, Modified: result.Modified})
}

// Stats godoc
// @Summary Hotline statistics
// @Description Returns directory totals with the verified and per-category breakdowns.
// @Tags hotlines
// @Produce json
// @Success 200 {object} models.HotlineStats
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /hotlines/stats/overview [get]
func (h *HotlineHandler) Stats(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HotlineStats")
	defer span.End()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to compute hotline stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
