package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/services"
	"github.com/barangay-portal/api/internal/utils"
)

// ResidentHandler serves the resident registry endpoints
type ResidentHandler struct {
	service *services.ResidentService
	logger  *logging.SafeLogger
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(service *services.ResidentService, logger *logging.SafeLogger) *ResidentHandler {
	return &ResidentHandler{service: service, logger: logger}
}

// List godoc
// @Summary List residents
// @Description Returns a paginated page of resident records with optional filtering, search and sorting.
// @Tags residents
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over names, address, phone and occupation"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction (asc or desc)"
// @Param gender query string false "Filter by gender"
// @Param civil_status query string false "Filter by civil status"
// @Param household_role query string false "Filter by household role"
// @Success 200 {object} models.ResidentListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /residents [get]
func (h *ResidentHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListResidents")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("gender", c.Query("gender")).
		WithFilter("civil_status", c.Query("civil_status")).
		WithFilter("household_role", c.Query("household_role"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list residents", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get godoc
// @Summary Get a resident
// @Description Retrieves a single resident record by its ID.
// @Tags residents
// @Produce json
// @Param id path string true "Resident ID"
// @Success 200 {object} models.ResidentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /residents/{id} [get]
func (h *ResidentHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetResident")
	defer span.End()

	resident, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resident.ToResponse(time.Now()))
}

// Create godoc
// @Summary Register a resident
// @Description Creates a resident record. Phone numbers are normalized to E.164 format.
// @Tags residents
// @Accept json
// @Produce json
// @Param resident body models.ResidentRequest true "Resident payload"
// @Success 201 {object} models.Resident
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /residents [post]
func (h *ResidentHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateResident")
	defer span.End()

	var req models.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateResident(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	resident, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to create resident", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resident)
}

// Update godoc
// @Summary Update a resident
// @Description Replaces the editable fields of a resident record. Supply the current version to detect concurrent edits.
// @Tags residents
// @Accept json
// @Produce json
// @Param id path string true "Resident ID"
// @Param resident body models.ResidentRequest true "Resident payload"
// @Success 200 {object} models.Resident
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record was modified by another session"
// @Security ApiKeyAuth
// @Router /residents/{id} [put]
func (h *ResidentHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateResident")
	defer span.End()

	var req models.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateResident(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	resident, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resident)
}

// Delete godoc
// @Summary Delete a resident
// @Description Removes a resident record permanently.
// @Tags residents
// @Produce json
// @Param id path string true "Resident ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /residents/{id} [delete]
func (h *ResidentHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteResident")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "resident deleted"})
}

// Stats godoc
// @Summary Resident statistics
// @Description Returns registry totals, voter count and the gender breakdown.
// @Tags residents
// @Produce json
// @Success 200 {object} services.ResidentStats
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /residents/stats/overview [get]
func (h *ResidentHandler) Stats(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ResidentStats")
	defer span.End()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to compute resident stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
