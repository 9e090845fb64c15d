package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/middleware"
	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/services"
	"github.com/barangay-portal/api/internal/utils"
)

// IncidentReportHandler serves the incident report endpoints
type IncidentReportHandler struct {
	service *services.IncidentReportService
	logger  *logging.SafeLogger
}

// NewIncidentReportHandler creates a new incident report handler
func NewIncidentReportHandler(service *services.IncidentReportService, logger *logging.SafeLogger) *IncidentReportHandler {
	return &IncidentReportHandler{service: service, logger: logger}
}

// List godoc
// @Summary List incident reports
// @Description Returns a paginated page of incident reports for the admin tables.
// @Tags incidents
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over title, description, location and reporter"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction (asc or desc)"
// @Param status query string false "Filter by status"
// @Param severity query string false "Filter by severity"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} models.IncidentReportListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports [get]
func (h *IncidentReportHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListIncidentReports")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("status", c.Query("status")).
		WithFilter("severity", c.Query("severity")).
		WithFilter("priority", c.Query("priority"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list incident reports", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Mine godoc
// @Summary List my incident reports
// @Description Returns the incident reports filed under the authenticated citizen's email, newest first.
// @Tags incidents
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Success 200 {object} models.IncidentReportListResponse
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/mine [get]
func (h *IncidentReportHandler) Mine(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListMyIncidentReports")
	defer span.End()

	claims, ok := middleware.GetClaims(c)
	if !ok || claims.Email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Claims not found"})
		return
	}

	response, err := h.service.ListByReporterEmail(ctx, claims.Email, parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Emergency godoc
// @Summary Open emergency reports
// @Description Returns emergency-flagged reports that are not yet resolved or rejected.
// @Tags incidents
// @Produce json
// @Success 200 {array} models.IncidentReport
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/emergency [get]
func (h *IncidentReportHandler) Emergency(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "EmergencyIncidentReports")
	defer span.End()

	reports, err := h.service.Emergency(ctx)
	if err != nil {
		h.logger.Error("failed to load emergency reports", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Get godoc
// @Summary Get an incident report
// @Tags incidents
// @Produce json
// @Param id path string true "Incident report ID"
// @Success 200 {object} models.IncidentReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/{id} [get]
func (h *IncidentReportHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetIncidentReport")
	defer span.End()

	report, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Create godoc
// @Summary File an incident report
// @Description Creates an incident report. The location accepts flat lat/lng fields or a nested coordinates object.
// @Tags incidents
// @Accept json
// @Produce json
// @Param report body models.IncidentReportRequest true "Incident report payload"
// @Success 201 {object} models.IncidentReport
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports [post]
func (h *IncidentReportHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateIncidentReport")
	defer span.End()

	var req models.IncidentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateIncidentReport(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	report, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to create incident report", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Update godoc
// @Summary Update an incident report
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident report ID"
// @Param report body models.IncidentReportRequest true "Incident report payload"
// @Success 200 {object} models.IncidentReport
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record was modified by another session"
// @Security ApiKeyAuth
// @Router /incident-reports/{id} [put]
func (h *IncidentReportHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateIncidentReport")
	defer span.End()

	var req models.IncidentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateIncidentReport(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	report, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Delete godoc
// @Summary Delete an incident report
// @Tags incidents
// @Produce json
// @Param id path string true "Incident report ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/{id} [delete]
func (h *IncidentReportHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteIncidentReport")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "incident report deleted"})
}

// BulkStatus godoc
// @Summary Bulk status update
// @Description Sets the workflow status on a set of incident reports, optionally assigning a handler.
// @Tags incidents
// @Accept json
// @Produce json
// @Param request body models.IncidentBulkStatusRequest true "IDs, status and optional assignee"
// @Success 200 {object} BulkUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/status/bulk [put]
func (h *IncidentReportHandler) BulkStatus(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "BulkUpdateIncidentStatus")
	defer span.End()

	var req models.IncidentBulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.BulkUpdateStatus(ctx, req.IDs, req.Status, req.AssignedTo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BulkUpdateResponse{Success: true, Matched: result.Matched, Modified: result.Modified})
}

// Stats godoc
// @Summary Incident statistics
// @Description Returns incident totals with emergency, status and severity breakdowns.
// @Tags incidents
// @Produce json
// @Success 200 {object} models.IncidentStats
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /incident-reports/stats/overview [get]
func (h *IncidentReportHandler) Stats(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "IncidentStats")
	defer span.End()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to compute incident stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
