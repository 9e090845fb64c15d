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

// AppointmentHandler serves the appointment endpoints
type AppointmentHandler struct {
	service *services.AppointmentService
	logger  *logging.SafeLogger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service *services.AppointmentService, logger *logging.SafeLogger) *AppointmentHandler {
	return &AppointmentHandler{service: service, logger: logger}
}

// List godoc
// @Summary List appointments
// @Description Returns a paginated page of appointments. Document-request appointments carry a relabeled display status alongside the stored one.
// @Tags appointments
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over title, venue, description and contact"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction (asc or desc)"
// @Param status query string false "Filter by stored status"
// @Param type query string false "Filter by appointment type"
// @Success 200 {object} models.AppointmentListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListAppointments")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("status", c.Query("status")).
		WithFilter("type", c.Query("type"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list appointments", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Mine godoc
// @Summary List my appointments
// @Description Returns the appointments booked under the authenticated citizen's email, soonest first.
// @Tags appointments
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Success 200 {object} models.AppointmentListResponse
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/mine [get]
func (h *AppointmentHandler) Mine(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListMyAppointments")
	defer span.End()

	claims, ok := middleware.GetClaims(c)
	if !ok || claims.Email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Claims not found"})
		return
	}

	response, err := h.service.ListByContactEmail(ctx, claims.Email, parseListQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Upcoming godoc
// @Summary Upcoming appointments
// @Description Returns appointments scheduled from now on that are neither cancelled nor completed.
// @Tags appointments
// @Produce json
// @Success 200 {array} models.AppointmentResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/upcoming [get]
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpcomingAppointments")
	defer span.End()

	appointments, err := h.service.Upcoming(ctx)
	if err != nil {
		h.logger.Error("failed to load upcoming appointments", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// Get godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetAppointment")
	defer span.End()

	appointment, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment.ToResponse())
}

// Create godoc
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body models.AppointmentRequest true "Appointment payload"
// @Success 201 {object} models.AppointmentResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateAppointment")
	defer span.End()

	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateAppointment(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	appointment, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to create appointment", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment.ToResponse())
}

// Update godoc
// @Summary Update an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param appointment body models.AppointmentRequest true "Appointment payload"
// @Success 200 {object} models.AppointmentResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record was modified by another session"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateAppointment")
	defer span.End()

	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateAppointment(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	appointment, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment.ToResponse())
}

// Delete godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteAppointment")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "appointment deleted"})
}

// BulkStatus godoc
// @Summary Bulk status update
// @Description Sets the workflow status on a set of appointments, optionally assigning a handler.
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body models.AppointmentBulkStatusRequest true "IDs, status and optional assignee"
// @Success 200 {object} BulkUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/status/bulk [put]
func (h *AppointmentHandler) BulkStatus(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "BulkUpdateAppointmentStatus")
	defer span.End()

	var req models.AppointmentBulkStatusRequest
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
// @Summary Appointment statistics
// @Description Returns appointment totals with upcoming, status and type breakdowns.
// @Tags appointments
// @Produce json
// @Success 200 {object} models.AppointmentStats
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /appointments/stats/overview [get]
func (h *AppointmentHandler) Stats(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AppointmentStats")
	defer span.End()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to compute appointment stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
