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

// AnnouncementHandler serves the announcement endpoints
type AnnouncementHandler struct {
	service *services.AnnouncementService
	logger  *logging.SafeLogger
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(service *services.AnnouncementService, logger *logging.SafeLogger) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, logger: logger}
}

// List godoc
// @Summary List announcements
// @Description Returns a paginated page of announcements, including inactive ones, for the admin tables.
// @Tags announcements
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over title, content and source"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "Sort direction (asc or desc)"
// @Param category query string false "Filter by category"
// @Success 200 {object} models.AnnouncementListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListAnnouncements")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("category", c.Query("category"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list announcements", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Feed godoc
// @Summary Public announcement feed
// @Description Returns active announcements for the citizen-facing feed, newest first.
// @Tags announcements
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {array} models.Announcement
// @Failure 500 {object} ErrorResponse
// @Router /announcements/feed [get]
func (h *AnnouncementHandler) Feed(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AnnouncementFeed")
	defer span.End()

	feed, err := h.service.PublicFeed(ctx, c.Query("category"))
	if err != nil {
		h.logger.Error("failed to load announcement feed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// Get godoc
// @Summary Get an announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} models.Announcement
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetAnnouncement")
	defer span.End()

	announcement, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// Create godoc
// @Summary Publish an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param announcement body models.AnnouncementRequest true "Announcement payload"
// @Success 201 {object} models.Announcement
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateAnnouncement")
	defer span.End()

	var req models.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateAnnouncement(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	announcement, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to create announcement", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// Update godoc
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param announcement body models.AnnouncementRequest true "Announcement payload"
// @Success 200 {object} models.Announcement
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record was modified by another session"
// @Security ApiKeyAuth
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateAnnouncement")
	defer span.End()

	var req models.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if result := utils.ValidateAnnouncement(req); !result.IsValid {
		respondValidationErrors(c, result)
		return
	}

	announcement, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// Delete godoc
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteAnnouncement")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "announcement deleted"})
}
