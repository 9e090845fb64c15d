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
)

// AdminHandler serves the back-office account endpoints
type AdminHandler struct {
	service *services.AdminUserService
	logger  *logging.SafeLogger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *services.AdminUserService, logger *logging.SafeLogger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

// Login godoc
// @Summary Admin login
// @Description Verifies admin credentials and issues a session token carrying the role and permissions.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body models.AdminLoginRequest true "Username and password"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account deactivated"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminLogin")
	defer span.End()

	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.service.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me godoc
// @Summary Current admin account
// @Description Returns the account behind the presented session token.
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminUser
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/me [get]
func (h *AdminHandler) Me(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminMe")
	defer span.End()

	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Claims not found"})
		return
	}

	admin, err := h.service.Get(ctx, claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

// List godoc
// @Summary List admin accounts
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param search query string false "Free-text search over username, names and email"
// @Param role query string false "Filter by role"
// @Success 200 {object} models.AdminListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListAdminUsers")
	defer span.End()

	q := parseListQuery(c).
		WithFilter("role", c.Query("role"))

	response, err := h.service.List(ctx, q)
	if err != nil {
		h.logger.Error("failed to list admin accounts", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary Create an admin account
// @Description Creates a back-office account. Permissions are derived from the role and never supplied directly.
// @Tags admin
// @Accept json
// @Produce json
// @Param account body models.AdminCreateRequest true "Account payload"
// @Success 201 {object} models.AdminUser
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Security ApiKeyAuth
// @Router /admin/create-admin [post]
func (h *AdminHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateAdminUser")
	defer span.End()

	var req models.AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	admin, err := h.service.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// Update godoc
// @Summary Update an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Admin account ID"
// @Param account body models.AdminUpdateRequest true "Fields to update"
// @Success 200 {object} models.AdminUser
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/admins/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateAdminUser")
	defer span.End()

	var req models.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	admin, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

// Delete godoc
// @Summary Delete an admin account
// @Tags admin
// @Produce json
// @Param id path string true "Admin account ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/admins/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteAdminUser")
	defer span.End()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "admin account deleted"})
}
