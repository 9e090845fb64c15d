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

// AuthHandler serves the citizen account endpoints
type AuthHandler struct {
	service *services.AuthService
	logger  *logging.SafeLogger
}

// NewAuthHandler creates a new citizen auth handler
func NewAuthHandler(service *services.AuthService, logger *logging.SafeLogger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// Register godoc
// @Summary Register a citizen account
// @Description Creates a citizen account and sends the email verification mail.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.CitizenAccount
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Register")
	defer span.End()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !utils.IsValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email address is not valid"})
		return
	}

	account, err := h.service.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Login godoc
// @Summary Citizen login
// @Description Verifies citizen credentials and issues a session token. Requires a verified email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Email and password"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Email not verified or account deactivated"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Login")
	defer span.End()

	var req models.LoginRequest
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

// Profile godoc
// @Summary Get my profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.CitizenAccount
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetProfile")
	defer span.End()

	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Claims not found"})
		return
	}

	account, err := h.service.Profile(ctx, claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body models.ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} models.CitizenAccount
// @Failure 401 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateProfile")
	defer span.End()

	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Claims not found"})
		return
	}

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	account, err := h.service.UpdateProfile(ctx, claims.Subject, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes a verification token from the mailed link and activates logins.
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "VerifyEmail")
	defer span.End()

	if err := h.service.VerifyEmail(ctx, c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "email verified"})
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a reset mail when the address is known. Always returns success so account existence is not revealed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ForgotPassword")
	defer span.End()

	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.ForgotPassword(ctx, req.Email); err != nil {
		h.logger.Error("failed to process password reset request", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "if the address is registered, a reset mail has been sent"})
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Description Sets a new password using an unexpired token from the reset mail.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ResetPassword")
	defer span.End()

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.ResetPassword(ctx, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "password updated"})
}

// ResendVerification godoc
// @Summary Resend the verification mail
// @Description Issues a fresh verification token for an unverified account. Always returns success.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResendVerificationRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ResendVerification")
	defer span.End()

	var req models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.ResendVerification(ctx, req.Email); err != nil {
		h.logger.Error("failed to resend verification mail", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "if the address is registered and unverified, a new mail has been sent"})
}
