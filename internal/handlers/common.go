package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/services"
	"github.com/barangay-portal/api/internal/utils"
)

// ErrorResponse is the error payload returned by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success payload for operations without a body
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BulkUpdateResponse reports the outcome of a bulk write
type BulkUpdateResponse struct {
	Success  bool  `json:"success"`
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// ValidationErrorResponse carries field-level validation failures
type ValidationErrorResponse struct {
	Error   string                  `json:"error"`
	Details []utils.ValidationError `json:"details"`
}

// respondValidationErrors writes a 400 with the field-level failures
func respondValidationErrors(c *gin.Context, result *utils.ValidationResult) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:   "validation failed",
		Details: result.Errors,
	})
}

// parseListQuery reads the common list parameters shared by every
// collection endpoint
func parseListQuery(c *gin.Context) services.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	q := services.NewListQuery(page, perPage)
	q.Search = c.Query("search")
	q.SortBy = c.Query("sort_by")
	q.SortDir = c.Query("sort_dir")
	return q
}

// statusForError maps service sentinel errors to HTTP statuses
func statusForError(err error) int {
	switch err {
	case models.ErrInvalidID, models.ErrInvalidStatus, models.ErrInvalidRole, models.ErrEmptyIDList:
		return http.StatusBadRequest
	case models.ErrResidentNotFound, models.ErrAnnouncementNotFound, models.ErrHotlineNotFound,
		models.ErrIncidentNotFound, models.ErrAppointmentNotFound, models.ErrAdminUserNotFound,
		models.ErrAccountNotFound:
		return http.StatusNotFound
	case models.ErrVersionConflict, models.ErrUsernameExists, models.ErrEmailExists:
		return http.StatusConflict
	case models.ErrInvalidCredentials, models.ErrInvalidToken:
		return http.StatusUnauthorized
	case models.ErrAccountInactive, models.ErrEmailNotVerified:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped error payload. Internal errors are masked
// so storage details never reach clients.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: message})
}
