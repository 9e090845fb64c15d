package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/barangay-portal/api/internal/models"
	"github.com/barangay-portal/api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid id", models.ErrInvalidID, http.StatusBadRequest},
		{"invalid status", models.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid role", models.ErrInvalidRole, http.StatusBadRequest},
		{"empty id list", models.ErrEmptyIDList, http.StatusBadRequest},
		{"resident not found", models.ErrResidentNotFound, http.StatusNotFound},
		{"announcement not found", models.ErrAnnouncementNotFound, http.StatusNotFound},
		{"hotline not found", models.ErrHotlineNotFound, http.StatusNotFound},
		{"incident not found", models.ErrIncidentNotFound, http.StatusNotFound},
		{"appointment not found", models.ErrAppointmentNotFound, http.StatusNotFound},
		{"admin user not found", models.ErrAdminUserNotFound, http.StatusNotFound},
		{"account not found", models.ErrAccountNotFound, http.StatusNotFound},
		{"version conflict", models.ErrVersionConflict, http.StatusConflict},
		{"username exists", models.ErrUsernameExists, http.StatusConflict},
		{"email exists", models.ErrEmailExists, http.StatusConflict},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", models.ErrInvalidToken, http.StatusUnauthorized},
		{"account inactive", models.ErrAccountInactive, http.StatusForbidden},
		{"email not verified", models.ErrEmailNotVerified, http.StatusForbidden},
		{"unknown error", errors.New("mongo timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRespondError_MasksInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("connection refused to mongodb://internal-host"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("respondError() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("respondError() message = %q, want %q", body.Error, "internal server error")
	}
}

func TestRespondError_PassesClientErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, models.ErrResidentNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("respondError() status = %v, want %v", w.Code, http.StatusNotFound)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error != models.ErrResidentNotFound.Error() {
		t.Errorf("respondError() message = %q, want %q", body.Error, models.ErrResidentNotFound.Error())
	}
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
		wantSearch  string
		wantSortBy  string
		wantSortDir string
	}{
		{"defaults", "/test", 1, 10, "", "", ""},
		{"explicit paging", "/test?page=3&per_page=25", 3, 25, "", "", ""},
		{"page below minimum", "/test?page=0", 1, 10, "", "", ""},
		{"per_page above maximum", "/test?per_page=500", 1, 10, "", "", ""},
		{"non-numeric paging", "/test?page=abc&per_page=xyz", 1, 10, "", "", ""},
		{"search and sort", "/test?search=dela+cruz&sort_by=last_name&sort_dir=desc", 1, 10, "dela cruz", "last_name", "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got services.ListQuery
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				got = parseListQuery(c)
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if got.Page != tt.wantPage {
				t.Errorf("parseListQuery() page = %v, want %v", got.Page, tt.wantPage)
			}
			if got.PerPage != tt.wantPerPage {
				t.Errorf("parseListQuery() per_page = %v, want %v", got.PerPage, tt.wantPerPage)
			}
			if got.Search != tt.wantSearch {
				t.Errorf("parseListQuery() search = %q, want %q", got.Search, tt.wantSearch)
			}
			if got.SortBy != tt.wantSortBy {
				t.Errorf("parseListQuery() sort_by = %q, want %q", got.SortBy, tt.wantSortBy)
			}
			if got.SortDir != tt.wantSortDir {
				t.Errorf("parseListQuery() sort_dir = %q, want %q", got.SortDir, tt.wantSortDir)
			}
		})
	}
}
