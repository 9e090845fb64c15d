package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/barangay-portal/api/internal/models"
)

func TestAuditMiddleware_SkipsGETRequests(t *testing.T) {
	router := gin.New()
	router.Use(AuditMiddleware())
	router.GET("/v1/residents", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	req, _ := http.NewRequest("GET", "/v1/residents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("AuditMiddleware() GET status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestAuditMiddleware_SkipsHealthAndMetrics(t *testing.T) {
	router := gin.New()
	router.Use(AuditMiddleware())
	router.POST("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.POST("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	tests := []string{"/health", "/metrics"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			req, _ := http.NewRequest("POST", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("AuditMiddleware() %s status = %v, want %v", path, w.Code, http.StatusOK)
			}
		})
	}
}

func TestAuditMiddleware_WriteMethods(t *testing.T) {
	router := gin.New()
	router.Use(AuditMiddleware())
	router.POST("/v1/residents", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": "123"})
	})
	router.PUT("/v1/residents/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.DELETE("/v1/residents/:id", func(c *gin.Context) {
		c.JSON(http.StatusNoContent, nil)
	})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"POST", "/v1/residents", `{"first_name":"Juan"}`, http.StatusCreated},
		{"PUT", "/v1/residents/123", `{"first_name":"Maria"}`, http.StatusOK},
		{"DELETE", "/v1/residents/123", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var body *bytes.Buffer
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			} else {
				body = bytes.NewBuffer(nil)
			}
			req, _ := http.NewRequest(tt.method, tt.path, body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("AuditMiddleware() %s status = %v, want %v", tt.method, w.Code, tt.want)
			}
		})
	}
}

func TestAuditMiddleware_FailedRequestPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(AuditMiddleware())
	router.POST("/v1/residents", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid"})
	})

	body := bytes.NewBufferString(`{"invalid":"data"}`)
	req, _ := http.NewRequest("POST", "/v1/residents", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("AuditMiddleware() error status = %v, want %v", w.Code, http.StatusBadRequest)
	}
}

func TestMapMethodToAction(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"POST", models.AuditActionCreate},
		{"PUT", models.AuditActionUpdate},
		{"PATCH", models.AuditActionUpdate},
		{"DELETE", models.AuditActionDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := mapMethodToAction(tt.method); got != tt.want {
				t.Errorf("mapMethodToAction(%s) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

func TestExtractResourceFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"residents collection", "/v1/residents", "residents"},
		{"resident by id", "/v1/residents/123", "residents"},
		{"bulk status", "/v1/incident-reports/bulk/status", "incident-reports"},
		{"nested auth route", "/v1/auth/profile", "auth"},
		{"root path", "/", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractResourceFromPath(tt.path); got != tt.want {
				t.Errorf("extractResourceFromPath(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
