package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test?page=1&per_page=10", nil)
	req.Header.Set("User-Agent", "TestClient/1.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequestLogger() status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRequestLogger_DifferentStatusCodes(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger())

	router.GET("/200", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	router.GET("/404", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{}) })
	router.GET("/500", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{}) })

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"OK", "/200", http.StatusOK},
		{"Not Found", "/404", http.StatusNotFound},
		{"Internal Server Error", "/500", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("RequestLogger() status = %v, want %v", w.Code, tt.status)
			}
		})
	}
}

func TestRequestTracker(t *testing.T) {
	router := gin.New()
	router.Use(RequestTracker())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("RequestTracker() request %d status = %v, want %v", i, w.Code, http.StatusOK)
		}
	}
}

func TestRequestID_Generated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var capturedID string
	router.GET("/test", func(c *gin.Context) {
		val, exists := c.Get("RequestID")
		if !exists {
			t.Error("RequestID not set in context")
		}
		id, ok := val.(string)
		if !ok {
			t.Error("RequestID is not a string")
		}
		capturedID = id
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequestID() status = %v, want %v", w.Code, http.StatusOK)
	}

	if capturedID == "" {
		t.Error("RequestID was not generated")
	}

	responseID := w.Header().Get("X-Request-ID")
	if responseID != capturedID {
		t.Errorf("X-Request-ID header = %v, want %v", responseID, capturedID)
	}
}

func TestRequestID_WithProvidedID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var capturedID string
	router.GET("/test", func(c *gin.Context) {
		val, _ := c.Get("RequestID")
		capturedID = val.(string)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "custom-request-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if capturedID != "custom-request-id-123" {
		t.Errorf("RequestID = %v, want custom-request-id-123", capturedID)
	}

	responseID := w.Header().Get("X-Request-ID")
	if responseID != "custom-request-id-123" {
		t.Errorf("X-Request-ID header = %v, want custom-request-id-123", responseID)
	}
}
