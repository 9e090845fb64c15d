package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
)

func init() {
	logging.InitLogger()
	gin.SetMode(gin.TestMode)

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{
			JWTSecret:    "test-secret",
			JWTAccessTTL: time.Hour,
		}
	}
}

func signTestToken(t *testing.T, claims models.Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_Success(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	token := signTestToken(t, models.Claims{
		PrincipalKind: models.PrincipalKindCitizen,
		Email:         "juan@example.com",
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("AuthMiddleware() status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("AuthMiddleware() with no auth header status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no Bearer prefix", "token123"},
		{"wrong prefix", "Basic token123"},
		{"extra parts", "Bearer token1 token2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("AuthMiddleware() with %s status = %v, want %v", tt.name, w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name  string
		token string
	}{
		{"not a JWT", "not.a.jwt"},
		{"garbage", "garbage"},
		{"empty token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("AuthMiddleware() with %s status = %v, want %v", tt.name, w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	claims := models.Claims{PrincipalKind: models.PrincipalKindCitizen}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("AuthMiddleware() with wrong signature status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	claims := models.Claims{PrincipalKind: models.PrincipalKindCitizen}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signTestToken(t, claims)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("AuthMiddleware() with expired token status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	signed := signTestToken(t, models.Claims{
		PrincipalKind: models.PrincipalKindAdmin,
		Role:          "admin",
		Permissions:   []string{"records:read", "records:write"},
		Email:         "staff@barangay.gov.ph",
	})

	claims, err := ParseToken(signed)
	if err != nil {
		t.Fatalf("ParseToken() error = %v, want nil", err)
	}
	if claims.PrincipalKind != models.PrincipalKindAdmin {
		t.Errorf("ParseToken() principal kind = %v, want %v", claims.PrincipalKind, models.PrincipalKindAdmin)
	}
	if claims.Role != "admin" {
		t.Errorf("ParseToken() role = %v, want admin", claims.Role)
	}
	if !claims.HasPermission("records:write") {
		t.Error("ParseToken() claims should carry records:write")
	}
}

func TestRequireAdmin_Success(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(claimsContextKey, &models.Claims{
			PrincipalKind: models.PrincipalKindAdmin,
			Role:          "admin",
		})
		c.Next()
	})
	router.Use(RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "admin access"})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequireAdmin() with admin session status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	router := gin.New()
	router.Use(RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "admin access"})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("RequireAdmin() with no claims status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin_CitizenSession(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(claimsContextKey, &models.Claims{
			PrincipalKind: models.PrincipalKindCitizen,
		})
		c.Next()
	})
	router.Use(RequireAdmin())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "admin access"})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("RequireAdmin() with citizen session status = %v, want %v", w.Code, http.StatusForbidden)
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name   string
		claims *models.Claims
		want   int
	}{
		{
			"admin with permission",
			&models.Claims{PrincipalKind: models.PrincipalKindAdmin, Permissions: []string{"records:write"}},
			http.StatusOK,
		},
		{
			"admin without permission",
			&models.Claims{PrincipalKind: models.PrincipalKindAdmin, Permissions: []string{"records:read"}},
			http.StatusForbidden,
		},
		{
			"citizen with matching tag",
			&models.Claims{PrincipalKind: models.PrincipalKindCitizen, Permissions: []string{"records:write"}},
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(claimsContextKey, tt.claims)
				c.Next()
			})
			router.Use(RequirePermission("records:write"))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "ok"})
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("RequirePermission() %s status = %v, want %v", tt.name, w.Code, tt.want)
			}
		})
	}
}

func TestGetClaims_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetClaims(c); ok {
		t.Error("GetClaims() with empty context should report missing claims")
	}
}
