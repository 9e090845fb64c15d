package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/models"
)

// AuditMiddleware records all successful POST/PUT/DELETE/PATCH requests
// in the audit log collection
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "DELETE" && method != "PATCH" {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics") {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		entry := models.AuditLog{
			Action:     mapMethodToAction(method),
			Resource:   extractResourceFromPath(path),
			ResourceID: c.Param("id"),
			Metadata: map[string]string{
				"endpoint":        path,
				"method":          method,
				"ip_address":      c.ClientIP(),
				"user_agent":      c.Request.UserAgent(),
				"response_status": strconv.Itoa(status),
			},
			Timestamp: time.Now(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			entry.Metadata["query_params"] = query
		}
		if claims, ok := GetClaims(c); ok {
			entry.Actor = claims.Subject
			entry.ActorKind = claims.PrincipalKind
		}

		if config.MongoDB == nil {
			return
		}

		// Written off the request path so a slow audit insert never delays
		// the response
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			collection := config.MongoDB.Collection(config.AppConfig.AuditLogCollection)
			if _, err := collection.InsertOne(ctx, entry); err != nil {
				logging.Logger.Warn("failed to write audit log entry",
					zap.Error(err),
					zap.String("endpoint", entry.Metadata["endpoint"]),
					zap.String("method", entry.Metadata["method"]),
				)
			}
		}()
	}
}

// mapMethodToAction maps HTTP methods to audit actions
func mapMethodToAction(method string) string {
	switch method {
	case "POST":
		return models.AuditActionCreate
	case "DELETE":
		return models.AuditActionDelete
	default:
		return models.AuditActionUpdate
	}
}

// extractResourceFromPath extracts the resource type from the request path
func extractResourceFromPath(path string) string {
	path = strings.TrimPrefix(path, "/v1/")
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}
