package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barangay-portal/api/internal/config"
)

// HealthResponse reports the API and its backing services
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports the API status together with MongoDB and Redis connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All backing services reachable"
// @Failure 503 {object} HealthResponse "One or more backing services unreachable"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  map[string]string{},
	}

	if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
		health.Status = "unhealthy"
		health.Services["mongodb"] = "unhealthy"
	} else {
		health.Services["mongodb"] = "healthy"
	}

	if err := config.Redis.Ping(ctx).Err(); err != nil {
		health.Status = "unhealthy"
		health.Services["redis"] = "unhealthy"
	} else {
		health.Services["redis"] = "healthy"
	}

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
	} else {
		c.JSON(http.StatusServiceUnavailable, health)
	}
}
