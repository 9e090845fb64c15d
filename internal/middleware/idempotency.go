package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
)

const idempotencyKeyHeader = "X-Idempotency-Key"

// idempotencyKeyTTL bounds how long a processed key blocks replays
const idempotencyKeyTTL = 24 * time.Hour

// IdempotencyGuard rejects replayed create requests. Clients that send an
// X-Idempotency-Key header get exactly-once semantics for the key's lifetime;
// requests without the header pass through unchanged.
func IdempotencyGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" || config.Redis == nil {
			c.Next()
			return
		}

		redisKey := "idempotency:" + c.FullPath() + ":" + key
		acquired, err := config.Redis.SetNX(c.Request.Context(), redisKey, 1, idempotencyKeyTTL).Result()
		if err != nil {
			// Redis being down must not block writes
			logging.Logger.Warn("idempotency check skipped",
				zap.String("key", key),
				zap.Error(err))
			c.Next()
			return
		}

		if !acquired {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
			c.Abort()
			return
		}

		c.Next()

		// Release the key on failure so the client can retry
		status := c.Writer.Status()
		if status >= 500 {
			if err := config.Redis.Del(c.Request.Context(), redisKey).Err(); err != nil {
				logging.Logger.Warn("failed to release idempotency key",
					zap.String("key", key),
					zap.Error(err))
			}
		}
	}
}
