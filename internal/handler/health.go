package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cafemanagement/internal/worker"
)

// Health reports database (and, when configured, redis) status.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		out := gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			out["database"] = "down"
			out["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			out["database"] = "up"
		}

		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				out["redis"] = "down"
			} else {
				out["redis"] = "up"
				if n, err := worker.DLQLength(c.Request.Context(), rdb, worker.QueueEmail); err == nil {
					out["email_dlq"] = n
				}
			}
		}

		c.JSON(status, out)
	}
}
