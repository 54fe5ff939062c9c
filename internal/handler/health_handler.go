package handler

import (
	"net/http"
	"time"

	"warungpos/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	rdb    *redis.Client
	mailer *infra.Mailer
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, mailer: mailer}
}

// Check reports the health of each dependency. Degraded dependencies flip the
// overall status but the endpoint itself stays 200 so probes can read details.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	checks := gin.H{}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		checks["database"] = "down"
		status = "degraded"
	} else {
		checks["database"] = "ok"
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "down"
			status = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	if h.mailer != nil {
		checks["smtp_breaker"] = h.mailer.BreakerState().String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
		"checks": checks,
	})
}
