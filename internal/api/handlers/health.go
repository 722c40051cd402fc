package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/pkg/cache"
	"github.com/hoopsdfs/roster-optimizer/pkg/database"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db     *database.DB
	cache  *cache.RosterCacheService
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB, cacheService *cache.RosterCacheService, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cacheService,
		logger: logger,
	}
}

// GetHealth reports liveness plus dependency checks
func (h *HealthHandler) GetHealth(c *gin.Context) {
	checks := make(map[string]string)
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status":    httpStatusLabel(status),
		"service":   "roster-optimizer",
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// GetReady reports readiness; identical checks, conventional endpoint
func (h *HealthHandler) GetReady(c *gin.Context) {
	h.GetHealth(c)
}

func httpStatusLabel(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}
