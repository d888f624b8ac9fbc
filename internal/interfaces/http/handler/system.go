package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/wholesale/backend/internal/infrastructure/persistence"
)

// SystemHandler exposes health and runtime statistics.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	redis     *redis.Client
	appName   string
	env       string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler. redisClient may be nil
// when the deployment runs on the in-memory access cache.
func NewSystemHandler(base BaseHandler, db *persistence.Database, redisClient *redis.Client, appName, env string) *SystemHandler {
	return &SystemHandler{
		BaseHandler: base,
		db:          db,
		redis:       redisClient,
		appName:     appName,
		env:         env,
		startedAt:   time.Now(),
	}
}

// Health handles GET /health. Returns 503 when a required dependency
// is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = "down: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status": state,
		"app":    h.appName,
		"env":    h.env,
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats handles GET /system/stats (admin).
func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"database": stats,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}
