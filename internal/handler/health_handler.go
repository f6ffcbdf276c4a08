package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RonUpdate/sitecf-sub001/pkg/database"
	"github.com/RonUpdate/sitecf-sub001/pkg/redis"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db      *database.PostgresDB
	rdb     *redis.Client
	service string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, rdb *redis.Client, service string) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, service: service}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

// Ready checks if the service is ready to accept traffic. Both stores
// must answer: roles come from Postgres, sessions from Redis.
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"service":  h.service,
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	if err := h.rdb.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"service": h.service,
			"redis":   "disconnected",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"service":  h.service,
		"database": "connected",
		"redis":    "connected",
	})
}
