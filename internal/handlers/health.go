package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/monitoring"
)

type HealthHandler struct {
	startTime time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

func (h *HealthHandler) Health(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).String(),
	})
}

func (h *HealthHandler) Metrics(c *gin.Context) {
	respondData(c, http.StatusOK, monitoring.GetMetrics())
}
