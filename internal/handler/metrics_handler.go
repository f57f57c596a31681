package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/models"
	"github.com/noah-isme/engagement-dashboard/internal/service"
)

type backendProbe interface {
	Info(ctx context.Context) (*models.BackendInfo, error)
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics      *service.MetricsService
	backend      backendProbe
	probeTimeout time.Duration
}

// NewMetricsHandler constructs a metrics handler. backend may be nil, in which case readiness
// does not depend on the message service.
func NewMetricsHandler(metrics *service.MetricsService, backend backendProbe, probeTimeout time.Duration) *MetricsHandler {
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	return &MetricsHandler{metrics: metrics, backend: backend, probeTimeout: probeTimeout}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the message service answers.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.backend == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.probeTimeout)
	defer cancel()

	start := time.Now()
	info, err := h.backend.Info(ctx)
	h.metrics.ObserveBackendCall(service.OperationInfo, err, time.Since(start))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "backend": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "backend_version": info.Version})
}
