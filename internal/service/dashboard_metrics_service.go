package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend operations observed by MetricsService.
const (
	OperationDateRange = "date_range"
	OperationSearch    = "search"
	OperationClassify  = "classify"
	OperationInfo      = "info"
)

// MetricsService encapsulates Prometheus instrumentation for the dashboard and its backend calls.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	backendTotal    *prometheus.CounterVec
	staleResponses  *prometheus.CounterVec
	alertsRaised    *prometheus.CounterVec
}

// NewMetricsService registers dashboard collectors. activeSessions may be nil.
func NewMetricsService(activeSessions func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of dashboard HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of dashboard HTTP requests",
	}, []string{"method", "path", "status"})

	backendDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Latency of calls to the message API",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	backendTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Calls to the message API by outcome",
	}, []string{"operation", "outcome"})

	staleResponses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stale_responses_total",
		Help: "Backend responses discarded because a newer request superseded them",
	}, []string{"operation"})

	alertsRaised := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_alerts_total",
		Help: "User-visible failure alerts raised on sessions",
	}, []string{"operation"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, backendDuration, backendTotal, staleResponses, alertsRaised, goroutines)

	if activeSessions != nil {
		registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dashboard_sessions_active",
			Help: "Reviewer sessions currently held in memory",
		}, func() float64 {
			return float64(activeSessions())
		}))
	}

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		backendDuration: backendDuration,
		backendTotal:    backendTotal,
		staleResponses:  staleResponses,
		alertsRaised:    alertsRaised,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records dashboard request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveBackendCall records the latency and outcome of a message API call.
func (m *MetricsService) ObserveBackendCall(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.backendDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
	m.backendTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordStaleResponse counts a response dropped by the ordering guard.
func (m *MetricsService) RecordStaleResponse(operation string) {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues(operation).Inc()
}

// RecordAlert counts a failure surfaced to a reviewer.
func (m *MetricsService) RecordAlert(operation string) {
	if m == nil {
		return
	}
	m.alertsRaised.WithLabelValues(operation).Inc()
}
