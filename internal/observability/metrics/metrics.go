package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanctuaryconsole_http_requests_total",
		Help: "Total number of HTTP requests served by the console",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sanctuaryconsole_http_request_duration_seconds",
		Help:    "Duration of HTTP requests served by the console",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	apiCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanctuaryconsole_api_calls_total",
		Help: "Outbound calls to the sanctuary backend by resource and status",
	}, []string{"resource", "method", "status"})

	apiCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sanctuaryconsole_api_call_duration_seconds",
		Help:    "Duration of outbound calls to the sanctuary backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanctuaryconsole_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sanctuaryconsole_active_sessions",
		Help: "Sessions established since startup minus explicit logouts",
	})

	backendUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sanctuaryconsole_backend_up",
		Help: "1 when the sanctuary backend is reachable, 0 otherwise",
	})
)

// ObserveHTTPRequest records an inbound HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAPICall records an outbound backend call with its HTTP status.
func ObserveAPICall(resource, method, status string, duration time.Duration) {
	apiCallsTotal.WithLabelValues(resource, method, status).Inc()
	apiCallDuration.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// ObserveLogin records a login attempt result ("success" or "failure").
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// IncrementSessions increments the active session gauge.
func IncrementSessions() {
	activeSessions.Inc()
}

// DecrementSessions decrements the active session gauge.
func DecrementSessions() {
	activeSessions.Dec()
}

// SetBackendUp flips the backend reachability gauge.
func SetBackendUp(up bool) {
	if up {
		backendUp.Set(1)
		return
	}
	backendUp.Set(0)
}
