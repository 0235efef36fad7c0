package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/observability/metrics"
	"github.com/yourorg/sanctuaryconsole/internal/reliability/circuitbreaker"
)

// BackendMonitor periodically probes the sanctuary backend so readiness
// reporting and the backend_up gauge reflect reality between page loads.
// The probe is the unauthenticated statistics endpoint behind a circuit
// breaker; while the breaker is open the probe is skipped entirely.
type BackendMonitor struct {
	api      domain.SanctuaryAPI
	logger   *slog.Logger
	interval time.Duration
	breaker  *circuitbreaker.CircuitBreaker
	healthy  atomic.Bool
}

func NewBackendMonitor(api domain.SanctuaryAPI, logger *slog.Logger, interval time.Duration) *BackendMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	m := &BackendMonitor{
		api:      api,
		logger:   logger,
		interval: interval,
		breaker:  circuitbreaker.New(3, 1, interval),
	}
	m.breaker.SetStateChangeCallback(func(from, to circuitbreaker.State) {
		logger.Warn("backend probe circuit state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})
	return m
}

// Healthy reports the result of the most recent probe.
func (m *BackendMonitor) Healthy() bool {
	return m.healthy.Load()
}

// Start begins the probe loop and blocks until the context is canceled.
func (m *BackendMonitor) Start(ctx context.Context) {
	m.logger.Info("backend monitor started", slog.Duration("interval", m.interval))

	m.probe(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("backend monitor stopped")
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *BackendMonitor) probe(ctx context.Context) {
	if !m.breaker.AllowRequest() {
		m.setHealthy(false)
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.api.Statistics(probeCtx); err != nil {
		m.breaker.RecordFailure()
		m.setHealthy(false)
		m.logger.Warn("backend probe failed", slog.String("error", err.Error()))
		return
	}

	m.breaker.RecordSuccess()
	m.setHealthy(true)
}

func (m *BackendMonitor) setHealthy(up bool) {
	was := m.healthy.Swap(up)
	metrics.SetBackendUp(up)
	if was != up {
		m.logger.Info("backend availability changed", slog.Bool("up", up))
	}
}
