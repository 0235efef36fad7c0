package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourorg/sanctuaryconsole/internal/apiclient"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/handler"
	"github.com/yourorg/sanctuaryconsole/internal/infrastructure/logger"
	"github.com/yourorg/sanctuaryconsole/internal/infrastructure/redis"
	"github.com/yourorg/sanctuaryconsole/internal/observability/metrics"
	"github.com/yourorg/sanctuaryconsole/internal/observability/tracing"
	"github.com/yourorg/sanctuaryconsole/internal/reliability/retry"
	"github.com/yourorg/sanctuaryconsole/internal/security/audit"
	"github.com/yourorg/sanctuaryconsole/internal/security/middleware"
	"github.com/yourorg/sanctuaryconsole/internal/security/ratelimit"
	"github.com/yourorg/sanctuaryconsole/internal/session"
	"github.com/yourorg/sanctuaryconsole/internal/worker"
	"github.com/yourorg/sanctuaryconsole/pkg/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting sanctuary console", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing (no-op without an OTLP endpoint configured)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shutdownTracing, err := tracing.Init(ctx, log, "sanctuaryconsole", cfg.Environment)
	if err != nil {
		log.Warn("tracing init failed", slog.String("error", err.Error()))
	}

	// 4. Connect Redis for session persistence. Startup retries; request
	// paths never do.
	redisClient, err := retry.Do(ctx, retry.DefaultConfig(), log, "redis connect",
		func(ctx context.Context) (*redis.Client, error) {
			return redis.NewClient(cfg.RedisURL)
		})
	if err != nil {
		log.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	// 5. Backend client and session store
	api := apiclient.New(cfg.APIBaseURL, log)
	sessionRepo := session.NewRedisRepository(redisClient)
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(api, sessionRepo, sessionTTL, log)
	codec := session.NewCookieCodec(cfg.SessionSecret, cfg.Production(), sessionTTL)

	// 6. Supporting components
	flashes := flash.NewStore(5 * time.Minute)
	auditLogger := audit.NewLogger(log)
	rateLimiter := ratelimit.NewLimiter(100, time.Minute)
	validate := validator.New()

	// 7. Page handlers
	base := &handler.Base{
		API:      api,
		Sessions: sessions,
		Codec:    codec,
		Flashes:  flashes,
		Audit:    auditLogger,
		Validate: validate,
		Logger:   log,
	}
	monitor := worker.NewBackendMonitor(api, log, time.Duration(cfg.MonitorIntervalSeconds)*time.Second)

	authHandler := handler.NewAuthHandler(base, rateLimiter, cfg.LoginRateLimit)
	dashboardHandler := handler.NewDashboardHandler(base)
	animalHandler := handler.NewAnimalHandler(base)
	habitatHandler := handler.NewHabitatHandler(base)
	caretakerHandler := handler.NewCaretakerHandler(base)
	healthHandler := handler.NewHealthHandler(redisClient, monitor, log)
	statsFeed := handler.NewStatsFeedHandler(api, log, cfg.WSAllowedOrigins, 10*time.Second)

	mux := handler.Routes(authHandler, dashboardHandler, animalHandler, habitatHandler, caretakerHandler, healthHandler, statsFeed)

	// 8. Middleware chain: request ID -> metrics -> CSRF token -> session ->
	// navigation gate -> CSRF enforcement on mutations
	csrf := &middleware.CSRF{Production: cfg.Production()}
	rootHandler := withRequestID(
		metrics.HTTPMetricsMiddleware(
			csrf.EnsureToken(
				middleware.SessionMiddleware(sessions, codec, log)(
					middleware.GateMiddleware(log)(
						csrf.Require(mux),
					),
				),
			),
		),
		log,
	)

	// 9. Start the backend monitor in the background
	go monitor.Start(ctx)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("backend", cfg.APIBaseURL),
		slog.Int("login_rate_limit", cfg.LoginRateLimit),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	rateLimiter.Stop()
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}
	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
