package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// StatsFeedHandler streams dashboard statistics over a WebSocket so the
// page keeps its totals current without polling reloads.
type StatsFeedHandler struct {
	api            domain.SanctuaryAPI
	logger         *slog.Logger
	allowedOrigins []string
	interval       time.Duration
}

func NewStatsFeedHandler(api domain.SanctuaryAPI, logger *slog.Logger, allowedOrigins []string, interval time.Duration) *StatsFeedHandler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &StatsFeedHandler{
		api:            api,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		interval:       interval,
	}
}

// upgrader is initialized per-request to use instance's allowed origins
func (h *StatsFeedHandler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// ServeHTTP handles GET /ws/statistics. The feed requires a session: the
// outbound statistics calls carry the viewer's own credential.
func (h *StatsFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if domain.SessionFromContext(r.Context()) == nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	upgrader := h.getUpgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	ctx := r.Context()

	// Drain client frames so close messages are noticed.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	send := func() bool {
		stats, err := h.api.Statistics(ctx)
		if err != nil {
			h.logger.Warn("statistics fetch failed for feed", slog.String("error", err.Error()))
			return true
		}
		ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := ws.WriteJSON(stats); err != nil {
			return false
		}
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
