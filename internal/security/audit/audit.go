package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, action, resource, resourceID, status, details string) {
	userID, role := "", ""
	if sess := domain.SessionFromContext(ctx); sess != nil {
		userID = sess.UserID
		role = string(sess.Role)
	}

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("user_id", userID),
		slog.String("role", role),
		slog.String("status", status),
		slog.String("details", details),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogCreate(ctx context.Context, resource, resourceID, status, details string) {
	al.LogAction(ctx, "create", resource, resourceID, status, details)
}

func (al *Logger) LogUpdate(ctx context.Context, resource, resourceID, status, details string) {
	al.LogAction(ctx, "update", resource, resourceID, status, details)
}

func (al *Logger) LogDeletion(ctx context.Context, resource, resourceID, status, details string) {
	al.LogAction(ctx, "delete", resource, resourceID, status, details)
}

func (al *Logger) LogDenied(ctx context.Context, reason string) {
	al.LogAction(ctx, "access_denied", "route", "", "denied", reason)
}

func (al *Logger) LogLogin(ctx context.Context, username, status string) {
	al.LogAction(ctx, "login", "session", username, status, "")
}

func (al *Logger) LogLogout(ctx context.Context) {
	al.LogAction(ctx, "logout", "session", "", "ok", "")
}
