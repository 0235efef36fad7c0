package domain

import (
	"context"
	"time"
)

// Role is an authorization role returned by the backend
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleCaretaker Role = "CARETAKER"
)

// Session is the authenticated identity and credential held by the console
// on behalf of a browser. A session is either fully populated or absent;
// no field is ever set without the others.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// SessionRepository persists session snapshots so they survive a process
// restart. The backing store applies the TTL; a missing key reads as
// ErrNoSession.
type SessionRepository interface {
	Save(ctx context.Context, sid string, session *Session, ttl time.Duration) error
	Get(ctx context.Context, sid string) (*Session, error)
	Delete(ctx context.Context, sid string) error
}

type sessionContextKey struct{}

// WithSession attaches the current session to the context for downstream
// consumers (authorization gate, request client).
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session carried by the context, or nil when
// the request is anonymous.
func SessionFromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionContextKey{}).(*Session); ok {
		return s
	}
	return nil
}
