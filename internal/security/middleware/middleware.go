package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/security"
	"github.com/yourorg/sanctuaryconsole/internal/session"
)

type sidContextKey struct{}

// SessionMiddleware resolves the browser cookie into a session and attaches
// it to the request context. Requests with no, invalid, or unknown cookies
// proceed anonymously; the gate decides what they may reach.
func SessionMiddleware(store *session.Store, codec *session.CookieCodec, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := codec.ReadSID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Current(r.Context(), sid)
			if err != nil {
				// Stale or forged cookie: drop it and continue anonymously.
				codec.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.WithSession(r.Context(), sess)
			ctx = context.WithValue(ctx, sidContextKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GateMiddleware applies the authorization gate to every navigation.
func GateMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := domain.SessionFromContext(r.Context())
			decision := security.CanAccessRoute(sess, r.URL.Path)
			if !decision.Allowed {
				if sess != nil {
					log.Warn("route access denied",
						slog.String("path", r.URL.Path),
						slog.String("user_id", sess.UserID),
						slog.String("role", string(sess.Role)),
					)
				}
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SIDFromContext returns the session id attached by SessionMiddleware, if
// any.
func SIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(sidContextKey{}).(string); ok {
		return sid
	}
	return ""
}
