package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/security/audit"
	"github.com/yourorg/sanctuaryconsole/internal/security/middleware"
	"github.com/yourorg/sanctuaryconsole/internal/session"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
)

// Base bundles the dependencies shared by every page handler.
type Base struct {
	API      domain.SanctuaryAPI
	Sessions *session.Store
	Codec    *session.CookieCodec
	Flashes  *flash.Store
	Audit    *audit.Logger
	Validate *validator.Validate
	Logger   *slog.Logger
}

// pageContext assembles the per-request view state: the session from the
// context, the pending flash message (consumed here, read-once), and the
// CSRF token for forms.
func (b *Base) pageContext(r *http.Request) ui.PageContext {
	pc := ui.PageContext{
		Session:   domain.SessionFromContext(r.Context()),
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
	}
	if sid := middleware.SIDFromContext(r.Context()); sid != "" {
		if msg, ok := b.Flashes.Pop(sid); ok {
			pc.Flash = &msg
		}
	}
	return pc
}

// flashAndRedirect queues a one-shot message and sends the browser on.
func (b *Base) flashAndRedirect(w http.ResponseWriter, r *http.Request, kind flash.Kind, text, target string) {
	b.Flashes.Put(middleware.SIDFromContext(r.Context()), kind, text)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// expireSession destroys the server-side session and clears the cookie
// after the backend rejected the stored credential.
func (b *Base) expireSession(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SIDFromContext(r.Context())
	if sid != "" {
		_ = b.Sessions.Logout(r.Context(), sid)
	}
	b.Codec.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleServiceError recovers a backend failure at the view boundary. A 401
// means the credential expired and the session is torn down; everything
// else becomes a flash message on the fallback page. Nothing propagates.
func (b *Base) handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, domain.ErrUnauthorized) {
		b.Logger.Info("session credential rejected by backend", slog.String("path", r.URL.Path))
		b.expireSession(w, r)
		return
	}

	b.Logger.Error("backend call failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	b.flashAndRedirect(w, r, flash.KindError, "Something went wrong talking to the sanctuary service. Please try again later.", fallback)
}

// validationMessage flattens validator output into one user-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Please check the " + verrs[0].Field() + " field and try again."
	}
	return "Please check the form and try again."
}
