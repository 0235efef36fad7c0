package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/security"
	"github.com/yourorg/sanctuaryconsole/internal/security/middleware"
	"github.com/yourorg/sanctuaryconsole/internal/security/ratelimit"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
)

// AuthHandler serves the login, registration, and logout flows.
type AuthHandler struct {
	*Base
	Limiter       *ratelimit.Limiter
	LoginAttempts int
}

func NewAuthHandler(base *Base, limiter *ratelimit.Limiter, loginAttempts int) *AuthHandler {
	if loginAttempts <= 0 {
		loginAttempts = 10
	}
	return &AuthHandler{Base: base, Limiter: limiter, LoginAttempts: loginAttempts}
}

type loginForm struct {
	Username string `validate:"required,min=1,max=100"`
	Password string `validate:"required,min=1"`
}

type registerForm struct {
	Username string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=MANAGER CARETAKER"`
}

// ShowLogin handles GET /login.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if domain.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, security.DefaultRoute, http.StatusSeeOther)
		return
	}
	from := r.URL.Query().Get("from")
	ui.RenderHTML(w, http.StatusOK, ui.LoginPage("", from, middleware.CSRFTokenFromContext(r.Context())))
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.AllowStrict("login:"+clientIP(r), h.LoginAttempts, time.Minute) {
		ui.RenderHTML(w, http.StatusTooManyRequests, ui.LoginPage("Too many attempts. Wait a minute and try again.", r.FormValue("from"), middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	form := loginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	from := r.FormValue("from")
	if err := h.Validate.Struct(form); err != nil {
		ui.RenderHTML(w, http.StatusBadRequest, ui.LoginPage(validationMessage(err), from, middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	sess, sid, err := h.Sessions.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.Audit.LogLogin(r.Context(), form.Username, "denied")
			ui.RenderHTML(w, http.StatusUnauthorized, ui.LoginPage("Invalid username or password.", from, middleware.CSRFTokenFromContext(r.Context())))
			return
		}
		h.Logger.Error("login failed", slog.String("error", err.Error()))
		ui.RenderHTML(w, http.StatusBadGateway, ui.LoginPage("The sanctuary service is unavailable. Please try again later.", from, middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	cookieValue, err := h.Codec.Issue(sid)
	if err != nil {
		h.Logger.Error("cookie issue failed", slog.String("error", err.Error()))
		ui.RenderHTML(w, http.StatusInternalServerError, ui.LoginPage("Something went wrong. Please try again.", from, middleware.CSRFTokenFromContext(r.Context())))
		return
	}
	h.Codec.SetCookie(w, cookieValue)
	h.Audit.LogLogin(domain.WithSession(r.Context(), sess), form.Username, "ok")

	http.Redirect(w, r, security.SafeReturnTarget(from), http.StatusSeeOther)
}

// ShowRegister handles GET /register.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if domain.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, security.DefaultRoute, http.StatusSeeOther)
		return
	}
	ui.RenderHTML(w, http.StatusOK, ui.RegisterPage("", "", "", "", middleware.CSRFTokenFromContext(r.Context())))
}

// Register handles POST /register. A successful registration chains
// straight into a login so the user lands on the dashboard signed in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow("register:" + clientIP(r)) {
		ui.RenderHTML(w, http.StatusTooManyRequests, ui.RegisterPage("Too many attempts. Wait a minute and try again.", "", "", "", middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	form := registerForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	if err := h.Validate.Struct(form); err != nil {
		ui.RenderHTML(w, http.StatusBadRequest, ui.RegisterPage(validationMessage(err), form.Username, form.Email, form.Role, middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	sess, sid, err := h.Sessions.Register(r.Context(), form.Username, form.Password, form.Email, domain.Role(form.Role))
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationFailed) {
			ui.RenderHTML(w, http.StatusConflict, ui.RegisterPage("Registration failed. That username may already be taken.", form.Username, form.Email, form.Role, middleware.CSRFTokenFromContext(r.Context())))
			return
		}
		h.Logger.Error("registration failed", slog.String("error", err.Error()))
		ui.RenderHTML(w, http.StatusBadGateway, ui.RegisterPage("The sanctuary service is unavailable. Please try again later.", form.Username, form.Email, form.Role, middleware.CSRFTokenFromContext(r.Context())))
		return
	}

	cookieValue, err := h.Codec.Issue(sid)
	if err != nil {
		h.Logger.Error("cookie issue failed", slog.String("error", err.Error()))
		http.Redirect(w, r, security.LoginRoute, http.StatusSeeOther)
		return
	}
	h.Codec.SetCookie(w, cookieValue)
	h.Audit.LogLogin(domain.WithSession(r.Context(), sess), form.Username, "registered")

	http.Redirect(w, r, security.DefaultRoute, http.StatusSeeOther)
}

// Logout handles POST /logout. Idempotent: always clears the cookie and
// lands on the login page, whatever state the session was in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SIDFromContext(r.Context())
	if sid != "" {
		if err := h.Sessions.Logout(r.Context(), sid); err != nil {
			h.Logger.Warn("logout cleanup failed", slog.String("error", err.Error()))
		}
		h.Audit.LogLogout(r.Context())
	}
	h.Codec.ClearCookie(w)
	http.Redirect(w, r, security.LoginRoute, http.StatusSeeOther)
}

// clientIP keys the rate limiter. Only the last X-Forwarded-For hop is
// used: it is the one appended by our own proxy, while earlier entries are
// whatever the client chose to send.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
