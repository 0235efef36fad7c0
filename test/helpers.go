package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourorg/sanctuaryconsole/internal/apiclient"
	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/handler"
	"github.com/yourorg/sanctuaryconsole/internal/infrastructure/logger"
	"github.com/yourorg/sanctuaryconsole/internal/observability/metrics"
	"github.com/yourorg/sanctuaryconsole/internal/security/audit"
	"github.com/yourorg/sanctuaryconsole/internal/security/middleware"
	"github.com/yourorg/sanctuaryconsole/internal/security/ratelimit"
	"github.com/yourorg/sanctuaryconsole/internal/session"
)

// memSessionRepo keeps sessions in memory so tests need no Redis.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Save(_ context.Context, sid string, sess *domain.Session, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *sess
	r.sessions[sid] = &copied
	return nil
}

func (r *memSessionRepo) Get(_ context.Context, sid string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sid]
	if !ok {
		return nil, domain.ErrNoSession
	}
	copied := *sess
	return &copied, nil
}

func (r *memSessionRepo) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	return nil
}

// FakeBackend serves a minimal sanctuary REST API with fixed data. Two
// accounts exist up front: warden/secret (MANAGER, user u-1) and kim/secret
// (CARETAKER, user u-2, linked to caretaker c-1). Registration adds more.
type FakeBackend struct {
	Server  *httptest.Server
	revoked atomic.Bool

	mu       sync.Mutex
	accounts map[string]fakeAccount
	nextUser int
}

type fakeAccount struct {
	password string
	result   domain.AuthResult
}

// RevokeTokens makes every subsequent authenticated call fail with 401, as
// if the issued credentials had expired server-side.
func (b *FakeBackend) RevokeTokens() {
	b.revoked.Store(true)
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	backend := &FakeBackend{
		accounts: map[string]fakeAccount{
			"warden": {password: "secret", result: domain.AuthResult{Token: "tok-manager", UserID: "u-1", Username: "warden", Role: domain.RoleManager}},
			"kim":    {password: "secret", result: domain.AuthResult{Token: "tok-caretaker", UserID: "u-2", Username: "kim", Role: domain.RoleCaretaker}},
		},
		nextUser: 9,
	}

	animals := []domain.Animal{
		{ID: "SAV001", Name: "Zuri", Species: "Lion", HabitatID: "h-1", HealthStatus: domain.HealthHealthy, CaretakerID: "c-1"},
		{ID: "SAV002", Name: "Koda", Species: "Bear", HabitatID: "h-2", HealthStatus: domain.HealthSick, CaretakerID: "c-2"},
	}
	habitats := []domain.Habitat{
		{ID: "h-1", Name: "Savanna", Type: "SAVANNA", Climate: "Tropical", Area: 120.5},
		{ID: "h-2", Name: "Forest", Type: "FOREST", Climate: "Temperate", Area: 80},
	}
	caretakers := []domain.Caretaker{
		{ID: "c-1", Name: "Kim Okafor", Email: "kim@sanctuary.example", Specialization: "Large Mammals", UserID: "u-2"},
		{ID: "c-2", Name: "Ana Reyes", Email: "ana@sanctuary.example", Specialization: "Birds", UserID: "u-3"},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)

		backend.mu.Lock()
		account, ok := backend.accounts[creds["username"]]
		backend.mu.Unlock()
		if !ok || account.password != creds["password"] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, account.result)
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)

		backend.mu.Lock()
		defer backend.mu.Unlock()
		if _, exists := backend.accounts[req.Username]; exists {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "username taken"})
			return
		}
		result := domain.AuthResult{
			Token:    "tok-" + req.Username,
			UserID:   fmt.Sprintf("u-%d", backend.nextUser),
			Username: req.Username,
			Role:     req.Role,
		}
		backend.nextUser++
		backend.accounts[req.Username] = fakeAccount{password: req.Password, result: result}
		writeJSON(w, http.StatusOK, result)
	})

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if backend.revoked.Load() || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return false
		}
		return true
	}

	mux.HandleFunc("GET /api/animals", func(w http.ResponseWriter, r *http.Request) {
		if requireBearer(w, r) {
			writeJSON(w, http.StatusOK, animals)
		}
	})
	mux.HandleFunc("GET /api/animals/caretaker/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var scoped []domain.Animal
		for _, a := range animals {
			if a.CaretakerID == r.PathValue("id") {
				scoped = append(scoped, a)
			}
		}
		writeJSON(w, http.StatusOK, scoped)
	})
	mux.HandleFunc("GET /api/habitats", func(w http.ResponseWriter, r *http.Request) {
		if requireBearer(w, r) {
			writeJSON(w, http.StatusOK, habitats)
		}
	})
	mux.HandleFunc("GET /api/caretakers", func(w http.ResponseWriter, r *http.Request) {
		if requireBearer(w, r) {
			writeJSON(w, http.StatusOK, caretakers)
		}
	})
	mux.HandleFunc("GET /api/caretakers/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		for _, c := range caretakers {
			if c.UserID == r.PathValue("userId") {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	mux.HandleFunc("GET /api/home/statistics", func(w http.ResponseWriter, r *http.Request) {
		if requireBearer(w, r) {
			writeJSON(w, http.StatusOK, domain.Statistics{TotalAnimals: 2, TotalHabitats: 2, TotalCaretakers: 2})
		}
	})

	backend.Server = httptest.NewServer(mux)
	t.Cleanup(backend.Server.Close)
	return backend
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// TestConsole is a fully wired console server backed by the fake API.
type TestConsole struct {
	Server  *httptest.Server
	Backend *FakeBackend
	Client  *http.Client
}

// NewTestConsole wires the full middleware chain and handler set against
// a fake backend, with sessions held in memory.
func NewTestConsole(t *testing.T) *TestConsole {
	t.Helper()

	log := logger.NewLogger("error")
	backend := NewFakeBackend(t)

	api := apiclient.New(backend.Server.URL+"/api", log)
	sessions := session.NewStore(api, newMemSessionRepo(), time.Hour, log)
	codec := session.NewCookieCodec("test-session-secret", false, time.Hour)
	flashes := flash.NewStore(time.Minute)
	auditLogger := audit.NewLogger(log)
	limiter := ratelimit.NewLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)

	base := &handler.Base{
		API:      api,
		Sessions: sessions,
		Codec:    codec,
		Flashes:  flashes,
		Audit:    auditLogger,
		Validate: validator.New(),
		Logger:   log,
	}

	mux := handler.Routes(
		handler.NewAuthHandler(base, limiter, 100),
		handler.NewDashboardHandler(base),
		handler.NewAnimalHandler(base),
		handler.NewHabitatHandler(base),
		handler.NewCaretakerHandler(base),
		handler.NewHealthHandler(nil, nil, log),
		handler.NewStatsFeedHandler(api, log, nil, 50*time.Millisecond),
	)

	// Same ordering as the production chain in cmd/server.
	csrf := &middleware.CSRF{}
	chain := metrics.HTTPMetricsMiddleware(
		csrf.EnsureToken(
			middleware.SessionMiddleware(sessions, codec, log)(
				middleware.GateMiddleware(log)(
					csrf.Require(mux),
				),
			),
		),
	)

	server := httptest.NewServer(chain)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}

	return &TestConsole{
		Server:  server,
		Backend: backend,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// CSRFToken primes the CSRF cookie with a GET and returns its value.
func (c *TestConsole) CSRFToken(t *testing.T) string {
	t.Helper()

	resp, err := c.Client.Get(c.Server.URL + "/login")
	if err != nil {
		t.Fatalf("prime csrf cookie: %v", err)
	}
	resp.Body.Close()

	u, _ := url.Parse(c.Server.URL)
	for _, cookie := range c.Client.Jar.Cookies(u) {
		if cookie.Name == "sanctuary_csrf" {
			return cookie.Value
		}
	}
	t.Fatal("csrf cookie was not set")
	return ""
}

// Login posts credentials through the real login flow and leaves the
// session cookie in the client's jar.
func (c *TestConsole) Login(t *testing.T, username, password string) *http.Response {
	t.Helper()

	token := c.CSRFToken(t)
	form := url.Values{
		"username":   {username},
		"password":   {password},
		"csrf_token": {token},
	}
	resp, err := c.Client.PostForm(c.Server.URL+"/login", form)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	return resp
}

// PostForm sends a form POST with the CSRF token attached.
func (c *TestConsole) PostForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()

	token := c.CSRFToken(t)
	form.Set("csrf_token", token)
	resp, err := c.Client.PostForm(c.Server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// AssertStatusCode fails the test when the response status differs.
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertRedirect fails the test unless the response redirects to location.
func AssertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther && resp.StatusCode != http.StatusFound {
		t.Fatalf("Expected redirect, got status %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Errorf("Expected redirect to %s, got %s", location, got)
	}
}
