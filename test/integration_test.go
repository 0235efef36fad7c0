package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// TestHealthEndpoint verifies the liveness check is public and healthy.
func TestHealthEndpoint(t *testing.T) {
	console := NewTestConsole(t)

	resp, err := console.Client.Get(console.Server.URL + "/healthz")
	if err != nil {
		t.Fatalf("Health check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

// TestReadinessWithoutRedis verifies readiness degrades when the session
// store backend is not configured.
func TestReadinessWithoutRedis(t *testing.T) {
	console := NewTestConsole(t)

	resp, err := console.Client.Get(console.Server.URL + "/readyz")
	if err != nil {
		t.Fatalf("Readiness check failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusServiceUnavailable)
}

// TestMetricsEndpoint verifies Prometheus metrics are exposed publicly.
func TestMetricsEndpoint(t *testing.T) {
	console := NewTestConsole(t)

	resp, err := console.Client.Get(console.Server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics endpoint failed: %v", err)
	}
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "# HELP") {
		t.Errorf("Expected Prometheus exposition format, got: %.100s", string(body))
	}
}

// TestAnonymousRedirectedToLogin verifies protected pages remember where
// the visitor was headed.
func TestAnonymousRedirectedToLogin(t *testing.T) {
	console := NewTestConsole(t)

	resp, err := console.Client.Get(console.Server.URL + "/animals")
	if err != nil {
		t.Fatalf("GET /animals: %v", err)
	}
	defer resp.Body.Close()

	AssertRedirect(t, resp, "/login?from=%2Fanimals")
}

// TestLoginFlow verifies a manager can log in and reach the dashboard.
func TestLoginFlow(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	defer resp.Body.Close()
	AssertRedirect(t, resp, "/dashboard")

	page, err := console.Client.Get(console.Server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	defer page.Body.Close()

	AssertStatusCode(t, page, http.StatusOK)

	body, _ := io.ReadAll(page.Body)
	if !strings.Contains(string(body), "warden") {
		t.Errorf("Expected dashboard to greet the logged-in user")
	}
}

// TestLoginRemembersReturnTarget verifies the from parameter steers the
// post-login redirect.
func TestLoginRemembersReturnTarget(t *testing.T) {
	console := NewTestConsole(t)

	token := console.CSRFToken(t)
	form := url.Values{
		"username":   {"warden"},
		"password":   {"secret"},
		"from":       {"/habitats"},
		"csrf_token": {token},
	}
	resp, err := console.Client.PostForm(console.Server.URL+"/login", form)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	AssertRedirect(t, resp, "/habitats")
}

// TestLoginRejectsBadCredentials verifies a failed login re-renders the
// form with an error instead of redirecting.
func TestLoginRejectsBadCredentials(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "wrong")
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusUnauthorized)

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid username or password.") {
		t.Errorf("Expected credential error message in response")
	}
}

// TestCSRFRequiredOnMutations verifies POSTs without the token are refused.
func TestCSRFRequiredOnMutations(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	resp.Body.Close()

	noToken, err := console.Client.PostForm(console.Server.URL+"/logout", url.Values{})
	if err != nil {
		t.Fatalf("POST /logout: %v", err)
	}
	defer noToken.Body.Close()

	AssertStatusCode(t, noToken, http.StatusForbidden)
}

// TestCaretakerDeniedCaretakersPage verifies the manager-only section
// bounces caretakers back to the dashboard.
func TestCaretakerDeniedCaretakersPage(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "kim", "secret")
	resp.Body.Close()

	denied, err := console.Client.Get(console.Server.URL + "/caretakers")
	if err != nil {
		t.Fatalf("GET /caretakers: %v", err)
	}
	defer denied.Body.Close()

	AssertRedirect(t, denied, "/dashboard")
}

// TestCaretakerSeesOnlyAssignedAnimals verifies the animal list is scoped
// to the caretaker's own charges.
func TestCaretakerSeesOnlyAssignedAnimals(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "kim", "secret")
	resp.Body.Close()

	page, err := console.Client.Get(console.Server.URL + "/animals")
	if err != nil {
		t.Fatalf("GET /animals: %v", err)
	}
	defer page.Body.Close()

	AssertStatusCode(t, page, http.StatusOK)

	body, _ := io.ReadAll(page.Body)
	if !strings.Contains(string(body), "Zuri") {
		t.Errorf("Expected assigned animal Zuri in listing")
	}
	if strings.Contains(string(body), "Koda") {
		t.Errorf("Did not expect another caretaker's animal Koda in listing")
	}
}

// TestManagerSeesAllAnimals verifies the manager list is unscoped.
func TestManagerSeesAllAnimals(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	resp.Body.Close()

	page, err := console.Client.Get(console.Server.URL + "/animals")
	if err != nil {
		t.Fatalf("GET /animals: %v", err)
	}
	defer page.Body.Close()

	AssertStatusCode(t, page, http.StatusOK)

	body, _ := io.ReadAll(page.Body)
	for _, name := range []string{"Zuri", "Koda"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Expected animal %s in manager listing", name)
		}
	}
}

// TestLiveStatsFeedUpgrades verifies the websocket feed completes its
// upgrade through the full middleware chain and delivers statistics.
func TestLiveStatsFeedUpgrades(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(console.Server.URL, "http") + "/ws/statistics"
	dialer := websocket.Dialer{Jar: console.Client.Jar}
	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var stats domain.Statistics
	if err := conn.ReadJSON(&stats); err != nil {
		t.Fatalf("reading first statistics frame: %v", err)
	}
	if stats.TotalAnimals != 2 {
		t.Errorf("expected 2 animals in the feed, got %d", stats.TotalAnimals)
	}
}

// TestLiveStatsFeedRequiresSession verifies an anonymous dial is refused.
func TestLiveStatsFeedRequiresSession(t *testing.T) {
	console := NewTestConsole(t)

	wsURL := "ws" + strings.TrimPrefix(console.Server.URL, "http") + "/ws/statistics"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected the anonymous dial to fail")
	}
	if resp == nil || (resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusSeeOther) {
		t.Errorf("expected a 401 or gate redirect, got %+v", resp)
	}
}

// TestRegisterCaretakerRole verifies the role choice on the register form
// is honored: a caretaker registration logs in as CARETAKER and stays
// barred from the manager-only section.
func TestRegisterCaretakerRole(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.PostForm(t, "/register", url.Values{
		"username": {"newkeeper"},
		"email":    {"newkeeper@sanctuary.example"},
		"password": {"longenough1"},
		"role":     {string(domain.RoleCaretaker)},
	})
	resp.Body.Close()
	AssertRedirect(t, resp, "/dashboard")

	denied, err := console.Client.Get(console.Server.URL + "/caretakers")
	if err != nil {
		t.Fatalf("GET /caretakers: %v", err)
	}
	defer denied.Body.Close()
	AssertRedirect(t, denied, "/dashboard")
}

// TestRegisterRejectsUnknownRole verifies role values outside the form's
// choices fail validation instead of reaching the backend.
func TestRegisterRejectsUnknownRole(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.PostForm(t, "/register", url.Values{
		"username": {"sneaky"},
		"email":    {"sneaky@sanctuary.example"},
		"password": {"longenough1"},
		"role":     {"ADMIN"},
	})
	defer resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusBadRequest)
}

// TestExpiredCredentialEndsSession verifies a backend 401 on a page load
// destroys the session and sends the user back to login.
func TestExpiredCredentialEndsSession(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	resp.Body.Close()

	console.Backend.RevokeTokens()

	out, err := console.Client.Get(console.Server.URL + "/animals")
	if err != nil {
		t.Fatalf("GET /animals: %v", err)
	}
	out.Body.Close()
	AssertRedirect(t, out, "/login")

	// The cookie was cleared, so the next navigation is anonymous.
	after, err := console.Client.Get(console.Server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	defer after.Body.Close()
	AssertRedirect(t, after, "/login?from=%2Fdashboard")
}

// TestLogoutEndsSession verifies logout clears the session and subsequent
// navigation lands on the login page again.
func TestLogoutEndsSession(t *testing.T) {
	console := NewTestConsole(t)

	resp := console.Login(t, "warden", "secret")
	resp.Body.Close()

	out := console.PostForm(t, "/logout", url.Values{})
	out.Body.Close()
	AssertRedirect(t, out, "/login")

	after, err := console.Client.Get(console.Server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard after logout: %v", err)
	}
	defer after.Body.Close()

	AssertRedirect(t, after, "/login?from=%2Fdashboard")
}
