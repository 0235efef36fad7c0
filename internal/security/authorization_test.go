package security

import (
	"testing"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

func manager() *domain.Session {
	return &domain.Session{UserID: "u1", Username: "alice", Role: domain.RoleManager, Token: "t"}
}

func caretaker() *domain.Session {
	return &domain.Session{UserID: "u2", Username: "bob", Role: domain.RoleCaretaker, Token: "t"}
}

func TestCanAccessRoutePublic(t *testing.T) {
	for _, route := range []string{"/login", "/register", "/healthz", "/readyz", "/metrics", "/static/app.css", "/favicon.ico"} {
		d := CanAccessRoute(nil, route)
		if !d.Allowed {
			t.Errorf("route %s should be public, got redirect to %s", route, d.RedirectTo)
		}
	}
}

func TestCanAccessRouteAnonymousRedirectsWithFrom(t *testing.T) {
	d := CanAccessRoute(nil, "/animals")
	if d.Allowed {
		t.Fatal("anonymous access to /animals should be denied")
	}
	if d.RedirectTo != "/login?from=%2Fanimals" {
		t.Errorf("expected login redirect with from target, got %s", d.RedirectTo)
	}
}

func TestCanAccessRouteCaretakerDeniedManagerRoute(t *testing.T) {
	for _, route := range []string{"/caretakers", "/caretakers/new", "/caretakers/c1/edit"} {
		d := CanAccessRoute(caretaker(), route)
		if d.Allowed {
			t.Errorf("caretaker should not access %s", route)
		}
		if d.RedirectTo != DefaultRoute {
			t.Errorf("role denial should redirect to %s, got %s", DefaultRoute, d.RedirectTo)
		}
	}
}

func TestCanAccessRouteManagerAllowedEverywhere(t *testing.T) {
	for _, route := range []string{"/dashboard", "/animals", "/habitats", "/caretakers", "/caretakers/c1/edit"} {
		if d := CanAccessRoute(manager(), route); !d.Allowed {
			t.Errorf("manager should access %s, got redirect to %s", route, d.RedirectTo)
		}
	}
}

func TestCanAccessRouteCaretakerAllowedSharedRoutes(t *testing.T) {
	for _, route := range []string{"/dashboard", "/animals", "/habitats"} {
		if d := CanAccessRoute(caretaker(), route); !d.Allowed {
			t.Errorf("caretaker should access %s", route)
		}
	}
}

func TestCanPerformMutation(t *testing.T) {
	if CanPerformMutation(nil) {
		t.Error("anonymous must not mutate")
	}
	if CanPerformMutation(caretaker()) {
		t.Error("caretaker must not mutate")
	}
	if !CanPerformMutation(manager()) {
		t.Error("manager must mutate")
	}
}

func TestSafeReturnTarget(t *testing.T) {
	cases := map[string]string{
		"":                    DefaultRoute,
		"/animals":            "/animals",
		"/animals?page=2":     "/animals?page=2",
		"//evil.example.com":  DefaultRoute,
		"https://evil.com/x":  DefaultRoute,
		"javascript:alert(1)": DefaultRoute,
	}
	for from, want := range cases {
		if got := SafeReturnTarget(from); got != want {
			t.Errorf("SafeReturnTarget(%q) = %q, want %q", from, got, want)
		}
	}
}
