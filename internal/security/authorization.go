package security

import (
	"net/url"
	"strings"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// LoginRoute is where unauthenticated requests are sent, with the original
// target remembered in the "from" query parameter.
const LoginRoute = "/login"

// DefaultRoute is the landing page for authenticated users and the fallback
// for role-denied navigation.
const DefaultRoute = "/dashboard"

// Decision is the outcome of a route access check. When Allowed is false,
// RedirectTo carries the target the request must be sent to instead.
// Decisions never error; an unauthorized attempt always resolves to a
// redirect.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// publicPrefixes need no session at all.
var publicPrefixes = []string{
	"/login",
	"/register",
	"/healthz",
	"/readyz",
	"/metrics",
	"/static/",
	"/favicon.ico",
}

// managerPrefixes require the MANAGER role on top of authentication.
var managerPrefixes = []string{
	"/caretakers",
}

// CanAccessRoute decides route access for the given session. It is a pure
// function evaluated freshly on every navigation: anonymous requests to
// protected routes redirect to login remembering the original location,
// authenticated requests to MANAGER routes redirect to the default landing
// route unless the role matches.
func CanAccessRoute(session *domain.Session, route string) Decision {
	for _, prefix := range publicPrefixes {
		if matchesPrefix(route, prefix) {
			return allow()
		}
	}

	if session == nil {
		return redirect(LoginRoute + "?from=" + url.QueryEscape(route))
	}

	for _, prefix := range managerPrefixes {
		if matchesPrefix(route, prefix) && session.Role != domain.RoleManager {
			return redirect(DefaultRoute)
		}
	}

	return allow()
}

// CanPerformMutation reports whether the session may create, update, or
// delete entities. Only managers mutate.
func CanPerformMutation(session *domain.Session) bool {
	return session != nil && session.Role == domain.RoleManager
}

// SafeReturnTarget validates a remembered "from" location before login
// redirects back to it. Only absolute in-app paths are honored.
func SafeReturnTarget(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return DefaultRoute
	}
	return from
}

func matchesPrefix(route, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(route, prefix)
	}
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}
