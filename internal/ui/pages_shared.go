// Package ui renders the console's HTML. Pages are pure functions from
// view data to nodes; handlers own all fetching and decide what to render.
package ui

import (
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
)

// PageContext carries the per-request state every page needs: who is
// viewing, any pending flash message, and the CSRF token for forms.
type PageContext struct {
	Session   *domain.Session
	Flash     *flash.Message
	CSRFToken string
}

type navItem struct {
	Label       string
	Href        string
	Key         string
	ManagerOnly bool
}

var navItems = []navItem{
	{Label: "Dashboard", Href: "/dashboard", Key: "dashboard"},
	{Label: "Animals", Href: "/animals", Key: "animals"},
	{Label: "Habitats", Href: "/habitats", Key: "habitats"},
	{Label: "Caretakers", Href: "/caretakers", Key: "caretakers", ManagerOnly: true},
}

func appPage(title, active string, pc PageContext, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		if item.ManagerOnly && (pc.Session == nil || pc.Session.Role != domain.RoleManager) {
			continue
		}
		className := "app-nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(Href(item.Href), Class(className), Text(item.Label)))
	}

	username := "unknown"
	roleLabel := ""
	if pc.Session != nil {
		username = pc.Session.Username
		roleLabel = string(pc.Session.Role)
	}

	return HTML(
		Lang("en"),
		pageHead(title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Sanctuary Console")),
						P(Class(mutedClass()+" mb-0"), Text("Animals, habitats and staff")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(title)),
						Div(
							P(Class(mutedClass()+" mb-2"), Text("Signed in as "+username+" ("+roleLabel+")")),
							Form(
								Method("post"),
								Action("/logout"),
								csrfField(pc.CSRFToken),
								Button(Type("submit"), Class("btn btn-sm"), Text("Sign out")),
							),
						),
					),
					Div(Class("content"), flashBanner(pc.Flash), Group(body)),
				),
			),
		),
	)
}

func pageHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | Sanctuary Console")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
		Link(Rel("stylesheet"), Href("/static/app.css")),
	)
}

func flashBanner(msg *flash.Message) Node {
	if msg == nil {
		return nil
	}
	className := "flash mb-3"
	switch msg.Kind {
	case flash.KindError:
		className += " flash-error"
	case flash.KindSuccess:
		className += " flash-success"
	}
	return Div(Class(className), Text(msg.Text))
}

// ErrorPage is a standalone page for failures that cannot render the app
// shell, CSRF rejections included.
func ErrorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		pageHead(title),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"),
				H1(Text(title)),
				P(Class(mutedClass()), Text(message)),
				A(Href("/dashboard"), Class(secondaryButtonClass()), Text("Back to dashboard")),
			),
		),
	)
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func dangerButtonClass() string {
	return "btn btn-danger btn-sm"
}

func pageToolbar(newHref, newLabel string, canMutate bool) Node {
	cta := Node(nil)
	if canMutate {
		cta = A(Href(newHref), Class(primaryButtonClass()), Text(newLabel))
	}
	return Div(
		Class(cardClass("toolbar")),
		Div(
			Class("d-flex flex-justify-between flex-items-center flex-wrap gap-2"),
			P(Class(mutedClass()+" mb-0"), Text("Browse and manage sanctuary records.")),
			cta,
		),
	)
}

func emptyStateCard(message, ctaLabel, ctaHref string, canMutate bool) Node {
	cta := Node(nil)
	if canMutate && ctaLabel != "" && ctaHref != "" {
		cta = A(Href(ctaHref), Class(primaryButtonClass()), Text(ctaLabel))
	}
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
		cta,
	)
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

func csrfField(token string) Node {
	return Input(Type("hidden"), Name("csrf_token"), Value(token))
}

// deleteForm renders an inline POST form for a guarded delete action.
func deleteForm(action, csrfToken string) Node {
	return Form(
		Method("post"),
		Action(action),
		Class("d-inline"),
		csrfField(csrfToken),
		Button(Type("submit"), Class(dangerButtonClass()), Text("Delete")),
	)
}

func fieldRow(labelText string, control Node) Node {
	return Div(
		Class("form-group"),
		Label(Class("d-block mb-1"), Text(labelText)),
		control,
	)
}

func textField(name, value, placeholder string, required bool) Node {
	attrs := []Node{Type("text"), Name(name), Value(value), Class("form-control"), Placeholder(placeholder)}
	if required {
		attrs = append(attrs, Required())
	}
	return Input(attrs...)
}

func selectField(name, selected string, options []selectOption) Node {
	nodes := make([]Node, 0, len(options)+1)
	nodes = append(nodes, Name(name), Class("form-select"))
	for _, opt := range options {
		optNodes := []Node{Value(opt.Value), Text(opt.Label)}
		if opt.Value == selected {
			optNodes = append(optNodes, Selected())
		}
		nodes = append(nodes, Option(optNodes...))
	}
	return Select(nodes...)
}

type selectOption struct {
	Value string
	Label string
}

func healthTone(status domain.HealthStatus) string {
	switch status {
	case domain.HealthHealthy:
		return "success"
	case domain.HealthSick:
		return "attention"
	case domain.HealthCritical:
		return "danger"
	}
	return ""
}
