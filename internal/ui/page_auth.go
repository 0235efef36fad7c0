package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// LoginPage renders the sign-in form. The from field round-trips the
// originally requested location so a successful login can return there.
func LoginPage(errMsg, from, csrfToken string) Node {
	content := []Node{
		H1(Text("Sanctuary Console")),
		P(Class(mutedClass()), Text("Sign in to manage animals, habitats and staff.")),
		Form(
			Method("post"),
			Action("/login"),
			Class("login-form"),
			csrfField(csrfToken),
			Input(Type("hidden"), Name("from"), Value(from)),
			fieldRow("Username", textField("username", "", "Username", true)),
			fieldRow("Password", Input(Type("password"), Name("password"), Class("form-control"), Required())),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Sign In")),
		),
		P(Class(mutedClass()+" mt-3"),
			Text("New manager? "),
			A(Href("/register"), Text("Create an account")),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error mb-3"), Text(errMsg))}, content...)
	}

	return authShell("Sign in", content)
}

// RegisterPage renders the self-service registration form with a role
// choice. Caretaker identities registered here start without a caretaker
// record; a manager links one from the caretakers page.
func RegisterPage(errMsg, username, email, role, csrfToken string) Node {
	if role == "" {
		role = string(domain.RoleManager)
	}
	roleOptions := []selectOption{
		{Value: string(domain.RoleManager), Label: "Manager"},
		{Value: string(domain.RoleCaretaker), Label: "Caretaker"},
	}
	content := []Node{
		H1(Text("Sanctuary Console")),
		P(Class(mutedClass()), Text("Create an account.")),
		Form(
			Method("post"),
			Action("/register"),
			Class("login-form"),
			csrfField(csrfToken),
			fieldRow("Username", textField("username", username, "Username", true)),
			fieldRow("Email", Input(Type("email"), Name("email"), Value(email), Class("form-control"), Required())),
			fieldRow("Password", Input(Type("password"), Name("password"), Class("form-control"), Required())),
			fieldRow("Role", selectField("role", role, roleOptions)),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Register")),
		),
		P(Class(mutedClass()+" mt-3"),
			Text("Already have an account? "),
			A(Href("/login"), Text("Sign in")),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error mb-3"), Text(errMsg))}, content...)
	}

	return authShell("Register", content)
}

func authShell(title string, content []Node) Node {
	return HTML(
		Lang("en"),
		pageHead(title),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"), Group(content)),
		),
	)
}
