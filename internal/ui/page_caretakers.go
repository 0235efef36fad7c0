package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// CaretakerRow is one rendered table row with the derived assignment count.
type CaretakerRow struct {
	Caretaker   domain.Caretaker
	AnimalCount int
}

func CaretakersPage(pc PageContext, rows []CaretakerRow) Node {
	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, Tr(
			Td(Text(row.Caretaker.Name)),
			Td(Text(row.Caretaker.Email)),
			Td(Text(row.Caretaker.PhoneNumber)),
			Td(Text(row.Caretaker.Specialization)),
			Td(Text(strconv.Itoa(row.AnimalCount))),
			Td(
				A(Href("/caretakers/"+row.Caretaker.ID+"/edit"), Class("btn btn-sm mr-2"), Text("Edit")),
				deleteForm("/caretakers/"+row.Caretaker.ID+"/delete", pc.CSRFToken),
			),
		))
	}

	tableNode := Node(emptyStateCard("No caretakers on staff yet.", "Add caretaker", "/caretakers/new", true))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Name")), Th(Text("Email")), Th(Text("Phone")), Th(Text("Specialization")), Th(Text("Animals")), Th(Text("Actions")))),
				TBody(Group(tableRows)),
			),
		)
	}

	return appPage("Caretakers", "caretakers", pc,
		pageToolbar("/caretakers/new", "Add caretaker", true),
		tableNode,
	)
}

type CaretakerFormData struct {
	Editing   bool
	Caretaker domain.Caretaker
	Username  string
	ErrMsg    string
}

// CaretakerFormPage renders the create or edit form. Creation also
// provisions a CARETAKER login, so the create form carries credential
// fields the edit form does not.
func CaretakerFormPage(pc PageContext, data CaretakerFormData) Node {
	title := "Add Caretaker"
	action := "/caretakers"
	if data.Editing {
		title = "Edit Caretaker"
		action = "/caretakers/" + data.Caretaker.ID + "/update"
	}

	specOptions := make([]selectOption, 0, len(domain.Specializations))
	for _, s := range domain.Specializations {
		specOptions = append(specOptions, selectOption{Value: s, Label: s})
	}

	fields := []Node{
		csrfField(pc.CSRFToken),
		fieldRow("Name", textField("name", data.Caretaker.Name, "Full name", true)),
		fieldRow("Email", Input(Type("email"), Name("email"), Value(data.Caretaker.Email), Class("form-control"), Required())),
		fieldRow("Phone", textField("phoneNumber", data.Caretaker.PhoneNumber, "Phone number", false)),
		fieldRow("Specialization", selectField("specialization", data.Caretaker.Specialization, specOptions)),
	}
	if !data.Editing {
		fields = append(fields,
			Hr(),
			P(Class(mutedClass()), Text("Login credentials for the new caretaker")),
			fieldRow("Username", textField("username", data.Username, "Login username", true)),
			fieldRow("Password", Input(Type("password"), Name("password"), Class("form-control"), Required())),
		)
	}
	fields = append(fields,
		Div(Class("d-flex gap-2 mt-3"),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Save")),
			A(Href("/caretakers"), Class(secondaryButtonClass()), Text("Cancel")),
		),
	)

	body := []Node{
		Div(Class(cardClass()),
			Form(Method("post"), Action(action), Group(fields)),
		),
	}
	if data.ErrMsg != "" {
		body = append([]Node{Div(Class("flash flash-error mb-3"), Text(data.ErrMsg))}, body...)
	}

	return appPage(title, "caretakers", pc, body...)
}
