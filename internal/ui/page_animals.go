package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// AnimalRow is one rendered table row with its references already resolved.
type AnimalRow struct {
	Animal        domain.Animal
	HabitatName   string
	CaretakerName string
}

func AnimalsPage(pc PageContext, rows []AnimalRow, canMutate bool) Node {
	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		cells := []Node{
			Td(Text(row.Animal.ID)),
			Td(Text(row.Animal.Name)),
			Td(Text(row.Animal.Species)),
			Td(Text(row.HabitatName)),
			Td(statusLabel(string(row.Animal.HealthStatus), healthTone(row.Animal.HealthStatus))),
			Td(Text(row.CaretakerName)),
		}
		if canMutate {
			cells = append(cells, Td(
				A(Href("/animals/"+row.Animal.ID+"/edit"), Class("btn btn-sm mr-2"), Text("Edit")),
				deleteForm("/animals/"+row.Animal.ID+"/delete", pc.CSRFToken),
			))
		}
		tableRows = append(tableRows, Tr(Group(cells)))
	}

	headers := []Node{Th(Text("ID")), Th(Text("Name")), Th(Text("Species")), Th(Text("Habitat")), Th(Text("Health")), Th(Text("Caretaker"))}
	if canMutate {
		headers = append(headers, Th(Text("Actions")))
	}

	tableNode := Node(emptyStateCard("No animals recorded yet.", "Add animal", "/animals/new", canMutate))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"), THead(Tr(Group(headers))), TBody(Group(tableRows))),
		)
	}

	return appPage("Animals", "animals", pc,
		pageToolbar("/animals/new", "Add animal", canMutate),
		tableNode,
	)
}

// AnimalFormData feeds both the create and the edit form.
type AnimalFormData struct {
	Editing    bool
	Animal     domain.Animal
	Habitats   []domain.Habitat
	Caretakers []domain.Caretaker
	ErrMsg     string
}

func AnimalFormPage(pc PageContext, data AnimalFormData) Node {
	title := "Add Animal"
	action := "/animals"
	if data.Editing {
		title = "Edit Animal"
		action = "/animals/" + data.Animal.ID + "/update"
	}

	habitatOptions := make([]selectOption, 0, len(data.Habitats))
	for _, h := range data.Habitats {
		habitatOptions = append(habitatOptions, selectOption{Value: h.ID, Label: h.Name})
	}
	caretakerOptions := make([]selectOption, 0, len(data.Caretakers))
	for _, c := range data.Caretakers {
		caretakerOptions = append(caretakerOptions, selectOption{Value: c.ID, Label: c.Name})
	}
	healthOptions := []selectOption{
		{Value: string(domain.HealthHealthy), Label: string(domain.HealthHealthy)},
		{Value: string(domain.HealthSick), Label: string(domain.HealthSick)},
		{Value: string(domain.HealthCritical), Label: string(domain.HealthCritical)},
	}

	idField := Node(textField("id", data.Animal.ID, "e.g. LION001", true))
	if data.Editing {
		// Ids are immutable once created.
		idField = Input(Type("text"), Name("id"), Value(data.Animal.ID), Class("form-control"), ReadOnly())
	}

	body := []Node{
		Div(Class(cardClass()),
			Form(
				Method("post"),
				Action(action),
				csrfField(pc.CSRFToken),
				fieldRow("ID", idField),
				fieldRow("Name", textField("name", data.Animal.Name, "Name", true)),
				fieldRow("Species", textField("species", data.Animal.Species, "Species", true)),
				fieldRow("Habitat", selectField("habitatId", data.Animal.HabitatID, habitatOptions)),
				fieldRow("Date of birth", Input(Type("date"), Name("dateOfBirth"), Value(data.Animal.DateOfBirth), Class("form-control"))),
				fieldRow("Health status", selectField("healthStatus", string(data.Animal.HealthStatus), healthOptions)),
				fieldRow("Caretaker", selectField("caretakerId", data.Animal.CaretakerID, caretakerOptions)),
				fieldRow("Description", Textarea(Name("description"), Class("form-control"), Text(data.Animal.Description))),
				Div(Class("d-flex gap-2 mt-3"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Save")),
					A(Href("/animals"), Class(secondaryButtonClass()), Text("Cancel")),
				),
			),
		),
	}
	if data.ErrMsg != "" {
		body = append([]Node{Div(Class("flash flash-error mb-3"), Text(data.ErrMsg))}, body...)
	}

	return appPage(title, "animals", pc, body...)
}
