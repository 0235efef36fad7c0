package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// HabitatRow is one rendered table row with the derived animal count.
type HabitatRow struct {
	Habitat     domain.Habitat
	AnimalCount int
}

func HabitatsPage(pc PageContext, rows []HabitatRow, canMutate bool) Node {
	tableRows := make([]Node, 0, len(rows))
	for _, row := range rows {
		cells := []Node{
			Td(Text(row.Habitat.ID)),
			Td(Text(row.Habitat.Name)),
			Td(Text(row.Habitat.Type)),
			Td(Text(row.Habitat.Climate)),
			Td(Text(strconv.FormatFloat(row.Habitat.Area, 'f', -1, 64))),
			Td(Text(strconv.Itoa(row.AnimalCount))),
		}
		if canMutate {
			cells = append(cells, Td(
				A(Href("/habitats/"+row.Habitat.ID+"/edit"), Class("btn btn-sm mr-2"), Text("Edit")),
				deleteForm("/habitats/"+row.Habitat.ID+"/delete", pc.CSRFToken),
			))
		}
		tableRows = append(tableRows, Tr(Group(cells)))
	}

	headers := []Node{Th(Text("ID")), Th(Text("Name")), Th(Text("Type")), Th(Text("Climate")), Th(Text("Area")), Th(Text("Animals"))}
	if canMutate {
		headers = append(headers, Th(Text("Actions")))
	}

	tableNode := Node(emptyStateCard("No habitats recorded yet.", "Add habitat", "/habitats/new", canMutate))
	if len(tableRows) > 0 {
		tableNode = Div(Class(cardClass("table-wrap")),
			Table(Class("data-table"), THead(Tr(Group(headers))), TBody(Group(tableRows))),
		)
	}

	return appPage("Habitats", "habitats", pc,
		pageToolbar("/habitats/new", "Add habitat", canMutate),
		tableNode,
	)
}

type HabitatFormData struct {
	Editing bool
	Habitat domain.Habitat
	ErrMsg  string
}

func HabitatFormPage(pc PageContext, data HabitatFormData) Node {
	title := "Add Habitat"
	action := "/habitats"
	if data.Editing {
		title = "Edit Habitat"
		action = "/habitats/" + data.Habitat.ID + "/update"
	}

	idField := Node(textField("id", data.Habitat.ID, "e.g. SAV001", true))
	if data.Editing {
		idField = Input(Type("text"), Name("id"), Value(data.Habitat.ID), Class("form-control"), ReadOnly())
	}

	area := ""
	if data.Habitat.Area > 0 {
		area = strconv.FormatFloat(data.Habitat.Area, 'f', -1, 64)
	}

	body := []Node{
		Div(Class(cardClass()),
			Form(
				Method("post"),
				Action(action),
				csrfField(pc.CSRFToken),
				fieldRow("ID", idField),
				fieldRow("Name", textField("name", data.Habitat.Name, "Name", true)),
				fieldRow("Type", textField("type", data.Habitat.Type, "e.g. Grassland", true)),
				fieldRow("Climate", textField("climate", data.Habitat.Climate, "e.g. Tropical", false)),
				fieldRow("Area (sq. m)", Input(Type("number"), Name("area"), Value(area), Class("form-control"), Step("0.01"), Min("0.01"), Required())),
				fieldRow("Description", Textarea(Name("description"), Class("form-control"), Text(data.Habitat.Description))),
				Div(Class("d-flex gap-2 mt-3"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Save")),
					A(Href("/habitats"), Class(secondaryButtonClass()), Text("Cancel")),
				),
			),
		),
	}
	if data.ErrMsg != "" {
		body = append([]Node{Div(Class("flash flash-error mb-3"), Text(data.ErrMsg))}, body...)
	}

	return appPage(title, "habitats", pc, body...)
}
