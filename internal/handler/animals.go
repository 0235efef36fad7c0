package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/security"
	"github.com/yourorg/sanctuaryconsole/internal/service"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
	"github.com/yourorg/sanctuaryconsole/internal/viewmodel"
)

// AnimalHandler serves the animal list, the forms, and the mutation routes.
type AnimalHandler struct {
	*Base
}

func NewAnimalHandler(base *Base) *AnimalHandler {
	return &AnimalHandler{Base: base}
}

type animalForm struct {
	ID           string `validate:"required,max=50"`
	Name         string `validate:"required,max=100"`
	Species      string `validate:"required,max=100"`
	HabitatID    string `validate:"required"`
	DateOfBirth  string `validate:"omitempty,datetime=2006-01-02"`
	HealthStatus string `validate:"required,oneof=Healthy Sick Critical"`
	CaretakerID  string `validate:"required"`
	Description  string `validate:"max=2000"`
}

func animalFromForm(r *http.Request) animalForm {
	return animalForm{
		ID:           strings.TrimSpace(r.FormValue("id")),
		Name:         strings.TrimSpace(r.FormValue("name")),
		Species:      strings.TrimSpace(r.FormValue("species")),
		HabitatID:    r.FormValue("habitatId"),
		DateOfBirth:  r.FormValue("dateOfBirth"),
		HealthStatus: r.FormValue("healthStatus"),
		CaretakerID:  r.FormValue("caretakerId"),
		Description:  strings.TrimSpace(r.FormValue("description")),
	}
}

func (f animalForm) toDomain() domain.Animal {
	return domain.Animal{
		ID:           f.ID,
		Name:         f.Name,
		Species:      f.Species,
		HabitatID:    f.HabitatID,
		DateOfBirth:  f.DateOfBirth,
		HealthStatus: domain.HealthStatus(f.HealthStatus),
		CaretakerID:  f.CaretakerID,
		Description:  f.Description,
	}
}

// List handles GET /animals. Managers see every animal; caretakers see only
// their own, resolved through their caretaker record.
func (h *AnimalHandler) List(w http.ResponseWriter, r *http.Request) {
	animals := service.NewAnimalCollection(h.API, h.Logger)
	if err := animals.Load(r.Context()); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			pc := h.pageContext(r)
			pc.Flash = &flash.Message{Kind: flash.KindError, Text: "Your account has no caretaker profile yet. Please contact a manager."}
			ui.RenderHTML(w, http.StatusOK, ui.AnimalsPage(pc, nil, false))
			return
		}
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	refs, err := service.LoadReferences(r.Context(), h.API)
	if err != nil {
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	items := animals.Items()
	rows := make([]ui.AnimalRow, 0, len(items))
	for _, a := range items {
		rows = append(rows, ui.AnimalRow{
			Animal:        a,
			HabitatName:   viewmodel.HabitatNameFor(refs.Habitats, a),
			CaretakerName: viewmodel.CaretakerNameFor(refs.Caretakers, a),
		})
	}

	canMutate := security.CanPerformMutation(domain.SessionFromContext(r.Context()))
	ui.RenderHTML(w, http.StatusOK, ui.AnimalsPage(h.pageContext(r), rows, canMutate))
}

// New handles GET /animals/new.
func (h *AnimalHandler) New(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}
	refs, err := service.LoadReferences(r.Context(), h.API)
	if err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}
	ui.RenderHTML(w, http.StatusOK, ui.AnimalFormPage(h.pageContext(r), ui.AnimalFormData{
		Habitats:   refs.Habitats,
		Caretakers: refs.Caretakers,
	}))
}

// Create handles POST /animals.
func (h *AnimalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	form := animalFromForm(r)
	if err := h.Validate.Struct(form); err != nil {
		h.renderAnimalForm(w, r, false, form.toDomain(), validationMessage(err))
		return
	}

	animals := service.NewAnimalCollection(h.API, h.Logger)
	if err := animals.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	created, err := animals.Create(r.Context(), form.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			h.renderAnimalForm(w, r, false, form.toDomain(), "An animal with ID "+form.ID+" already exists. Choose a different ID.")
			return
		}
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	h.Audit.LogCreate(r.Context(), "animal", created.ID, "ok", created.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Animal "+created.Name+" created.", "/animals")
}

// Edit handles GET /animals/{id}/edit.
func (h *AnimalHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	animal, err := h.API.GetAnimal(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Animal "+id+" was not found.", "/animals")
			return
		}
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	refs, err := service.LoadReferences(r.Context(), h.API)
	if err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}
	ui.RenderHTML(w, http.StatusOK, ui.AnimalFormPage(h.pageContext(r), ui.AnimalFormData{
		Editing:    true,
		Animal:     *animal,
		Habitats:   refs.Habitats,
		Caretakers: refs.Caretakers,
	}))
}

// Update handles POST /animals/{id}/update.
func (h *AnimalHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	form := animalFromForm(r)
	form.ID = id
	if err := h.Validate.Struct(form); err != nil {
		h.renderAnimalForm(w, r, true, form.toDomain(), validationMessage(err))
		return
	}

	animals := service.NewAnimalCollection(h.API, h.Logger)
	if err := animals.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	updated, err := animals.Update(r.Context(), id, form.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Animal "+id+" was not found.", "/animals")
			return
		}
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	h.Audit.LogUpdate(r.Context(), "animal", updated.ID, "ok", updated.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Animal "+updated.Name+" updated.", "/animals")
}

// Delete handles POST /animals/{id}/delete.
func (h *AnimalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	animals := service.NewAnimalCollection(h.API, h.Logger)
	if err := animals.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	if err := animals.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}

	h.Audit.LogDeletion(r.Context(), "animal", id, "ok", "")
	h.flashAndRedirect(w, r, flash.KindSuccess, "Animal deleted.", "/animals")
}

func (h *AnimalHandler) renderAnimalForm(w http.ResponseWriter, r *http.Request, editing bool, animal domain.Animal, errMsg string) {
	refs, err := service.LoadReferences(r.Context(), h.API)
	if err != nil {
		h.handleServiceError(w, r, err, "/animals")
		return
	}
	ui.RenderHTML(w, http.StatusBadRequest, ui.AnimalFormPage(h.pageContext(r), ui.AnimalFormData{
		Editing:    editing,
		Animal:     animal,
		Habitats:   refs.Habitats,
		Caretakers: refs.Caretakers,
		ErrMsg:     errMsg,
	}))
}

// requireMutation enforces the manager-only mutation rule on routes the
// navigation gate leaves open to both roles.
func (b *Base) requireMutation(w http.ResponseWriter, r *http.Request) bool {
	if security.CanPerformMutation(domain.SessionFromContext(r.Context())) {
		return true
	}
	b.Audit.LogDenied(r.Context(), "mutation requires MANAGER role")
	http.Redirect(w, r, security.DefaultRoute, http.StatusSeeOther)
	return false
}
