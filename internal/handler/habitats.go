package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/security"
	"github.com/yourorg/sanctuaryconsole/internal/service"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
	"github.com/yourorg/sanctuaryconsole/internal/viewmodel"
)

// HabitatHandler serves the habitat list, the forms, and the mutation
// routes.
type HabitatHandler struct {
	*Base
}

func NewHabitatHandler(base *Base) *HabitatHandler {
	return &HabitatHandler{Base: base}
}

type habitatForm struct {
	ID          string  `validate:"required,max=50"`
	Name        string  `validate:"required,max=100"`
	Type        string  `validate:"required,max=100"`
	Climate     string  `validate:"max=100"`
	Area        float64 `validate:"required,gt=0"`
	Description string  `validate:"max=2000"`
}

func habitatFromForm(r *http.Request) habitatForm {
	// A malformed area parses to zero and fails the gt=0 rule.
	area, _ := strconv.ParseFloat(r.FormValue("area"), 64)
	return habitatForm{
		ID:          strings.TrimSpace(r.FormValue("id")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Climate:     strings.TrimSpace(r.FormValue("climate")),
		Area:        area,
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}

func (f habitatForm) toDomain() domain.Habitat {
	return domain.Habitat{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Climate:     f.Climate,
		Area:        f.Area,
		Description: f.Description,
	}
}

// List handles GET /habitats.
func (h *HabitatHandler) List(w http.ResponseWriter, r *http.Request) {
	habitats := service.NewHabitatCollection(h.API, h.Logger)
	if err := habitats.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	animals, err := h.API.ListAnimals(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	items := habitats.Items()
	rows := make([]ui.HabitatRow, 0, len(items))
	for _, hab := range items {
		rows = append(rows, ui.HabitatRow{
			Habitat:     hab,
			AnimalCount: viewmodel.AnimalCountByHabitat(animals, hab.ID),
		})
	}

	canMutate := security.CanPerformMutation(domain.SessionFromContext(r.Context()))
	ui.RenderHTML(w, http.StatusOK, ui.HabitatsPage(h.pageContext(r), rows, canMutate))
}

// New handles GET /habitats/new.
func (h *HabitatHandler) New(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}
	ui.RenderHTML(w, http.StatusOK, ui.HabitatFormPage(h.pageContext(r), ui.HabitatFormData{}))
}

// Create handles POST /habitats.
func (h *HabitatHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	form := habitatFromForm(r)
	if err := h.Validate.Struct(form); err != nil {
		ui.RenderHTML(w, http.StatusBadRequest, ui.HabitatFormPage(h.pageContext(r), ui.HabitatFormData{
			Habitat: form.toDomain(),
			ErrMsg:  validationMessage(err),
		}))
		return
	}

	habitats := service.NewHabitatCollection(h.API, h.Logger)
	if err := habitats.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	created, err := habitats.Create(r.Context(), form.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			ui.RenderHTML(w, http.StatusConflict, ui.HabitatFormPage(h.pageContext(r), ui.HabitatFormData{
				Habitat: form.toDomain(),
				ErrMsg:  "A habitat with ID " + form.ID + " already exists. Choose a different ID.",
			}))
			return
		}
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	h.Audit.LogCreate(r.Context(), "habitat", created.ID, "ok", created.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Habitat "+created.Name+" created.", "/habitats")
}

// Edit handles GET /habitats/{id}/edit.
func (h *HabitatHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	habitat, err := h.API.GetHabitat(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Habitat "+id+" was not found.", "/habitats")
			return
		}
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	ui.RenderHTML(w, http.StatusOK, ui.HabitatFormPage(h.pageContext(r), ui.HabitatFormData{
		Editing: true,
		Habitat: *habitat,
	}))
}

// Update handles POST /habitats/{id}/update.
func (h *HabitatHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	form := habitatFromForm(r)
	form.ID = id
	if err := h.Validate.Struct(form); err != nil {
		ui.RenderHTML(w, http.StatusBadRequest, ui.HabitatFormPage(h.pageContext(r), ui.HabitatFormData{
			Editing: true,
			Habitat: form.toDomain(),
			ErrMsg:  validationMessage(err),
		}))
		return
	}

	habitats := service.NewHabitatCollection(h.API, h.Logger)
	if err := habitats.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	updated, err := habitats.Update(r.Context(), id, form.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Habitat "+id+" was not found.", "/habitats")
			return
		}
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	h.Audit.LogUpdate(r.Context(), "habitat", updated.ID, "ok", updated.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Habitat "+updated.Name+" updated.", "/habitats")
}

// Delete handles POST /habitats/{id}/delete. The delete is refused without
// a backend call while animals still live in the habitat.
func (h *HabitatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireMutation(w, r) {
		return
	}

	id := r.PathValue("id")
	animals, err := h.API.ListAnimals(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	habitats := service.NewHabitatCollection(h.API, h.Logger)
	if err := habitats.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	if err := habitats.Delete(r.Context(), id, animals); err != nil {
		if errors.Is(err, domain.ErrReferentialDeleteBlocked) {
			h.Audit.LogDeletion(r.Context(), "habitat", id, "blocked", "animals still assigned")
			h.flashAndRedirect(w, r, flash.KindError, "This habitat still houses animals. Move them before deleting it.", "/habitats")
			return
		}
		h.handleServiceError(w, r, err, "/habitats")
		return
	}

	h.Audit.LogDeletion(r.Context(), "habitat", id, "ok", "")
	h.flashAndRedirect(w, r, flash.KindSuccess, "Habitat deleted.", "/habitats")
}
