package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/flash"
	"github.com/yourorg/sanctuaryconsole/internal/service"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
	"github.com/yourorg/sanctuaryconsole/internal/viewmodel"
)

// CaretakerHandler serves the caretaker staff pages. The navigation gate
// already restricts every /caretakers route to managers.
type CaretakerHandler struct {
	*Base
}

func NewCaretakerHandler(base *Base) *CaretakerHandler {
	return &CaretakerHandler{Base: base}
}

type caretakerForm struct {
	Name           string `validate:"required,max=100"`
	Email          string `validate:"required,email"`
	PhoneNumber    string `validate:"max=30"`
	Specialization string `validate:"required"`
	Username       string `validate:"omitempty,min=3,max=100"`
	Password       string `validate:"omitempty,min=8"`
}

func caretakerFromForm(r *http.Request) caretakerForm {
	return caretakerForm{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		PhoneNumber:    strings.TrimSpace(r.FormValue("phoneNumber")),
		Specialization: r.FormValue("specialization"),
		Username:       strings.TrimSpace(r.FormValue("username")),
		Password:       r.FormValue("password"),
	}
}

func (f caretakerForm) toDomain() domain.Caretaker {
	return domain.Caretaker{
		Name:           f.Name,
		Email:          f.Email,
		PhoneNumber:    f.PhoneNumber,
		Specialization: f.Specialization,
	}
}

// List handles GET /caretakers.
func (h *CaretakerHandler) List(w http.ResponseWriter, r *http.Request) {
	caretakers := service.NewCaretakerCollection(h.API, h.Logger)
	if err := caretakers.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	animals, err := h.API.ListAnimals(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "/dashboard")
		return
	}

	items := caretakers.Items()
	rows := make([]ui.CaretakerRow, 0, len(items))
	for _, c := range items {
		rows = append(rows, ui.CaretakerRow{
			Caretaker:   c,
			AnimalCount: viewmodel.AnimalCountByCaretaker(animals, c.ID),
		})
	}

	ui.RenderHTML(w, http.StatusOK, ui.CaretakersPage(h.pageContext(r), rows))
}

// New handles GET /caretakers/new.
func (h *CaretakerHandler) New(w http.ResponseWriter, r *http.Request) {
	ui.RenderHTML(w, http.StatusOK, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{}))
}

// Create handles POST /caretakers. Provisioning is compound: first the
// CARETAKER login identity, then the staff record linked to it.
func (h *CaretakerHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := caretakerFromForm(r)
	if form.Username == "" || form.Password == "" {
		ui.RenderHTML(w, http.StatusBadRequest, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{
			Caretaker: form.toDomain(),
			Username:  form.Username,
			ErrMsg:    "Login credentials are required for a new caretaker.",
		}))
		return
	}
	if err := h.Validate.Struct(form); err != nil {
		ui.RenderHTML(w, http.StatusBadRequest, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{
			Caretaker: form.toDomain(),
			Username:  form.Username,
			ErrMsg:    validationMessage(err),
		}))
		return
	}

	caretakers := service.NewCaretakerCollection(h.API, h.Logger)
	created, err := caretakers.Create(r.Context(), form.toDomain(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationFailed) {
			ui.RenderHTML(w, http.StatusConflict, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{
				Caretaker: form.toDomain(),
				Username:  form.Username,
				ErrMsg:    "Could not create the login. That username may already be taken.",
			}))
			return
		}
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	h.Audit.LogCreate(r.Context(), "caretaker", created.ID, "ok", created.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Caretaker "+created.Name+" added.", "/caretakers")
}

// Edit handles GET /caretakers/{id}/edit.
func (h *CaretakerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	caretaker, err := h.API.GetCaretaker(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Caretaker was not found.", "/caretakers")
			return
		}
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	ui.RenderHTML(w, http.StatusOK, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{
		Editing:   true,
		Caretaker: *caretaker,
	}))
}

// Update handles POST /caretakers/{id}/update.
func (h *CaretakerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form := caretakerFromForm(r)
	if err := h.Validate.Struct(form); err != nil {
		record := form.toDomain()
		record.ID = id
		ui.RenderHTML(w, http.StatusBadRequest, ui.CaretakerFormPage(h.pageContext(r), ui.CaretakerFormData{
			Editing:   true,
			Caretaker: record,
			ErrMsg:    validationMessage(err),
		}))
		return
	}

	// Keep the existing identity link; the form never carries it.
	existing, err := h.API.GetCaretaker(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashAndRedirect(w, r, flash.KindError, "Caretaker was not found.", "/caretakers")
			return
		}
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}
	record := form.toDomain()
	record.ID = id
	record.UserID = existing.UserID

	caretakers := service.NewCaretakerCollection(h.API, h.Logger)
	if err := caretakers.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	updated, err := caretakers.Update(r.Context(), id, record)
	if err != nil {
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	h.Audit.LogUpdate(r.Context(), "caretaker", updated.ID, "ok", updated.Name)
	h.flashAndRedirect(w, r, flash.KindSuccess, "Caretaker "+updated.Name+" updated.", "/caretakers")
}

// Delete handles POST /caretakers/{id}/delete. Refused locally while any
// animal is still assigned.
func (h *CaretakerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	animals, err := h.API.ListAnimals(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	caretakers := service.NewCaretakerCollection(h.API, h.Logger)
	if err := caretakers.Load(r.Context()); err != nil {
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	if err := caretakers.Delete(r.Context(), id, animals); err != nil {
		if errors.Is(err, domain.ErrReferentialDeleteBlocked) {
			h.Audit.LogDeletion(r.Context(), "caretaker", id, "blocked", "animals still assigned")
			h.flashAndRedirect(w, r, flash.KindError, "This caretaker still has animals assigned. Reassign them before removing the caretaker.", "/caretakers")
			return
		}
		h.handleServiceError(w, r, err, "/caretakers")
		return
	}

	h.Audit.LogDeletion(r.Context(), "caretaker", id, "ok", "")
	h.flashAndRedirect(w, r, flash.KindSuccess, "Caretaker removed.", "/caretakers")
}
