package handler

import (
	"net/http"

	"github.com/yourorg/sanctuaryconsole/internal/featureflags"
	"github.com/yourorg/sanctuaryconsole/internal/ui"
)

// DashboardHandler renders the landing page with sanctuary-wide totals.
type DashboardHandler struct {
	*Base
}

func NewDashboardHandler(base *Base) *DashboardHandler {
	return &DashboardHandler{Base: base}
}

// Show handles GET /dashboard.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	stats, err := h.API.Statistics(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "/login")
		return
	}

	ui.RenderHTML(w, http.StatusOK, ui.DashboardPage(h.pageContext(r), *stats, featureflags.Enabled(featureflags.LiveStats)))
}

// Root handles GET /{$} and forwards to the dashboard.
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
