package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourorg/sanctuaryconsole/internal/ui"
)

// Routes wires every page and operational endpoint onto a mux. The
// middleware chain around the mux handles sessions, CSRF, and the
// navigation gate.
func Routes(auth *AuthHandler, dashboard *DashboardHandler, animals *AnimalHandler, habitats *HabitatHandler, caretakers *CaretakerHandler, health *HealthHandler, statsFeed *StatsFeedHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", dashboard.Root)
	mux.HandleFunc("GET /dashboard", dashboard.Show)

	mux.HandleFunc("GET /login", auth.ShowLogin)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /register", auth.ShowRegister)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("POST /logout", auth.Logout)

	mux.HandleFunc("GET /animals", animals.List)
	mux.HandleFunc("GET /animals/new", animals.New)
	mux.HandleFunc("POST /animals", animals.Create)
	mux.HandleFunc("GET /animals/{id}/edit", animals.Edit)
	mux.HandleFunc("POST /animals/{id}/update", animals.Update)
	mux.HandleFunc("POST /animals/{id}/delete", animals.Delete)

	mux.HandleFunc("GET /habitats", habitats.List)
	mux.HandleFunc("GET /habitats/new", habitats.New)
	mux.HandleFunc("POST /habitats", habitats.Create)
	mux.HandleFunc("GET /habitats/{id}/edit", habitats.Edit)
	mux.HandleFunc("POST /habitats/{id}/update", habitats.Update)
	mux.HandleFunc("POST /habitats/{id}/delete", habitats.Delete)

	mux.HandleFunc("GET /caretakers", caretakers.List)
	mux.HandleFunc("GET /caretakers/new", caretakers.New)
	mux.HandleFunc("POST /caretakers", caretakers.Create)
	mux.HandleFunc("GET /caretakers/{id}/edit", caretakers.Edit)
	mux.HandleFunc("POST /caretakers/{id}/update", caretakers.Update)
	mux.HandleFunc("POST /caretakers/{id}/delete", caretakers.Delete)

	if statsFeed != nil {
		mux.Handle("GET /ws/statistics", statsFeed)
	}

	mux.HandleFunc("GET /healthz", health.Health)
	mux.HandleFunc("GET /readyz", health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", ui.StaticHandler())

	return mux
}
