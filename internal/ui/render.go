package ui

import (
	"net/http"

	gomponents "maragu.dev/gomponents"
)

// RenderHTML writes a rendered page with the given status.
func RenderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
