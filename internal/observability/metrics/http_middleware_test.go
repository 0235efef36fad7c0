package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriterSupportsHijack(t *testing.T) {
	wrapped := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("expected wrapped writer to implement http.Hijacker")
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack failed: %v", err)
			return
		}
		defer conn.Close()
		buf.WriteString("HTTP/1.1 204 No Content\r\n\r\n")
		buf.Flush()
	}))

	server := httptest.NewServer(wrapped)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws/statistics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 over the hijacked connection, got %d", resp.StatusCode)
	}
}

func TestHijackUnsupportedWriter(t *testing.T) {
	// httptest.ResponseRecorder cannot hijack; the passthrough must say so
	// instead of panicking.
	var lastErr error
	wrapped := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, lastErr = w.(http.Hijacker).Hijack()
	}))

	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if lastErr == nil {
		t.Error("expected an error from Hijack on a non-hijackable writer")
	}
}

func TestRouteLabel(t *testing.T) {
	cases := map[string]string{
		"/animals":               "/animals",
		"/animals/new":           "/animals/new",
		"/animals/SAV001/edit":   "/animals/{id}/edit",
		"/habitats/h-12/delete":  "/habitats/{id}/delete",
		"/caretakers/c-3/update": "/caretakers/{id}/update",
		"/static/app.css":        "/static/",
		"/dashboard":             "/dashboard",
		"/":                      "/",
	}
	for path, want := range cases {
		if got := routeLabel(path); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
