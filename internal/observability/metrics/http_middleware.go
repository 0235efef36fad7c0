package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPMetricsMiddleware instruments inbound requests with Prometheus metrics.
// Paths are normalized so entity ids do not explode label cardinality.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		ObserveHTTPRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(ww.status), time.Since(start))
	})
}

// routeLabel collapses /animals/SAV001/edit into /animals/{id}/edit. Only
// the entity sections carry ids; everything else passes through.
func routeLabel(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return path
	}
	switch segments[1] {
	case "animals", "habitats", "caretakers":
		if segments[2] != "" && segments[2] != "new" {
			segments[2] = "{id}"
		}
	case "static":
		return "/static/"
	}
	return strings.Join(segments, "/")
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the wrapped writer; websocket upgrades need it.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}
