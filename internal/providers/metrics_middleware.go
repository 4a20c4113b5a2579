package providers

import (
	"net/http"
	"strings"
	"time"
)

// statusWriter records the first status code a handler commits. Later
// WriteHeader calls still reach the underlying writer (net/http logs the
// superfluous call) but do not change the recorded code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware counts and times every request by endpoint and status
// bucket. The endpoint label is the route path, so cardinality stays bounded
// by the route table.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		if len(endpoint) > 1 {
			endpoint = strings.TrimSuffix(endpoint, "/")
		}
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
