package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder receives per-request observations. *metrics.Collector
// implements it.
type RequestRecorder interface {
	RecordHTTPRequest(method, path string, code int, duration time.Duration)
}

// Metrics records every request under its route. routes lists the known
// paths; anything else is recorded as "other" to bound label cardinality.
func Metrics(recorder RequestRecorder, routes ...string) func(http.Handler) http.Handler {
	known := make(map[string]bool, len(routes))
	for _, r := range routes {
		known[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if recorder == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if !known[path] {
				path = "other"
			}
			recorder.RecordHTTPRequest(r.Method, path, rw.statusCode, time.Since(start))
		})
	}
}
