package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/customercore-backend/pkg/metrics"
)

// Metrics records request counts and latency labelled by the matched chi
// route pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, matchedPattern(r), rec.statusCode(), time.Since(start))
		})
	}
}

// routePattern falls back to the raw path for log lines.
func routePattern(r *http.Request) string {
	if pattern := matchedPattern(r); pattern != "" {
		return pattern
	}
	if r == nil {
		return ""
	}
	return r.URL.Path
}

func matchedPattern(r *http.Request) string {
	if r == nil {
		return ""
	}
	if ctx := chi.RouteContext(r.Context()); ctx != nil {
		return ctx.RoutePattern()
	}
	return ""
}
