package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware records count and duration per endpoint. Paths
// outside the known set collapse into one label to keep metric
// cardinality bounded against path scanning.
func MetricsMiddleware(metrics MetricsProviderInterface, known []string, next http.Handler) http.Handler {
	knownPaths := make(map[string]struct{}, len(known))
	for _, p := range known {
		knownPaths[p] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		if _, ok := knownPaths[endpoint]; !ok {
			endpoint = "other"
		}
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
