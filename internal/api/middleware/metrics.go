package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tasknest/tasknest-api/internal/platform/metrics"
)

// MetricsMiddleware records request duration into the Prometheus
// histogram, labeled by method and response status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.RequestDuration.
			WithLabelValues(r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
