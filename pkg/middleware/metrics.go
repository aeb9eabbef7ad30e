package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
)

// Metrics registra contagem e latência usando o padrão da rota como label, não a URL concreta
func Metrics(routePattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			srw := newStatusResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(srw, r)

			if srw.hijacked {
				return
			}

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, routePattern, strconv.Itoa(srw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, routePattern).Observe(time.Since(start).Seconds())
		})
	}
}
