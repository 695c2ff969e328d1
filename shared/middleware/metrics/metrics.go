// Package metrics provides Prometheus HTTP metrics middleware.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/vault/shared/middleware"
	"github.com/itchan-dev/vault/shared/timemachine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	timeMachineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "time_machine_requests_total",
			Help: "Requests that asked for a point in time view of the archive",
		},
		[]string{"route"},
	)
)

// route is chi's matched pattern, or "unmatched" so unknown paths share one series.
func route(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Middleware returns HTTP middleware that records Prometheus metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rec := middleware.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		path := route(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.Status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		if r.URL.Query().Get(timemachine.QueryParam) != "" {
			timeMachineRequests.WithLabelValues(path).Inc()
		}
	})
}
