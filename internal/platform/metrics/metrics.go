// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_http_requests_total",
		Help: "HTTP requests by route pattern, method and status code",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "library_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	formRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_form_rejections_total",
		Help: "Form submissions rejected by validation, by entity",
	}, []string{"entity"})

	importedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "library_import_records_total",
		Help: "Records processed by the Open Library import, by outcome",
	}, []string{"outcome"})
)

// FormRejected counts one rejected submission for entity.
func FormRejected(entity string) {
	formRejections.WithLabelValues(entity).Inc()
}

// Imported counts one import outcome: "created" or "skipped".
func Imported(outcome string) {
	importedRecords.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency, labelled by the ServeMux
// pattern that matched. It must wrap the mux directly: the mux sets the pattern
// on the request it receives.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
