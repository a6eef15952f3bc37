package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests counts requests by method, route pattern, and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "duet",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks request latency by method and route pattern.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "duet",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

// TasksCompleted counts calendar task completions.
var TasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "duet",
	Subsystem: "calendar",
	Name:      "tasks_completed_total",
	Help:      "Total task completions recorded.",
})

// RewardsRedeemed counts reward redemptions.
var RewardsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "duet",
	Subsystem: "rewards",
	Name:      "redeemed_total",
	Help:      "Total rewards redeemed.",
})

// FairnessScore records the distribution of computed fairness scores.
var FairnessScore = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "duet",
	Subsystem: "fairness",
	Name:      "score",
	Help:      "Fairness scores computed for couples (0-100).",
	Buckets:   prometheus.LinearBuckets(0, 10, 11),
})

// Handler serves the Prometheus scrape endpoint.
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

// Instrument wraps a mux and records request count and latency. The route
// label is the registered mux pattern, not the raw URL, to keep cardinality
// low.
func Instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		mux.ServeHTTP(rec, r)

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
