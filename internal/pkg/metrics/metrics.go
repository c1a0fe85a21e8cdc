package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)

	// PlanningRuns counts optimization runs by trigger type and terminal status
	PlanningRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planning_runs_total", Help: "Optimization runs by trigger and status."},
		[]string{"trigger", "status"},
	)
	// PlanningRunDuration tracks optimization run wall time in seconds
	PlanningRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "planning_run_duration_seconds", Help: "Optimization run duration in seconds.", Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}},
	)
	// OrdersOptimized counts orders placed on routes by planning runs
	OrdersOptimized = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "planning_orders_optimized_total", Help: "Orders assigned to routes by the planner."},
	)
	// GeocodeLookups counts geocoder calls by outcome
	GeocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_lookups_total", Help: "Geocoder lookups by outcome."},
		[]string{"outcome"},
	)
)

// RegisterDefault registers collectors to the registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlanningRuns)
		Registry.MustRegister(PlanningRunDuration)
		Registry.MustRegister(OrdersOptimized)
		Registry.MustRegister(GeocodeLookups)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
