// Package metrics exposes prometheus instrumentation for simulation runs.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds all metrics for the simulation tooling.
type Registry struct {
	// Engine metrics
	StepsTotal  prometheus.Counter
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Population metrics
	AdopterCount *prometheus.GaugeVec
	NetworkNodes prometheus.Gauge
	NetworkEdges prometheus.Gauge

	// Sweep metrics
	SweepRunsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	return &Registry{
		StepsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "diffusion_steps_total",
			Help: "Total number of simulation steps executed",
		}),
		RunsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "diffusion_runs_total",
			Help: "Total number of simulation runs by outcome",
		}, []string{"status"}),
		RunDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "diffusion_run_duration_seconds",
			Help:    "Wall-clock duration of complete simulation runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		AdopterCount: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "diffusion_adopter_count",
			Help: "Current adopter count per technology",
		}, []string{"technology"}),
		NetworkNodes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "diffusion_network_nodes",
			Help: "Number of agents in the interaction network",
		}),
		NetworkEdges: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "diffusion_network_edges",
			Help: "Number of edges in the interaction network",
		}),
		SweepRunsInFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "diffusion_sweep_runs_in_flight",
			Help: "Simulation runs currently executing in a parameter sweep",
		}),
		registry: reg,
	}
}

// RecordStep counts one executed simulation step.
func (r *Registry) RecordStep() {
	r.StepsTotal.Inc()
}

// RecordRun records a finished run with its outcome and duration.
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// UpdateAdopterCounts sets the per-technology adopter gauges from a counts
// slice indexed by technology.
func (r *Registry) UpdateAdopterCounts(counts []int) {
	for tech, count := range counts {
		r.AdopterCount.WithLabelValues(strconv.Itoa(tech)).Set(float64(count))
	}
}

// UpdateNetwork sets the network shape gauges.
func (r *Registry) UpdateNetwork(nodes, edges int) {
	r.NetworkNodes.Set(float64(nodes))
	r.NetworkEdges.Set(float64(edges))
}

// Handler returns an HTTP handler serving the registry in the prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying gatherer, mainly for tests.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}
