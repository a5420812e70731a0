// Package metrics exposes scheduler observability as Prometheus gauges,
// counters, and histograms, grounded on the teacher's
// adapters/metrics collector pattern: a namespaced registry, a
// package-level singleton, and free functions that delegate to it so
// domain and application code can record metrics without threading a
// collector reference through every call site.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "portdock"
	subsystem = "scheduler"
)

// Collector holds every metric the scheduler records.
type Collector struct {
	QueueDepth       *prometheus.GaugeVec
	DockState        *prometheus.GaugeVec
	CargoMovedTotal  *prometheus.CounterVec
	DockedTotal      *prometheus.CounterVec
	UndockedTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchGuessTotal *prometheus.CounterVec
}

// NewCollector constructs a Collector with all metrics registered.
func NewCollector() *Collector {
	return &Collector{
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "queue_depth",
			Help: "Number of unconsumed ship requests per class and category.",
		}, []string{"class", "category"}),
		DockState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "dock_state",
			Help: "Current dock action state (0=idle,1=moving,2=finished,3=awaiting_undock).",
		}, []string{"dock_id"}),
		CargoMovedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "cargo_moved_total",
			Help: "Total cargo entries moved, by dock.",
		}, []string{"dock_id"}),
		DockedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "docked_total",
			Help: "Total ships admitted into a dock.",
		}, []string{"dock_id"}),
		UndockedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "undocked_total",
			Help: "Total ships that completed a berth and undocked.",
		}, []string{"dock_id"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "search_duration_seconds",
			Help:    "Wall-clock duration of parallel auth searches.",
			Buckets: prometheus.DefBuckets,
		}, []string{"dock_id"}),
		SearchGuessTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "search_guess_total",
			Help: "Total guesses sent to solvers across all searches.",
		}, []string{"dock_id"}),
	}
}

// Register adds every metric to reg.
func (c *Collector) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		c.QueueDepth,
		c.DockState,
		c.CargoMovedTotal,
		c.DockedTotal,
		c.UndockedTotal,
		c.SearchDuration,
		c.SearchGuessTotal,
	)
}

var (
	mu        sync.RWMutex
	registry  *prometheus.Registry
	collector *Collector
	enabled   bool
)

// InitRegistry constructs the global registry and collector. Safe to
// call once at startup; subsequent calls replace the global state.
func InitRegistry() *Collector {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	collector = NewCollector()
	collector.Register(registry)
	enabled = true
	return collector
}

// GetRegistry returns the global registry, or nil if InitRegistry has not
// run.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// GetCollector returns the global collector, or nil if InitRegistry has
// not run.
func GetCollector() *Collector {
	mu.RLock()
	defer mu.RUnlock()
	return collector
}

// IsEnabled reports whether metrics collection is active.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Handler returns the promhttp handler for the global registry, or nil
// if metrics are disabled.
func Handler() http.Handler {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// RecordDocked increments the docked counter for dockID. A no-op if
// metrics are disabled.
func RecordDocked(dockID string) {
	if c := GetCollector(); c != nil {
		c.DockedTotal.WithLabelValues(dockID).Inc()
	}
}

// RecordCargoMoved increments the cargo-moved counter for dockID.
func RecordCargoMoved(dockID string) {
	if c := GetCollector(); c != nil {
		c.CargoMovedTotal.WithLabelValues(dockID).Inc()
	}
}

// RecordUndocked increments the undocked counter for dockID.
func RecordUndocked(dockID string) {
	if c := GetCollector(); c != nil {
		c.UndockedTotal.WithLabelValues(dockID).Inc()
	}
}

// RecordSearchDuration observes a completed search's wall-clock duration.
func RecordSearchDuration(dockID string, seconds float64) {
	if c := GetCollector(); c != nil {
		c.SearchDuration.WithLabelValues(dockID).Observe(seconds)
	}
}

// RecordGuess increments the guess counter for dockID.
func RecordGuess(dockID string) {
	if c := GetCollector(); c != nil {
		c.SearchGuessTotal.WithLabelValues(dockID).Inc()
	}
}

// SetQueueDepth sets the queue-depth gauge for (class, category).
func SetQueueDepth(class, category string, depth int) {
	if c := GetCollector(); c != nil {
		c.QueueDepth.WithLabelValues(class, category).Set(float64(depth))
	}
}

// SetDockState sets the dock-state gauge for dockID.
func SetDockState(dockID string, state int) {
	if c := GetCollector(); c != nil {
		c.DockState.WithLabelValues(dockID).Set(float64(state))
	}
}

// Reporter adapts the package-level free functions to the narrow
// interface internal/application/scheduler depends on, so the scheduler
// package never imports prometheus directly.
type Reporter struct{}

func (Reporter) RecordDocked(dockID string)      { RecordDocked(dockID) }
func (Reporter) RecordCargoMoved(dockID string)  { RecordCargoMoved(dockID) }
func (Reporter) RecordUndocked(dockID string)    { RecordUndocked(dockID) }
func (Reporter) SetQueueDepth(class, category string, depth int) {
	SetQueueDepth(class, category, depth)
}
func (Reporter) SetDockState(dockID string, state int) { SetDockState(dockID, state) }
