package middleware

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/valuetrack/pkg/track"
)

// MetricsConfig configures the Prometheus monitor.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "valuetrack").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// PerName labels emission counters with the property or event name.
	// Disabled by default to keep cardinality bounded by tracker labels.
	PerName bool
}

// MetricsOption configures the Prometheus monitor.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithPerName enables the name label on emission counters.
func WithPerName(enabled bool) MetricsOption {
	return func(c *MetricsConfig) {
		c.PerName = enabled
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "valuetrack",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// PrometheusMonitor is a track.Monitor that exports tracker activity as
// Prometheus metrics.
type PrometheusMonitor struct {
	perName bool

	declaredTotal *prometheus.CounterVec
	emittedTotal  *prometheus.CounterVec
	rejectedTotal *prometheus.CounterVec
	relinksTotal  *prometheus.CounterVec
	disposedTotal *prometheus.CounterVec
	liveTrackers  *prometheus.GaugeVec

	mu   sync.Mutex
	live map[string]string
}

var _ track.Monitor = (*PrometheusMonitor)(nil)

// Prometheus creates a monitor that collects metrics about trackers.
//
// Metrics collected:
//   - valuetrack_declared_total: Counter of declarations by label and kind
//   - valuetrack_emitted_total: Counter of accepted values by label and kind
//   - valuetrack_rejected_total: Counter of values dropped by validation or event filters
//   - valuetrack_relinks_total: Counter of chain relinks by label and link presence
//   - valuetrack_disposed_total: Counter of disposed trackers by label
//   - valuetrack_live_trackers: Gauge of trackers that declared something and are not disposed
//
// Registering twice on the same registry panics, like promauto.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	monitor := middleware.Prometheus(middleware.WithRegistry(reg))
//	v := &Vector{}
//	v.Configure(track.WithMonitor(monitor), track.WithLabel("vector"))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) *PrometheusMonitor {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	emissionLabels := []string{"label", "kind"}
	if config.PerName {
		emissionLabels = append(emissionLabels, "name")
	}

	return &PrometheusMonitor{
		perName: config.PerName,

		declaredTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "declared_total",
			Help:        "Total number of declared properties and events",
			ConstLabels: config.ConstLabels,
		}, []string{"label", "kind"}),

		emittedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "emitted_total",
			Help:        "Total number of values accepted by properties and events",
			ConstLabels: config.ConstLabels,
		}, emissionLabels),

		rejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rejected_total",
			Help:        "Total number of values dropped by validation or event filters",
			ConstLabels: config.ConstLabels,
		}, emissionLabels),

		relinksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "relinks_total",
			Help:        "Total number of chained path relinks",
			ConstLabels: config.ConstLabels,
		}, []string{"label", "present"}),

		disposedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disposed_total",
			Help:        "Total number of disposed trackers",
			ConstLabels: config.ConstLabels,
		}, []string{"label"}),

		liveTrackers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_trackers",
			Help:        "Number of trackers with declarations that are not disposed",
			ConstLabels: config.ConstLabels,
		}, []string{"label"}),

		live: make(map[string]string),
	}
}

// Declared implements track.Monitor.
func (m *PrometheusMonitor) Declared(t *track.Tracker, kind track.Kind, _ string) {
	label := labelOf(t)
	m.mu.Lock()
	if _, ok := m.live[t.ID()]; !ok {
		m.live[t.ID()] = label
		m.liveTrackers.WithLabelValues(label).Inc()
	}
	m.mu.Unlock()
	m.declaredTotal.WithLabelValues(label, kind.String()).Inc()
}

// Emitted implements track.Monitor.
func (m *PrometheusMonitor) Emitted(t *track.Tracker, kind track.Kind, name string) {
	m.emittedTotal.WithLabelValues(m.emissionLabels(t, kind, name)...).Inc()
}

// Rejected implements track.Monitor.
func (m *PrometheusMonitor) Rejected(t *track.Tracker, kind track.Kind, name string) {
	m.rejectedTotal.WithLabelValues(m.emissionLabels(t, kind, name)...).Inc()
}

// Relinked implements track.Monitor.
func (m *PrometheusMonitor) Relinked(t *track.Tracker, _ string, present bool) {
	m.relinksTotal.WithLabelValues(labelOf(t), strconv.FormatBool(present)).Inc()
}

// Disposed implements track.Monitor.
func (m *PrometheusMonitor) Disposed(t *track.Tracker) {
	m.mu.Lock()
	if label, ok := m.live[t.ID()]; ok {
		delete(m.live, t.ID())
		m.liveTrackers.WithLabelValues(label).Dec()
	}
	m.mu.Unlock()
	m.disposedTotal.WithLabelValues(labelOf(t)).Inc()
}

func (m *PrometheusMonitor) emissionLabels(t *track.Tracker, kind track.Kind, name string) []string {
	values := []string{labelOf(t), kind.String()}
	if m.perName {
		values = append(values, name)
	}
	return values
}

// labelOf returns the tracker label, or "unlabeled".
func labelOf(t *track.Tracker) string {
	if label := t.Label(); label != "" {
		return label
	}
	return "unlabeled"
}
