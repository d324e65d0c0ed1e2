package middleware

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/valuetrack/pkg/track"
)

// Default tracer name for valuetrack monitors.
const defaultTracerName = "valuetrack"

// OTelConfig configures the OpenTelemetry monitor.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "valuetrack").
	TracerName string

	// TracerProvider provides the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// RecordEmissions adds a span event for every accepted value.
	// Enabled by default.
	RecordEmissions bool

	// Filter determines which trackers to trace.
	// Return true to trace the tracker, false to skip.
	// If nil, all trackers are traced.
	Filter func(t *track.Tracker) bool

	// AttributeExtractor extracts custom attributes for a tracker span.
	AttributeExtractor func(t *track.Tracker) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry monitor.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = provider
	}
}

// WithRecordEmissions enables/disables span events for emissions.
func WithRecordEmissions(enabled bool) OTelOption {
	return func(c *OTelConfig) {
		c.RecordEmissions = enabled
	}
}

// WithTrackerFilter sets a filter function for trackers.
func WithTrackerFilter(filter func(t *track.Tracker) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(t *track.Tracker) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:      defaultTracerName,
		RecordEmissions: true,
	}
}

// OTelMonitor is a track.Monitor that traces the lifetime of trackers.
type OTelMonitor struct {
	config OTelConfig
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

var _ track.Monitor = (*OTelMonitor)(nil)

// OpenTelemetry creates a monitor that traces tracker activity.
//
// The monitor:
//   - Opens a "valuetrack.tracker" span on a tracker's first declaration
//     and ends it when the tracker is disposed
//   - Adds "declared", "emitted" and "rejected" span events to it
//   - Records a child "valuetrack.relink" span for every chain relink
//
// Spans of trackers that are never disposed stay open until Close.
//
// Example:
//
//	monitor := middleware.OpenTelemetry(middleware.WithTracerName("my-app"))
//	defer monitor.Close()
//	v := &Vector{}
//	v.Configure(track.WithMonitor(monitor))
func OpenTelemetry(opts ...OTelOption) *OTelMonitor {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &OTelMonitor{
		config: config,
		tracer: provider.Tracer(config.TracerName),
		spans:  make(map[string]trace.Span),
	}
}

// span returns the lifetime span of t, starting it if needed. It returns nil
// for filtered trackers.
func (m *OTelMonitor) span(t *track.Tracker, create bool) trace.Span {
	if m.config.Filter != nil && !m.config.Filter(t) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if span, ok := m.spans[t.ID()]; ok || !create {
		return span
	}

	attrs := []attribute.KeyValue{
		attribute.String("valuetrack.tracker_id", t.ID()),
	}
	if label := t.Label(); label != "" {
		attrs = append(attrs, attribute.String("valuetrack.label", label))
	}
	if m.config.AttributeExtractor != nil {
		attrs = append(attrs, m.config.AttributeExtractor(t)...)
	}

	_, span := m.tracer.Start(context.Background(), "valuetrack.tracker",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	m.spans[t.ID()] = span
	return span
}

// Declared implements track.Monitor.
func (m *OTelMonitor) Declared(t *track.Tracker, kind track.Kind, name string) {
	if span := m.span(t, true); span != nil {
		span.AddEvent("declared", trace.WithAttributes(streamAttrs(kind, name)...))
	}
}

// Emitted implements track.Monitor.
func (m *OTelMonitor) Emitted(t *track.Tracker, kind track.Kind, name string) {
	if !m.config.RecordEmissions {
		return
	}
	if span := m.span(t, false); span != nil {
		span.AddEvent("emitted", trace.WithAttributes(streamAttrs(kind, name)...))
	}
}

// Rejected implements track.Monitor.
func (m *OTelMonitor) Rejected(t *track.Tracker, kind track.Kind, name string) {
	if span := m.span(t, false); span != nil {
		span.AddEvent("rejected", trace.WithAttributes(streamAttrs(kind, name)...))
	}
}

// Relinked implements track.Monitor.
func (m *OTelMonitor) Relinked(t *track.Tracker, path string, present bool) {
	parent := m.span(t, false)
	if parent == nil {
		return
	}
	ctx := trace.ContextWithSpan(context.Background(), parent)
	_, span := m.tracer.Start(ctx, "valuetrack.relink",
		trace.WithAttributes(
			attribute.String("valuetrack.path", path),
			attribute.Bool("valuetrack.present", present),
		),
	)
	span.End()
}

// Disposed implements track.Monitor.
func (m *OTelMonitor) Disposed(t *track.Tracker) {
	m.mu.Lock()
	span, ok := m.spans[t.ID()]
	delete(m.spans, t.ID())
	m.mu.Unlock()
	if !ok {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

// Close ends the spans of trackers that were not disposed.
func (m *OTelMonitor) Close() {
	m.mu.Lock()
	spans := m.spans
	m.spans = make(map[string]trace.Span)
	m.mu.Unlock()

	for _, span := range spans {
		span.End()
	}
}

func streamAttrs(kind track.Kind, name string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("valuetrack.kind", kind.String()),
		attribute.String("valuetrack.name", name),
	}
}
