package track

import (
	"log/slog"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

// Option configures a Tracker. See Configure.
type Option func(*trackerOptions)

// trackerOptions holds the settings captured by streams at declaration time.
type trackerOptions struct {
	// until completes every subsequently declared stream when it emits or
	// completes.
	until stream.Observable

	// filter gates every value of the tracker's event streams.
	filter func(v any) bool

	logger  *slog.Logger
	monitor Monitor
	label   string
}

// WithUntil binds every property and event declared afterwards to signal:
// when signal emits a value or completes, those streams complete.
func WithUntil(signal stream.Observable) Option {
	return func(o *trackerOptions) {
		o.until = signal
	}
}

// WithEventFilter sets a predicate that every value of the tracker's event
// streams must satisfy. Events declared afterwards capture it.
func WithEventFilter(filter func(v any) bool) Option {
	return func(o *trackerOptions) {
		o.filter = filter
	}
}

// WithLogger sets the logger used for debug tracing and stream errors.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *trackerOptions) {
		o.logger = logger
	}
}

// WithMonitor installs a lifecycle monitor. Use Monitors to install several.
func WithMonitor(m Monitor) Option {
	return func(o *trackerOptions) {
		o.monitor = m
	}
}

// WithLabel sets a human-readable label, typically the type name of the
// object that embeds the tracker. Labels appear in logs and metrics.
func WithLabel(label string) Option {
	return func(o *trackerOptions) {
		o.label = label
	}
}
