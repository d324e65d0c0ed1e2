// Package middleware provides production-grade monitors for trackers.
//
// This package includes:
//   - OpenTelemetry tracing of tracker lifetimes
//   - Prometheus metrics of declarations, emissions and relinks
//
// Both implement track.Monitor and are installed with track.WithMonitor.
// Use track.Monitors to install both.
//
// # OpenTelemetry Monitor
//
// The OpenTelemetry monitor opens one span per tracker, from its first
// declaration until it is disposed, and records declarations, emissions and
// rejections as span events. Chain relinks become child spans.
//
//	tracing := middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRecordEmissions(false),
//	)
//	defer tracing.Close()
//
// # Prometheus Metrics
//
// The Prometheus monitor collects:
//
//   - valuetrack_declared_total: Declarations by tracker label and kind
//
//   - valuetrack_emitted_total: Accepted values by tracker label and kind
//
//   - valuetrack_rejected_total: Values dropped by validation or filters
//
//   - valuetrack_relinks_total: Chain relinks by link presence
//
//   - valuetrack_disposed_total: Disposed trackers
//
//   - valuetrack_live_trackers: Trackers that are not disposed
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.Prometheus(middleware.WithRegistry(reg))
//
//	v := &Vector{}
//	v.Configure(
//	    track.WithMonitor(track.Monitors(metrics, tracing)),
//	    track.WithLabel("vector"),
//	)
package middleware
