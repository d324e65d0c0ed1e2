package track

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

// Tracker holds the observable properties and events of one object.
//
// Embed a Tracker in a struct to make it trackable:
//
//	type Vector struct {
//	    track.Tracker
//	}
//
// The zero value is ready to use. Storage is allocated on the first
// declaration or lookup, so an object that never declares anything pays
// nothing. A Tracker must not be copied after first use.
type Tracker struct {
	mu sync.RWMutex

	initialized bool
	id          string
	opts        trackerOptions

	properties    map[string]*Property
	events        map[string]*Event
	propertyOrder []string
	eventOrder    []string
	nameOrder     []string

	// values is the current-value cache of properties with synchronous
	// access.
	values map[string]any

	// bindings are subscriptions owned by the tracker: teardown signals and
	// the sources of derived properties.
	bindings []*stream.Subscription
	cleanups []func()
	disposed bool
}

// Trackable is implemented by every object that embeds a Tracker. Dotted
// paths can only traverse properties holding Trackable values.
type Trackable interface {
	P(name string) (stream.Observable, error)
	E(name string) (stream.Observable, error)
}

var _ Trackable = (*Tracker)(nil)

// New creates a configured Tracker. Embedding a zero Tracker and calling
// Configure is equivalent.
func New(opts ...Option) *Tracker {
	t := &Tracker{}
	t.Configure(opts...)
	return t
}

// initialize allocates storage. Callers must hold t.mu.
func (t *Tracker) initialize() {
	if t.initialized {
		return
	}
	t.initialized = true
	t.id = uuid.NewString()
	t.properties = make(map[string]*Property)
	t.events = make(map[string]*Event)
	t.values = make(map[string]any)
}

// Configure applies options. Teardown signals and event filters only affect
// streams declared after the call, so configure before declaring.
func (t *Tracker) Configure(opts ...Option) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialize()
	for _, opt := range opts {
		opt(&t.opts)
	}
}

// ID returns the tracker's unique identifier.
func (t *Tracker) ID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialize()
	return t.id
}

// Label returns the label set with WithLabel.
func (t *Tracker) Label() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opts.label
}

// settings returns a copy of the options for a stream being declared.
func (t *Tracker) settings() trackerOptions {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opts
}

func (t *Tracker) logger() *slog.Logger {
	opts := t.settings()
	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{slog.String("tracker", t.ID())}
	if opts.label != "" {
		attrs = append(attrs, slog.String("label", opts.label))
	}
	return logger.With(attrs...)
}

func (t *Tracker) monitor() Monitor {
	if m := t.settings().monitor; m != nil {
		return m
	}
	return NopMonitor{}
}

// bind ties sub's lifetime to the tracker.
func (t *Tracker) bind(sub *stream.Subscription) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	t.bindings = append(t.bindings, sub)
	t.mu.Unlock()
}

// bindUntil completes a freshly declared stream when signal fires.
func (t *Tracker) bindUntil(signal stream.Observable, complete func()) {
	if signal == nil {
		return
	}
	t.bind(signal.Subscribe(stream.Observer{
		Next:     func(any) { complete() },
		Complete: complete,
	}))
}

// Value returns the cached current value of a property declared with
// synchronous access.
func (t *Tracker) Value(name string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[name]
	return v, ok
}

func (t *Tracker) storeValue(name string, v any) {
	t.mu.Lock()
	t.values[name] = v
	t.mu.Unlock()
}

// Snapshot returns a copy of the current-value cache.
func (t *Tracker) Snapshot() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]any, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}

// Valuer is implemented by Tracker and by every struct embedding one.
type Valuer interface {
	Value(name string) (any, bool)
}

// Get returns the current value of a property as a T. It returns the zero
// T when the property has no cached value or holds another type.
func Get[T any](v Valuer, name string) T {
	raw, _ := v.Value(name)
	out, _ := raw.(T)
	return out
}

// OnDispose registers fn to run when the tracker is disposed. If it is
// already disposed, fn runs immediately.
func (t *Tracker) OnDispose(fn func()) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		fn()
		return
	}
	t.cleanups = append(t.cleanups, fn)
	t.mu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (t *Tracker) Disposed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.disposed
}

// Dispose completes every stream of the tracker, releases the sources of
// derived properties and runs OnDispose callbacks in reverse order.
// Later declarations fail with ErrDisposed. Calling Dispose twice is a
// no-op.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.initialize()
	t.disposed = true
	bindings := t.bindings
	cleanups := t.cleanups
	t.bindings, t.cleanups = nil, nil
	properties := make([]*Property, 0, len(t.propertyOrder))
	for _, name := range t.propertyOrder {
		properties = append(properties, t.properties[name])
	}
	events := make([]*Event, 0, len(t.eventOrder))
	for _, name := range t.eventOrder {
		events = append(events, t.events[name])
	}
	t.mu.Unlock()

	for _, sub := range bindings {
		sub.Unsubscribe()
	}
	for _, p := range properties {
		p.complete()
	}
	for _, e := range events {
		e.complete()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	t.monitor().Disposed(t)
	t.logger().Debug("tracker disposed",
		slog.Int("properties", len(properties)),
		slog.Int("events", len(events)))
}
