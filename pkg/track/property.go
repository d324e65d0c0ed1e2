package track

import (
	"log/slog"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

// Combiner turns the values of a dependency declaration into one value.
// It receives the active values in declaration order followed by the
// passive values in declaration order.
type Combiner func(values ...any) any

// PropertyOption is a functional option for DeclareProperty.
type PropertyOption func(*propertyOptions)

// propertyOptions holds the configuration of a property being declared.
type propertyOptions struct {
	sourceName   string
	sourceStream stream.Observable
	active       []string
	combiner     Combiner
	derived      bool

	readonly    bool
	readonlySet bool

	syncAccess   bool
	deriveEvent  bool
	invalidation bool

	equal     func(a, b any) bool
	valid     func(v any) bool
	transform func(v any) any

	initial        any
	initialSet     bool
	initialFunc    func(t *Tracker) any
	initialFuncSet bool
}

func (o *propertyOptions) hasSource() bool {
	return o.sourceName != "" || o.sourceStream != nil || o.derived
}

// Source makes the property mirror another property (a name or dotted path)
// of the same object.
func Source(name string) PropertyOption {
	return func(o *propertyOptions) {
		o.sourceName = name
	}
}

// SourceStream makes the property mirror an arbitrary stream.
func SourceStream(src stream.Observable) PropertyOption {
	return func(o *propertyOptions) {
		o.sourceStream = src
	}
}

// Derived computes the property from active dependencies. The property
// updates whenever one of them changes, once all of them have a value.
// A nil combiner yields the values as a []any.
func Derived(active []string, combiner Combiner) PropertyOption {
	return func(o *propertyOptions) {
		o.derived = true
		o.active = append([]string(nil), active...)
		o.combiner = combiner
	}
}

// Readonly controls whether the public view of the property accepts writes.
// It defaults to true for properties with a source and false otherwise.
func Readonly(readonly bool) PropertyOption {
	return func(o *propertyOptions) {
		o.readonly = readonly
		o.readonlySet = true
	}
}

// SynchronousAccess controls whether the current value is cached for
// Value and Get. Enabled by default.
func SynchronousAccess(enabled bool) PropertyOption {
	return func(o *propertyOptions) {
		o.syncAccess = enabled
	}
}

// DeriveEvent controls whether an event of the same name, carrying the
// property's changes, is registered. Enabled by default.
func DeriveEvent(enabled bool) PropertyOption {
	return func(o *propertyOptions) {
		o.deriveEvent = enabled
	}
}

// CacheInvalidation enables InvalidateCache, which lets the next value pass
// the distinctness check even if it equals the current one.
func CacheInvalidation(enabled bool) PropertyOption {
	return func(o *propertyOptions) {
		o.invalidation = enabled
	}
}

// Equal sets the predicate used to collapse consecutive equal values.
func Equal(fn func(a, b any) bool) PropertyOption {
	return func(o *propertyOptions) {
		o.equal = fn
	}
}

// Valid sets a predicate that incoming values must satisfy. Invalid values
// are dropped without error.
func Valid(fn func(v any) bool) PropertyOption {
	return func(o *propertyOptions) {
		o.valid = fn
	}
}

// OneOf only accepts the given values, compared with stream.Equal.
func OneOf(values ...any) PropertyOption {
	allowed := append([]any(nil), values...)
	return Valid(func(v any) bool {
		for _, a := range allowed {
			if stream.Equal(a, v) {
				return true
			}
		}
		return false
	})
}

// Transform maps every accepted value before the distinctness check.
func Transform(fn func(v any) any) PropertyOption {
	return func(o *propertyOptions) {
		o.transform = fn
	}
}

// Initial seeds a standalone property with v. Function values are stored
// as they are; use InitialFunc for a producer.
func Initial(v any) PropertyOption {
	return func(o *propertyOptions) {
		o.initial = v
		o.initialSet = true
	}
}

// InitialFunc seeds a standalone property with the result of fn, invoked
// once at declaration with the declaring tracker.
func InitialFunc(fn func(t *Tracker) any) PropertyOption {
	return func(o *propertyOptions) {
		o.initialFunc = fn
		o.initialFuncSet = fn != nil
	}
}

// Flag returns the options of a boolean property: only bool values are
// accepted.
func Flag(initial bool) []PropertyOption {
	return []PropertyOption{
		Valid(func(v any) bool {
			_, ok := v.(bool)
			return ok
		}),
		Initial(initial),
	}
}

// cacheSentinel is pushed by InvalidateCache. Its type is unexported, so no
// caller value can ever equal it.
type cacheSentinel struct{}

// Property is an observable value with a current value.
//
// Subscribing replays the current value, if there is one, and then delivers
// every accepted change.
type Property struct {
	owner *Tracker
	name  string

	readonly     bool
	sourced      bool
	syncAccess   bool
	invalidation bool

	equal     func(a, b any) bool
	valid     func(v any) bool
	transform func(v any) any

	cell   *stream.Behavior
	view   stream.Observable
	event  *Event
	source *stream.Subscription

	// stale is set by the cache sentinel and lets the next value through
	// the distinctness check.
	stale bool
}

// DeclareProperty declares a property on the object.
func (t *Tracker) DeclareProperty(name string, opts ...PropertyOption) (*Property, error) {
	if err := t.reserve(name); err != nil {
		return nil, err
	}

	o := propertyOptions{syncAccess: true, deriveEvent: true}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(name); err != nil {
		return nil, err
	}

	p := &Property{
		owner:        t,
		name:         name,
		readonly:     o.hasSource(),
		sourced:      o.hasSource(),
		syncAccess:   o.syncAccess,
		invalidation: o.invalidation,
		equal:        o.equal,
		valid:        o.valid,
		transform:    o.transform,
		cell:         stream.NewEmptyBehavior(),
	}
	if o.readonlySet {
		p.readonly = o.readonly
	}
	if p.equal == nil {
		p.equal = stream.Equal
	}
	p.view = p
	if p.readonly {
		p.view = stream.AsObservable(p)
	}

	var src stream.Observable
	if p.sourced {
		var err error
		if src, err = t.resolveSource(&o); err != nil {
			return nil, err
		}
	}

	settings := t.settings()
	if o.deriveEvent {
		p.event = newDerivedEvent(t, p, settings.filter)
	}
	if err := t.registerProperty(p, p.event); err != nil {
		return nil, err
	}

	if p.sourced {
		p.source = src.Subscribe(stream.Observer{
			Next:  p.push,
			Error: p.fail,
		})
		t.bind(p.source)
	} else {
		initial := o.initial
		if o.initialFunc != nil {
			initial = o.initialFunc(t)
		}
		p.push(initial)
	}
	t.bindUntil(settings.until, p.complete)

	t.monitor().Declared(t, KindProperty, name)
	t.logger().Debug("property declared",
		slog.String("name", name),
		slog.Bool("readonly", p.readonly),
		slog.Bool("sourced", p.sourced))
	return p, nil
}

func (o *propertyOptions) validate(name string) error {
	if o.derived && len(o.active) == 0 {
		return &InvalidOptionsError{Name: name, Reason: "needs at least one active dependency"}
	}
	sources := 0
	for _, set := range []bool{o.sourceName != "", o.sourceStream != nil, o.derived} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return &InvalidOptionsError{Name: name, Reason: "cannot have more than one source"}
	}
	if o.initialSet && o.initialFuncSet {
		return &InvalidOptionsError{Name: name, Reason: "cannot have both Initial and InitialFunc"}
	}
	if !o.hasSource() {
		return nil
	}
	if o.readonlySet && !o.readonly {
		return &InvalidOptionsError{Name: name, Reason: "cannot both have a source and not be readonly"}
	}
	if o.initialSet || o.initialFuncSet {
		return &InvalidOptionsError{Name: name, Reason: "cannot have both a source and a custom initial value"}
	}
	if o.invalidation {
		return &InvalidOptionsError{Name: name, Reason: "cannot both have a source and allow cache invalidation"}
	}
	return nil
}

func (t *Tracker) resolveSource(o *propertyOptions) (stream.Observable, error) {
	switch {
	case o.sourceStream != nil:
		return o.sourceStream, nil
	case o.derived:
		return t.Combine(o.active, nil, o.combiner)
	default:
		return t.P(o.sourceName)
	}
}

// push runs v through validation, transformation and the distinctness
// check, then caches and delivers it.
func (p *Property) push(v any) {
	if p.cell.Done() {
		return
	}
	if _, ok := v.(cacheSentinel); ok {
		p.stale = true
		return
	}
	if p.valid != nil && !p.valid(v) {
		p.owner.monitor().Rejected(p.owner, KindProperty, p.name)
		return
	}
	if p.transform != nil {
		v = p.transform(v)
	}
	if last, ok := p.cell.Value(); ok && !p.stale && p.equal(last, v) {
		return
	}
	p.stale = false

	if p.syncAccess {
		p.owner.storeValue(p.name, v)
	}
	p.owner.monitor().Emitted(p.owner, KindProperty, p.name)
	p.cell.Next(v)
}

// fail handles an error from the property's source. The property keeps its
// last value.
func (p *Property) fail(err error) {
	p.owner.logger().Error("property source failed",
		slog.String("name", p.name),
		slog.Any("error", err))
}

func (p *Property) complete() {
	p.source.Unsubscribe()
	p.cell.Complete()
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Readonly reports whether the public view rejects writes.
func (p *Property) Readonly() bool { return p.readonly }

// Sourced reports whether the property is derived from a source.
func (p *Property) Sourced() bool { return p.sourced }

// Event returns the derived event, or nil if DeriveEvent was disabled.
func (p *Property) Event() *Event { return p.event }

// View returns the public view: the property itself when writable, a
// read-only projection otherwise.
func (p *Property) View() stream.Observable { return p.view }

// Subscribe implements stream.Observable.
func (p *Property) Subscribe(o stream.Observer) *stream.Subscription {
	return p.cell.Subscribe(o)
}

// Value returns the current value, if any. Unlike Tracker.Value it works
// regardless of SynchronousAccess.
func (p *Property) Value() (any, bool) {
	return p.cell.Value()
}

// Set pushes v into a standalone property, bypassing the readonly flag.
// Properties with a source reject it.
func (p *Property) Set(v any) error {
	if p.sourced {
		return &ReadonlyError{Kind: KindProperty, Name: p.name}
	}
	p.push(v)
	return nil
}

// InvalidateCache lets the next value through the distinctness check even
// if it equals the current value. The property must have been declared with
// CacheInvalidation(true).
func (p *Property) InvalidateCache() error {
	if !p.invalidation {
		return &InvalidOptionsError{Name: p.name, Reason: "does not allow cache invalidation"}
	}
	p.push(cacheSentinel{})
	return nil
}
