package track

import (
	"log/slog"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

// EventOption is a functional option for DeclareEvent.
type EventOption func(*eventOptions)

type eventOptions struct {
	valid func(v any) bool
}

// EventValid sets a predicate that values emitted into the event must
// satisfy, in addition to the tracker's event filter.
func EventValid(fn func(v any) bool) EventOption {
	return func(o *eventOptions) {
		o.valid = fn
	}
}

// Event is a stream of discrete occurrences without a current value.
//
// A standalone event is written with Emit. An event derived from a property
// delivers the property's changes but never its current value.
type Event struct {
	owner *Tracker
	name  string

	// filter combines the tracker's event filter and EventValid.
	filter func(v any) bool

	subject  *stream.Subject
	property *Property
}

// DeclareEvent declares a standalone event on the object.
func (t *Tracker) DeclareEvent(name string, opts ...EventOption) (*Event, error) {
	if err := t.reserve(name); err != nil {
		return nil, err
	}
	var o eventOptions
	for _, opt := range opts {
		opt(&o)
	}

	settings := t.settings()
	e := &Event{
		owner:   t,
		name:    name,
		filter:  joinFilters(settings.filter, o.valid),
		subject: stream.NewSubject(),
	}
	if err := t.registerEvent(e); err != nil {
		return nil, err
	}
	t.bindUntil(settings.until, e.complete)

	t.monitor().Declared(t, KindEvent, name)
	t.logger().Debug("event declared", slog.String("name", name))
	return e, nil
}

func newDerivedEvent(t *Tracker, p *Property, filter func(v any) bool) *Event {
	return &Event{
		owner:    t,
		name:     p.name,
		filter:   filter,
		property: p,
	}
}

func joinFilters(filters ...func(v any) bool) func(v any) bool {
	var active []func(v any) bool
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(v any) bool {
		for _, f := range active {
			if !f(v) {
				return false
			}
		}
		return true
	}
}

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// Derived reports whether the event carries the changes of a property.
func (e *Event) Derived() bool { return e.property != nil }

// Subscribe implements stream.Observable.
func (e *Event) Subscribe(o stream.Observer) *stream.Subscription {
	if e.property != nil {
		return e.subscribeChanges(o)
	}
	return e.subject.Subscribe(o)
}

// subscribeChanges subscribes to the property and drops the replay of its
// current value, so only later changes are delivered.
func (e *Event) subscribeChanges(o stream.Observer) *stream.Subscription {
	return stream.New(func(sink stream.Observer, sub *stream.Subscription) {
		_, replay := e.property.Value()
		sub.AddSubscription(e.property.Subscribe(stream.Observer{
			Next: func(v any) {
				if replay {
					replay = false
					return
				}
				if e.filter != nil && !e.filter(v) {
					return
				}
				sink.Next(v)
			},
			Error:    sink.Error,
			Complete: sink.Complete,
		}))
		replay = false
	}).Subscribe(o)
}

// Emit pushes v to the subscribers of a standalone event. Values rejected by
// the event filter are dropped without error. Events derived from a
// property reject it with a ReadonlyError.
func (e *Event) Emit(v any) error {
	if e.property != nil {
		return &ReadonlyError{Kind: KindEvent, Name: e.name}
	}
	if e.subject.Done() {
		return nil
	}
	if e.filter != nil && !e.filter(v) {
		e.owner.monitor().Rejected(e.owner, KindEvent, e.name)
		return nil
	}
	e.owner.monitor().Emitted(e.owner, KindEvent, e.name)
	e.subject.Next(v)
	return nil
}

func (e *Event) complete() {
	if e.subject != nil {
		e.subject.Complete()
	}
}
