// Package valuetrack provides the public API for observable properties and
// events on Go objects.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/valuetrack"
//
// Usage:
//
//	type Vector struct {
//	    valuetrack.Tracker
//	}
//
//	func NewVector() *Vector {
//	    v := &Vector{}
//	    v.MustDeclare(
//	        valuetrack.PropertyDecl("x", valuetrack.Initial(0)),
//	        valuetrack.PropertyDecl("y", valuetrack.Initial(1)),
//	    )
//	    return v
//	}
//
//	xs, _ := v.P("x")
//	xs.Subscribe(valuetrack.Observer{Next: func(v any) { fmt.Println(v) }})
package valuetrack

import (
	"github.com/vango-dev/valuetrack/pkg/stream"
	"github.com/vango-dev/valuetrack/pkg/track"
)

// =============================================================================
// Streams
// =============================================================================

// Observable is a source of values that can be subscribed to.
type Observable = stream.Observable

// Observer receives notifications from an Observable.
type Observer = stream.Observer

// Subscription is the handle returned by Subscribe.
type Subscription = stream.Subscription

// Subject is a hot Observable, usable as a teardown signal for WithUntil.
type Subject = stream.Subject

// NewSubject creates a Subject with no subscribers.
func NewSubject() *Subject { return stream.NewSubject() }

// =============================================================================
// Trackers
// =============================================================================

// Tracker holds the observable properties and events of one object. Embed it
// by value.
type Tracker = track.Tracker

// Trackable is implemented by every object that embeds a Tracker.
type Trackable = track.Trackable

// Property is an observable value with a current value.
type Property = track.Property

// Event is a stream of discrete occurrences.
type Event = track.Event

// Declaration is one entry of Tracker.Declare.
type Declaration = track.Declaration

// Combiner turns dependency values into one value.
type Combiner = track.Combiner

// Monitor observes the lifecycle of a tracker's streams.
type Monitor = track.Monitor

// New creates a configured Tracker.
func New(opts ...track.Option) *Tracker { return track.New(opts...) }

// PropertyDecl describes a property for Tracker.Declare.
func PropertyDecl(name string, opts ...track.PropertyOption) Declaration {
	return track.PropertyDecl(name, opts...)
}

// EventDecl describes a standalone event for Tracker.Declare.
func EventDecl(name string, opts ...track.EventOption) Declaration {
	return track.EventDecl(name, opts...)
}

// Get returns the current value of a property as a T.
func Get[T any](v track.Valuer, name string) T { return track.Get[T](v, name) }

// =============================================================================
// Options
// =============================================================================

var (
	Source            = track.Source
	SourceStream      = track.SourceStream
	Derived           = track.Derived
	Readonly          = track.Readonly
	SynchronousAccess = track.SynchronousAccess
	DeriveEvent       = track.DeriveEvent
	CacheInvalidation = track.CacheInvalidation
	Equal             = track.Equal
	Valid             = track.Valid
	OneOf             = track.OneOf
	Transform         = track.Transform
	Initial           = track.Initial
	InitialFunc       = track.InitialFunc
	Flag              = track.Flag
	EventValid        = track.EventValid

	WithUntil       = track.WithUntil
	WithEventFilter = track.WithEventFilter
	WithLogger      = track.WithLogger
	WithMonitor     = track.WithMonitor
	WithLabel       = track.WithLabel
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrDuplicateName   = track.ErrDuplicateName
	ErrInvalidOptions  = track.ErrInvalidOptions
	ErrUnknownProperty = track.ErrUnknownProperty
	ErrUnknownEvent    = track.ErrUnknownEvent
	ErrChainTarget     = track.ErrChainTarget
	ErrReadonly        = track.ErrReadonly
	ErrDisposed        = track.ErrDisposed
)
