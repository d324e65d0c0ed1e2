// Package track gives objects observable properties and event streams.
//
// A struct becomes trackable by embedding a Tracker and declaring its
// properties and events, usually once in its constructor:
//
//	type Vector struct {
//	    track.Tracker
//	}
//
//	v := &Vector{}
//	v.MustDeclare(
//	    track.PropertyDecl("x", track.Initial(0)),
//	    track.PropertyDecl("y", track.Initial(1)),
//	    track.PropertyDecl("length", track.Derived([]string{"x", "y"}, hypot)),
//	)
//
// # Properties
//
// A property always has a current value, readable with Value or Get, and
// its stream (P) replays that value to every new subscriber before
// delivering changes. Values pass through validation, transformation and a
// distinct-until-changed filter, in that order. A property either is a
// standalone cell seeded with an initial value, or mirrors a source: another
// property, a dotted path, a stream, or a combination of properties.
//
// Unless disabled, every property also registers an event of the same name
// that carries its changes without the replayed current value.
//
// # Combining
//
// Combine derives a stream from active and passive dependencies. Active
// dependencies trigger the combiner; passive ones are only sampled.
//
// # Chaining
//
// Names may be dotted paths that walk from one trackable object to the
// object held by one of its properties: "carriage.x" follows the carriage
// property and switches to the new carriage each time it changes. With
// "carriage?.x", a nil carriage yields nil instead of silence.
//
// # Teardown
//
// Configure(WithUntil(signal)) completes all streams declared afterwards
// when signal fires; Dispose completes everything.
//
// # Concurrency
//
// Propagation is synchronous: a write returns after every dependent stream
// has been updated. Registry lookups are safe from any goroutine, but writes
// to one tracker should come from one goroutine at a time.
package track
