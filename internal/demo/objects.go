// Package demo holds the sample objects behind `valuetrack demo` and
// `valuetrack serve`.
package demo

import (
	"math"

	"github.com/vango-dev/valuetrack/pkg/track"
)

// Vector is a point with a derived length. x allows cache invalidation.
type Vector struct {
	track.Tracker
}

// NewVector creates a Vector at (0, 1, 2).
func NewVector(opts ...track.Option) *Vector {
	v := &Vector{}
	v.Configure(append([]track.Option{track.WithLabel("vector")}, opts...)...)
	v.MustDeclare(
		track.PropertyDecl("x", track.Initial(0), track.CacheInvalidation(true)),
		track.PropertyDecl("y", track.Initial(1)),
		track.PropertyDecl("z", track.Initial(2)),
		track.PropertyDecl("length", track.Derived([]string{"x", "y", "z"}, length)),
	)
	return v
}

func length(values ...any) any {
	var sum float64
	for _, v := range values {
		f := toFloat(v)
		sum += f * f
	}
	return math.Sqrt(sum)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// Passenger rides in a carriage, which is a Vector or nil.
type Passenger struct {
	track.Tracker
}

// NewPassenger creates a Passenger without a carriage. The position
// property mirrors carriage?.x.
func NewPassenger(opts ...track.Option) *Passenger {
	p := &Passenger{}
	p.Configure(append([]track.Option{track.WithLabel("passenger")}, opts...)...)
	p.MustDeclare(
		track.PropertyDecl("carriage"),
		track.PropertyDecl("position", track.Source("carriage?.x")),
	)
	return p
}

// Phone has a ring event.
type Phone struct {
	track.Tracker
}

// NewPhone creates a Phone.
func NewPhone(opts ...track.Option) *Phone {
	p := &Phone{}
	p.Configure(append([]track.Option{track.WithLabel("phone")}, opts...)...)
	p.MustDeclare(track.EventDecl("ring"))
	return p
}

// Ring emits v on the ring event.
func (p *Phone) Ring(v any) error {
	return p.Emit("ring", v)
}

// Person owns a phone, which is a Phone or nil.
type Person struct {
	track.Tracker
}

// NewPerson creates a Person without a phone.
func NewPerson(opts ...track.Option) *Person {
	p := &Person{}
	p.Configure(append([]track.Option{track.WithLabel("person")}, opts...)...)
	p.MustDeclare(track.PropertyDecl("phone"))
	return p
}
