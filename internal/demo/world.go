package demo

import "github.com/vango-dev/valuetrack/pkg/track"

// World is a small graph of linked demo objects.
type World struct {
	Carriages [2]*Vector
	Passenger *Passenger
	Phones    [2]*Phone
	Person    *Person

	step int
}

// NewWorld creates the objects and links the first carriage and phone.
// opts apply to every object.
func NewWorld(opts ...track.Option) *World {
	w := &World{
		Carriages: [2]*Vector{NewVector(opts...), NewVector(opts...)},
		Passenger: NewPassenger(opts...),
		Phones:    [2]*Phone{NewPhone(opts...), NewPhone(opts...)},
		Person:    NewPerson(opts...),
	}
	_ = w.Passenger.Set("carriage", w.Carriages[0])
	_ = w.Person.Set("phone", w.Phones[0])
	return w
}

// Trackers returns every object of the world.
func (w *World) Trackers() []*track.Tracker {
	return []*track.Tracker{
		&w.Carriages[0].Tracker,
		&w.Carriages[1].Tracker,
		&w.Passenger.Tracker,
		&w.Phones[0].Tracker,
		&w.Phones[1].Tracker,
		&w.Person.Tracker,
	}
}

// Step applies the next deterministic mutation: both carriages move, the
// passenger changes carriage every third step, the linked phone rings and
// the person swaps phones every fifth step.
func (w *World) Step() error {
	w.step++
	n := w.step

	for i, c := range w.Carriages {
		if err := c.Set("x", (n+i)%10); err != nil {
			return err
		}
	}
	if n%3 == 0 {
		if err := w.Passenger.Set("carriage", w.Carriages[(n/3)%2]); err != nil {
			return err
		}
	}
	phone := w.Phones[(n/5)%2]
	if n%5 == 0 {
		if err := w.Person.Set("phone", phone); err != nil {
			return err
		}
	}
	return phone.Ring(n)
}

// Dispose disposes every object.
func (w *World) Dispose() {
	for _, t := range w.Trackers() {
		t.Dispose()
	}
}
