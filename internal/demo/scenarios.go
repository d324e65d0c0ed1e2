package demo

import (
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/valuetrack/internal/errors"
	"github.com/vango-dev/valuetrack/pkg/stream"
)

// Scenario is a scripted walkthrough that prints the emission log of a
// stream after every step.
type Scenario struct {
	Name        string
	Description string
	Run         func(w io.Writer) error
}

var scenarios = map[string]Scenario{
	"vector": {
		Name:        "vector",
		Description: "combine x and y (active) with z (passive)",
		Run:         runVector,
	},
	"chain": {
		Name:        "chain",
		Description: "follow carriage.x across carriage changes",
		Run: func(w io.Writer) error {
			return runChain(w, "carriage.x")
		},
	},
	"optional": {
		Name:        "optional",
		Description: "follow carriage?.x, emitting nil without a carriage",
		Run: func(w io.Writer) error {
			return runChain(w, "carriage?.x")
		},
	},
	"events": {
		Name:        "events",
		Description: "follow phone.ring across phone changes",
		Run:         runEvents,
	},
	"length": {
		Name:        "length",
		Description: "derive the length of a vector from x, y and z",
		Run:         runLength,
	},
}

// Names returns the scenario names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, errors.New(errors.CodeUnknownScenario).
			WithDetail(fmt.Sprintf("No scenario named %q; available: %v", name, Names()))
	}
	return s, nil
}

// emissionLog records a stream and prints it after every step.
type emissionLog struct {
	w      io.Writer
	values []any
	err    error
	sub    *stream.Subscription
}

// watch returns a function that subscribes to a stream lookup result, so
// that lookups can be passed through directly: watch(w)(obj.P("x")).
func watch(w io.Writer) func(stream.Observable, error) (*emissionLog, error) {
	return func(src stream.Observable, err error) (*emissionLog, error) {
		if err != nil {
			return nil, err
		}
		l := &emissionLog{w: w, values: []any{}}
		l.sub = src.Subscribe(stream.Observer{
			Next:  func(v any) { l.values = append(l.values, v) },
			Error: func(err error) { l.err = err },
		})
		return l, nil
	}
}

func (l *emissionLog) step(label string, fn func() error) error {
	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(l.w, "  %-28s %v\n", label, l.values)
	if err != nil {
		return err
	}
	return l.err
}

func runVector(w io.Writer) error {
	v := NewVector()
	defer v.Dispose()

	l, err := watch(w)(v.Combine([]string{"x", "y"}, []string{"z"}, nil))
	if err != nil {
		return err
	}
	steps := []struct {
		label string
		fn    func() error
	}{
		{"subscribe", nil},
		{"y = 5", func() error { return v.Set("y", 5) }},
		{"z = 9 (passive)", func() error { return v.Set("z", 9) }},
		{"y = 7", func() error { return v.Set("y", 7) }},
	}
	for _, s := range steps {
		if err := l.step(s.label, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func runChain(w io.Writer, path string) error {
	c1, c2 := NewVector(), NewVector()
	p := NewPassenger()
	defer p.Dispose()

	l, err := watch(w)(p.P(path))
	if err != nil {
		return err
	}
	steps := []struct {
		label string
		fn    func() error
	}{
		{"subscribe", nil},
		{"carriage = c1", func() error { return p.Set("carriage", c1) }},
		{"c1.x = 22", func() error { return c1.Set("x", 22) }},
		{"carriage = c2", func() error { return p.Set("carriage", c2) }},
		{"c2.x = 42", func() error { return c2.Set("x", 42) }},
		{"c1.x = 999 (unlinked)", func() error { return c1.Set("x", 999) }},
		{"carriage = c1", func() error { return p.Set("carriage", c1) }},
		{"carriage = nil", func() error { return p.Set("carriage", nil) }},
		{"carriage = c1", func() error { return p.Set("carriage", c1) }},
	}
	for _, s := range steps {
		if err := l.step(s.label, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func runEvents(w io.Writer) error {
	ph1, ph2 := NewPhone(), NewPhone()
	someone := NewPerson()
	defer someone.Dispose()

	l, err := watch(w)(someone.E("phone.ring"))
	if err != nil {
		return err
	}
	steps := []struct {
		label string
		fn    func() error
	}{
		{"subscribe", nil},
		{"phone = ph1", func() error { return someone.Set("phone", ph1) }},
		{"ph1 rings 22", func() error { return ph1.Ring(22) }},
		{"phone = ph2", func() error { return someone.Set("phone", ph2) }},
		{"ph2 rings 42", func() error { return ph2.Ring(42) }},
		{"ph1 rings 999 (unlinked)", func() error { return ph1.Ring(999) }},
		{"phone = ph1", func() error { return someone.Set("phone", ph1) }},
		{"phone = nil", func() error { return someone.Set("phone", nil) }},
		{"phone = ph1", func() error { return someone.Set("phone", ph1) }},
	}
	for _, s := range steps {
		if err := l.step(s.label, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func runLength(w io.Writer) error {
	v := NewVector()
	defer v.Dispose()

	x, err := v.PSubject("x")
	if err != nil {
		return err
	}
	l, err := watch(w)(v.P("length"))
	if err != nil {
		return err
	}
	steps := []struct {
		label string
		fn    func() error
	}{
		{"subscribe", nil},
		{"y = 0, z = 0", func() error {
			if err := v.Set("y", 0); err != nil {
				return err
			}
			return v.Set("z", 0)
		}},
		{"x = 9", func() error { return x.Set(9) }},
		{"y = 12", func() error { return v.Set("y", 12) }},
		{"z = 20", func() error { return v.Set("z", 20) }},
	}
	for _, s := range steps {
		if err := l.step(s.label, s.fn); err != nil {
			return err
		}
	}
	return nil
}
