package track

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

type vector struct {
	Tracker
}

func newVector(t *testing.T) *vector {
	t.Helper()
	v := &vector{}
	require.NoError(t, v.Declare(
		PropertyDecl("x", Initial(0), CacheInvalidation(true)),
		PropertyDecl("y", Initial(1)),
		PropertyDecl("z", Initial(2)),
	))
	return v
}

type passenger struct {
	Tracker
}

func newPassenger(t *testing.T) *passenger {
	t.Helper()
	p := &passenger{}
	require.NoError(t, p.Declare(PropertyDecl("carriage")))
	return p
}

type phone struct {
	Tracker
}

func newPhone(t *testing.T) *phone {
	t.Helper()
	p := &phone{}
	require.NoError(t, p.Declare(EventDecl("ring")))
	return p
}

type person struct {
	Tracker
}

func newPerson(t *testing.T) *person {
	t.Helper()
	p := &person{}
	require.NoError(t, p.Declare(PropertyDecl("phone")))
	return p
}

// recorder collects every value and error of a stream.
type recorder struct {
	values []any
	errs   []error
	done   bool
	sub    *stream.Subscription
}

// recordTo subscribes a recorder to the result of a stream lookup:
// recordTo(t)(obj.P("x")).
func recordTo(t *testing.T) func(stream.Observable, error) *recorder {
	return func(src stream.Observable, err error) *recorder {
		t.Helper()
		require.NoError(t, err)
		return record(src)
	}
}

func record(src stream.Observable) *recorder {
	r := &recorder{}
	r.sub = src.Subscribe(stream.Observer{
		Next:     func(v any) { r.values = append(r.values, v) },
		Error:    func(err error) { r.errs = append(r.errs, err) },
		Complete: func() { r.done = true },
	})
	return r
}

func mustSet(t *testing.T, tr interface{ Set(string, any) error }, name string, v any) {
	t.Helper()
	require.NoError(t, tr.Set(name, v))
}

// countingMonitor counts monitor callbacks.
type countingMonitor struct {
	declared map[string]int
	emitted  map[string]int
	rejected map[string]int
	relinks  []string
	disposed int
}

func newCountingMonitor() *countingMonitor {
	return &countingMonitor{
		declared: map[string]int{},
		emitted:  map[string]int{},
		rejected: map[string]int{},
	}
}

func (m *countingMonitor) Declared(_ *Tracker, kind Kind, name string) {
	m.declared[kind.String()+":"+name]++
}

func (m *countingMonitor) Emitted(_ *Tracker, kind Kind, name string) {
	m.emitted[kind.String()+":"+name]++
}

func (m *countingMonitor) Rejected(_ *Tracker, kind Kind, name string) {
	m.rejected[kind.String()+":"+name]++
}

func (m *countingMonitor) Relinked(_ *Tracker, path string, present bool) {
	state := "absent"
	if present {
		state = "present"
	}
	m.relinks = append(m.relinks, path+"="+state)
}

func (m *countingMonitor) Disposed(*Tracker) { m.disposed++ }
