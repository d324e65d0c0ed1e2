package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

func TestCombineActiveAndPassive(t *testing.T) {
	obj := newVector(t)

	r := recordTo(t)(obj.Combine([]string{"x", "y"}, []string{"z"}, func(v ...any) any {
		return []any{v[0], v[1], v[2]}
	}))
	assert.Equal(t, []any{[]any{0, 1, 2}}, r.values)

	mustSet(t, obj, "y", 5)
	assert.Equal(t, 5, Get[int](obj, "y"))
	assert.Equal(t, []any{[]any{0, 1, 2}, []any{0, 5, 2}}, r.values)

	mustSet(t, obj, "z", 9)
	assert.Equal(t, []any{[]any{0, 1, 2}, []any{0, 5, 2}}, r.values)

	mustSet(t, obj, "y", 7)
	assert.Equal(t, []any{[]any{0, 1, 2}, []any{0, 5, 2}, []any{0, 7, 9}}, r.values)
}

func TestCombineWaitsForEveryActiveDependency(t *testing.T) {
	obj := &Tracker{}
	_, err := obj.DeclareProperty("a", Valid(func(v any) bool { return v != nil }))
	require.NoError(t, err)
	_, err = obj.DeclareProperty("b", Initial("b0"))
	require.NoError(t, err)
	_, err = obj.DeclareProperty("c", Initial("c0"))
	require.NoError(t, err)

	r := recordTo(t)(obj.Combine([]string{"a", "b"}, []string{"c"}, nil))
	assert.Empty(t, r.values)

	mustSet(t, obj, "b", "b1")
	mustSet(t, obj, "c", "c1")
	assert.Empty(t, r.values)

	mustSet(t, obj, "a", "a1")
	assert.Equal(t, []any{[]any{"a1", "b1", "c1"}}, r.values)
}

func TestCombineObject(t *testing.T) {
	obj := newVector(t)

	r := recordTo(t)(obj.CombineObject([]string{"x", "y"}, []string{"z"}, nil))
	assert.Equal(t, []any{map[string]any{"x": 0, "y": 1, "z": 2}}, r.values)

	r = recordTo(t)(obj.CombineObject([]string{"x"}, nil, func(values map[string]any) any {
		return values["x"].(int) + 100
	}))
	mustSet(t, obj, "x", 1)
	assert.Equal(t, []any{100, 101}, r.values)
}

func TestStrictChain(t *testing.T) {
	carriage1, carriage2 := newVector(t), newVector(t)
	p := newPassenger(t)

	r := recordTo(t)(p.P("carriage.x"))
	assert.Empty(t, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{0}, r.values)

	mustSet(t, carriage1, "x", 22)
	assert.Equal(t, []any{0, 22}, r.values)

	mustSet(t, p, "carriage", carriage2)
	mustSet(t, carriage2, "x", 42)
	assert.Equal(t, []any{0, 22, 0, 42}, r.values)

	mustSet(t, carriage1, "x", 999)
	assert.Equal(t, []any{0, 22, 0, 42}, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{0, 22, 0, 42, 999}, r.values)

	mustSet(t, p, "carriage", nil)
	assert.Equal(t, []any{0, 22, 0, 42, 999}, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{0, 22, 0, 42, 999, 999}, r.values)
	assert.Empty(t, r.errs)
}

func TestOptionalChain(t *testing.T) {
	carriage1, carriage2 := newVector(t), newVector(t)
	p := newPassenger(t)

	r := recordTo(t)(p.P("carriage?.x"))
	assert.Equal(t, []any{nil}, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{nil, 0}, r.values)

	mustSet(t, carriage1, "x", 22)
	assert.Equal(t, []any{nil, 0, 22}, r.values)

	mustSet(t, p, "carriage", carriage2)
	mustSet(t, carriage2, "x", 42)
	assert.Equal(t, []any{nil, 0, 22, 0, 42}, r.values)

	mustSet(t, carriage1, "x", 999)
	assert.Equal(t, []any{nil, 0, 22, 0, 42}, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{nil, 0, 22, 0, 42, 999}, r.values)

	mustSet(t, p, "carriage", nil)
	assert.Equal(t, []any{nil, 0, 22, 0, 42, 999, nil}, r.values)

	mustSet(t, p, "carriage", carriage1)
	assert.Equal(t, []any{nil, 0, 22, 0, 42, 999, nil, 999}, r.values)
}

func TestChainTreatsTypedNilAsAbsent(t *testing.T) {
	p := newPassenger(t)
	mustSet(t, p, "carriage", (*vector)(nil))

	strict := recordTo(t)(p.P("carriage.x"))
	optional := recordTo(t)(p.P("carriage?.x"))

	assert.Empty(t, strict.values)
	assert.Equal(t, []any{nil}, optional.values)
	assert.Empty(t, strict.errs)
}

func TestNestedChain(t *testing.T) {
	inner := newVector(t)
	middle := newPassenger(t)
	outer := &passenger{}
	require.NoError(t, outer.Declare(PropertyDecl("carriage", Initial(middle))))

	r := recordTo(t)(outer.P("carriage.carriage?.y"))
	assert.Equal(t, []any{nil}, r.values)

	mustSet(t, middle, "carriage", inner)
	mustSet(t, inner, "y", 3)
	assert.Equal(t, []any{nil, 1, 3}, r.values)
}

func TestChainedEvent(t *testing.T) {
	phone1, phone2 := newPhone(t), newPhone(t)
	someone := newPerson(t)

	r := recordTo(t)(someone.E("phone.ring"))
	assert.Empty(t, r.values)

	mustSet(t, someone, "phone", phone1)
	assert.Empty(t, r.values)

	require.NoError(t, phone1.Emit("ring", 22))
	assert.Equal(t, []any{22}, r.values)

	mustSet(t, someone, "phone", phone2)
	require.NoError(t, phone2.Emit("ring", 42))
	assert.Equal(t, []any{22, 42}, r.values)

	require.NoError(t, phone1.Emit("ring", 999))
	assert.Equal(t, []any{22, 42}, r.values)

	mustSet(t, someone, "phone", phone1)
	mustSet(t, someone, "phone", nil)
	mustSet(t, someone, "phone", phone1)
	assert.Equal(t, []any{22, 42}, r.values)
}

func TestChainTargetError(t *testing.T) {
	obj := &Tracker{}
	_, err := obj.DeclareProperty("link", Initial(42))
	require.NoError(t, err)

	r := recordTo(t)(obj.P("link.x"))
	require.Len(t, r.errs, 1)
	require.ErrorIs(t, r.errs[0], ErrChainTarget)

	var target *ChainTargetError
	require.ErrorAs(t, r.errs[0], &target)
	assert.Equal(t, "link", target.Link)
	assert.Equal(t, "int", target.Type)
	assert.True(t, r.sub.Closed())
}

func TestChainUnknownTail(t *testing.T) {
	p := newPassenger(t)
	r := recordTo(t)(p.P("carriage.w"))
	assert.Empty(t, r.errs)

	mustSet(t, p, "carriage", newVector(t))
	require.Len(t, r.errs, 1)
	require.ErrorIs(t, r.errs[0], ErrUnknownProperty)

	r = recordTo(t)(p.E("carriage.nothing"))
	require.Len(t, r.errs, 1)
	require.ErrorIs(t, r.errs[0], ErrUnknownEvent)
}

func TestCacheInvalidation(t *testing.T) {
	obj := newVector(t)
	r := recordTo(t)(obj.P("x"))
	assert.Equal(t, []any{0}, r.values)

	x, err := obj.PSubject("x")
	require.NoError(t, err)

	require.NoError(t, x.Set(1))
	assert.Equal(t, []any{0, 1}, r.values)

	require.NoError(t, x.Set(1))
	assert.Equal(t, []any{0, 1}, r.values)

	require.NoError(t, x.InvalidateCache())
	assert.Equal(t, []any{0, 1}, r.values)
	assert.Equal(t, 1, Get[int](obj, "x"))

	require.NoError(t, x.Set(1))
	assert.Equal(t, []any{0, 1, 1}, r.values)

	require.NoError(t, x.Set(1))
	assert.Equal(t, []any{0, 1, 1}, r.values)
}

func TestInvalidateCacheHidesMarker(t *testing.T) {
	obj := newVector(t)
	events := recordTo(t)(obj.E("x"))
	combined := recordTo(t)(obj.Combine([]string{"x"}, nil, nil))

	x, err := obj.PSubject("x")
	require.NoError(t, err)
	require.NoError(t, x.InvalidateCache())
	assert.Empty(t, events.values)
	assert.Equal(t, []any{[]any{0}}, combined.values)

	require.NoError(t, x.Set(0))
	assert.Equal(t, []any{0}, events.values)
	assert.Equal(t, []any{[]any{0}, []any{0}}, combined.values)
	assert.Equal(t, map[string]any{"x": 0, "y": 1, "z": 2}, obj.Snapshot())
}

func TestInvalidateCacheRequiresOption(t *testing.T) {
	obj := newVector(t)
	y, err := obj.PSubject("y")
	require.NoError(t, err)
	require.ErrorIs(t, y.InvalidateCache(), ErrInvalidOptions)
}

func TestDerivedProperty(t *testing.T) {
	obj := newVector(t)
	mustSet(t, obj, "y", 0)
	mustSet(t, obj, "z", 0)

	_, err := obj.DeclareProperty("length", Derived([]string{"x", "y", "z"}, func(v ...any) any {
		x, y, z := float64(v[0].(int)), float64(v[1].(int)), float64(v[2].(int))
		return math.Sqrt(x*x + y*y + z*z)
	}))
	require.NoError(t, err)

	r := recordTo(t)(obj.P("length"))
	assert.Equal(t, []any{0.0}, r.values)

	mustSet(t, obj, "x", 3*3)
	assert.Equal(t, []any{0.0, 9.0}, r.values)

	mustSet(t, obj, "y", 3*4)
	assert.Equal(t, []any{0.0, 9.0, 15.0}, r.values)

	mustSet(t, obj, "z", 4*5)
	assert.Equal(t, []any{0.0, 9.0, 15.0, 25.0}, r.values)
	assert.Equal(t, 25.0, Get[float64](obj, "length"))
}

func TestSourceProperty(t *testing.T) {
	p := newPassenger(t)
	_, err := p.DeclareProperty("x", Source("carriage?.x"))
	require.NoError(t, err)

	v, ok := p.Value("x")
	assert.True(t, ok)
	assert.Nil(t, v)

	carriage := newVector(t)
	mustSet(t, p, "carriage", carriage)
	mustSet(t, carriage, "x", 4)
	assert.Equal(t, 4, Get[int](p, "x"))
}

func TestSourceStream(t *testing.T) {
	src := stream.NewSubject()
	obj := &Tracker{}
	prop, err := obj.DeclareProperty("feed", SourceStream(src), Transform(func(v any) any { return v.(int) * 2 }))
	require.NoError(t, err)
	assert.True(t, prop.Readonly())
	assert.True(t, prop.Sourced())

	_, ok := obj.Value("feed")
	assert.False(t, ok)

	src.Next(2)
	assert.Equal(t, 4, Get[int](obj, "feed"))
}

func TestDistinctness(t *testing.T) {
	obj := newVector(t)
	r := recordTo(t)(obj.P("y"))

	mustSet(t, obj, "y", 1)
	mustSet(t, obj, "y", 3)
	mustSet(t, obj, "y", 3)
	assert.Equal(t, []any{1, 3}, r.values)
}

func TestCustomEquality(t *testing.T) {
	obj := &Tracker{}
	_, err := obj.DeclareProperty("n", Initial(1), Equal(func(a, b any) bool {
		return a.(int)%10 == b.(int)%10
	}))
	require.NoError(t, err)

	r := recordTo(t)(obj.P("n"))
	mustSet(t, obj, "n", 11)
	mustSet(t, obj, "n", 12)
	assert.Equal(t, []any{1, 12}, r.values)
}

func TestValidationAndTransform(t *testing.T) {
	m := newCountingMonitor()
	obj := New(WithMonitor(m))
	_, err := obj.DeclareProperty("mode", Initial("a"), OneOf("a", "b"))
	require.NoError(t, err)
	_, err = obj.DeclareProperty("upper", Initial(1), Transform(func(v any) any { return v.(int) * 10 }))
	require.NoError(t, err)

	r := recordTo(t)(obj.P("mode"))
	mustSet(t, obj, "mode", "c")
	mustSet(t, obj, "mode", "b")
	assert.Equal(t, []any{"a", "b"}, r.values)
	assert.Equal(t, "b", Get[string](obj, "mode"))
	assert.Equal(t, 1, m.rejected["property:mode"])

	mustSet(t, obj, "upper", 2)
	assert.Equal(t, 20, Get[int](obj, "upper"))
}

func TestInvalidInitialLeavesPropertyEmpty(t *testing.T) {
	obj := &Tracker{}
	prop, err := obj.DeclareProperty("n", Initial("nope"), Valid(func(v any) bool {
		_, ok := v.(int)
		return ok
	}))
	require.NoError(t, err)

	_, ok := prop.Value()
	assert.False(t, ok)

	r := recordTo(t)(obj.E("n"))
	mustSet(t, obj, "n", 5)
	assert.Equal(t, []any{5}, r.values)
}

func TestFlag(t *testing.T) {
	obj := &Tracker{}
	_, err := obj.DeclareProperty("open", Flag(false)...)
	require.NoError(t, err)

	mustSet(t, obj, "open", "yes")
	assert.False(t, Get[bool](obj, "open"))
	mustSet(t, obj, "open", true)
	assert.True(t, Get[bool](obj, "open"))
}

func TestInitialProducer(t *testing.T) {
	calls := 0
	obj := newVector(t)
	_, err := obj.DeclareProperty("n", InitialFunc(func(owner *Tracker) any {
		calls++
		return Get[int](owner, "y") + Get[int](owner, "z")
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, Get[int](obj, "n"))
	assert.Equal(t, 1, calls)

	mustSet(t, obj, "y", 10)
	assert.Equal(t, 3, Get[int](obj, "n"))
	assert.Equal(t, 1, calls)
}

func TestInitialStoresFunctionsVerbatim(t *testing.T) {
	obj := &Tracker{}
	fn := func() any { return 7 }
	_, err := obj.DeclareProperty("fn", Initial(fn))
	require.NoError(t, err)

	v, ok := obj.Value("fn")
	require.True(t, ok)
	_, isFunc := v.(func() any)
	assert.True(t, isFunc)
}

func TestSynchronousAccessDisabled(t *testing.T) {
	obj := &Tracker{}
	prop, err := obj.DeclareProperty("n", Initial(1), SynchronousAccess(false))
	require.NoError(t, err)

	_, ok := obj.Value("n")
	assert.False(t, ok)

	v, ok := prop.Value()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestPropertyEventSkipsCurrentValue(t *testing.T) {
	obj := newVector(t)

	r := recordTo(t)(obj.E("y"))
	assert.Empty(t, r.values)

	mustSet(t, obj, "y", 5)
	mustSet(t, obj, "y", 5)
	mustSet(t, obj, "y", 6)
	assert.Equal(t, []any{5, 6}, r.values)

	late := recordTo(t)(obj.E("y"))
	assert.Empty(t, late.values)
}

func TestDeriveEventDisabled(t *testing.T) {
	obj := &Tracker{}
	prop, err := obj.DeclareProperty("n", DeriveEvent(false))
	require.NoError(t, err)

	assert.Nil(t, prop.Event())
	assert.False(t, obj.HasEvent("n"))
	_, err = obj.E("n")
	require.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDuplicateNames(t *testing.T) {
	obj := newVector(t)

	_, err := obj.DeclareProperty("x")
	require.ErrorIs(t, err, ErrDuplicateName)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KindProperty, dup.Existing)

	_, err = obj.DeclareEvent("y")
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = obj.DeclareEvent("ring")
	require.NoError(t, err)
	_, err = obj.DeclareProperty("ring")
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KindEvent, dup.Existing)
	assert.Equal(t, "track: there is already an event 'ring' on this object", err.Error())
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []PropertyOption
	}{
		{"writable source", []PropertyOption{Source("x"), Readonly(false)}},
		{"source with initial", []PropertyOption{Source("x"), Initial(3)}},
		{"source with producer", []PropertyOption{Source("x"), InitialFunc(func(*Tracker) any { return 3 })}},
		{"initial and producer", []PropertyOption{Initial(3), InitialFunc(func(*Tracker) any { return 3 })}},
		{"source with invalidation", []PropertyOption{Source("x"), CacheInvalidation(true)}},
		{"derived without dependencies", []PropertyOption{Derived(nil, nil)}},
		{"two sources", []PropertyOption{Source("x"), SourceStream(stream.Never())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newVector(t)
			_, err := obj.DeclareProperty("p", tt.opts...)
			require.ErrorIs(t, err, ErrInvalidOptions)
			assert.False(t, obj.HasProperty("p"))
		})
	}
}

func TestUnknownNames(t *testing.T) {
	obj := newVector(t)

	_, err := obj.P("w")
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = obj.P("w.x")
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = obj.E("w")
	require.ErrorIs(t, err, ErrUnknownEvent)

	_, err = obj.Combine([]string{"x"}, []string{"w"}, nil)
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = obj.DeclareProperty("copy", Source("w"))
	require.ErrorIs(t, err, ErrUnknownProperty)

	assert.ErrorIs(t, obj.Set("w", 1), ErrUnknownProperty)
	assert.ErrorIs(t, obj.Emit("w", 1), ErrUnknownEvent)
}

func TestReadonly(t *testing.T) {
	obj := newVector(t)
	_, err := obj.DeclareProperty("copy", Source("x"))
	require.NoError(t, err)
	_, err = obj.DeclareProperty("locked", Initial(1), Readonly(true))
	require.NoError(t, err)

	require.ErrorIs(t, obj.Set("copy", 1), ErrReadonly)
	require.ErrorIs(t, obj.Set("locked", 2), ErrReadonly)
	require.ErrorIs(t, obj.Emit("x", 2), ErrReadonly)

	view, err := obj.P("locked")
	require.NoError(t, err)
	_, writable := view.(*Property)
	assert.False(t, writable)

	locked, err := obj.PSubject("locked")
	require.NoError(t, err)
	require.NoError(t, locked.Set(2))
	assert.Equal(t, 2, Get[int](obj, "locked"))

	copyProp, err := obj.PSubject("copy")
	require.NoError(t, err)
	require.ErrorIs(t, copyProp.Set(5), ErrReadonly)

	view, err = obj.P("y")
	require.NoError(t, err)
	_, writable = view.(*Property)
	assert.True(t, writable)
}

func TestStandaloneEvent(t *testing.T) {
	obj := &Tracker{}
	ev, err := obj.DeclareEvent("tick", EventValid(func(v any) bool { return v.(int) >= 0 }))
	require.NoError(t, err)
	assert.False(t, ev.Derived())

	r := recordTo(t)(obj.E("tick"))
	require.NoError(t, ev.Emit(1))
	require.NoError(t, ev.Emit(-1))
	require.NoError(t, obj.Emit("tick", 1))
	assert.Equal(t, []any{1, 1}, r.values)
}

func TestEventFilter(t *testing.T) {
	obj := &Tracker{}
	obj.Configure(WithEventFilter(func(v any) bool { return v != "ignored" }))
	require.NoError(t, obj.Declare(
		EventDecl("ring"),
		PropertyDecl("status", Initial("idle")),
	))

	ring := recordTo(t)(obj.E("ring"))
	status := recordTo(t)(obj.E("status"))

	require.NoError(t, obj.Emit("ring", "ignored"))
	require.NoError(t, obj.Emit("ring", "hello"))
	mustSet(t, obj, "status", "ignored")
	mustSet(t, obj, "status", "busy")

	assert.Equal(t, []any{"hello"}, ring.values)
	assert.Equal(t, []any{"busy"}, status.values)
	assert.Equal(t, "busy", Get[string](obj, "status"))
}

func TestUntilSignal(t *testing.T) {
	obj := &Tracker{}
	_, err := obj.DeclareProperty("before", Initial(0))
	require.NoError(t, err)

	signal := stream.NewSubject()
	obj.Configure(WithUntil(signal))
	require.NoError(t, obj.Declare(
		EventDecl("ring"),
		PropertyDecl("after", Initial(0)),
	))

	before := recordTo(t)(obj.P("before"))
	after := recordTo(t)(obj.P("after"))
	ring := recordTo(t)(obj.E("ring"))

	signal.Next(struct{}{})

	assert.False(t, before.done)
	assert.True(t, after.done)
	assert.True(t, ring.done)

	mustSet(t, obj, "after", 1)
	assert.Equal(t, []any{0}, after.values)
	assert.Equal(t, 0, Get[int](obj, "after"))
}

func TestDispose(t *testing.T) {
	m := newCountingMonitor()
	obj := newVector(t)
	obj.Configure(WithMonitor(m))

	x := recordTo(t)(obj.P("x"))
	y := recordTo(t)(obj.E("y"))
	cleaned := 0
	obj.OnDispose(func() { cleaned++ })

	obj.Dispose()
	obj.Dispose()

	assert.True(t, obj.Disposed())
	assert.True(t, x.done)
	assert.True(t, y.done)
	assert.Equal(t, 1, cleaned)
	assert.Equal(t, 1, m.disposed)

	_, err := obj.DeclareProperty("w")
	require.ErrorIs(t, err, ErrDisposed)

	obj.OnDispose(func() { cleaned++ })
	assert.Equal(t, 2, cleaned)
}

func TestDisposeReleasesDerivedSources(t *testing.T) {
	src := stream.NewSubject()
	obj := &Tracker{}
	_, err := obj.DeclareProperty("feed", SourceStream(src))
	require.NoError(t, err)
	assert.Equal(t, 1, src.Observed())

	obj.Dispose()
	assert.Equal(t, 0, src.Observed())
}

func TestZeroTracker(t *testing.T) {
	var obj Tracker
	assert.False(t, obj.HasProperty("x"))
	assert.Empty(t, obj.Properties())
	assert.Empty(t, obj.Snapshot())
	_, ok := obj.Value("x")
	assert.False(t, ok)
	assert.NotEmpty(t, obj.ID())
}

func TestNamesAndSnapshot(t *testing.T) {
	obj := newVector(t)
	_, err := obj.DeclareEvent("ring")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, obj.Properties())
	assert.Equal(t, []string{"x", "y", "z", "ring"}, obj.Events())
	assert.Equal(t, []string{"x", "y", "z", "ring"}, obj.Names())
	assert.Equal(t, map[string]any{"x": 0, "y": 1, "z": 2}, obj.Snapshot())
}

func TestMonitorCallbacks(t *testing.T) {
	m := newCountingMonitor()
	p := &passenger{}
	p.Configure(WithMonitor(Monitors(m, nil)), WithLabel("passenger"))
	require.NoError(t, p.Declare(PropertyDecl("carriage")))
	assert.Equal(t, "passenger", p.Label())

	recordTo(t)(p.P("carriage?.x"))
	mustSet(t, p, "carriage", newVector(t))

	assert.Equal(t, 1, m.declared["property:carriage"])
	assert.Equal(t, 2, m.emitted["property:carriage"])
	assert.Equal(t, []string{"carriage?.x=absent", "carriage?.x=present"}, m.relinks)
}

func TestMustDeclarePanics(t *testing.T) {
	obj := newVector(t)
	assert.Panics(t, func() {
		obj.MustDeclare(PropertyDecl("x"))
	})
}

func TestErrorCodes(t *testing.T) {
	type coded interface{ Code() string }
	errs := []error{
		&DuplicateNameError{Name: "x"},
		&InvalidOptionsError{Name: "x"},
		&UnknownPropertyError{Name: "x"},
		&UnknownEventError{Name: "x"},
		&ChainTargetError{Path: "a.b"},
		&ReadonlyError{Name: "x"},
	}
	seen := map[string]bool{}
	for _, err := range errs {
		c, ok := err.(coded)
		require.True(t, ok)
		assert.False(t, seen[c.Code()], c.Code())
		seen[c.Code()] = true
	}
}
