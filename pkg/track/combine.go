package track

import "github.com/vango-dev/valuetrack/pkg/stream"

// Combine derives a stream from active and passive dependencies, each a
// property name or dotted path.
//
// Nothing is emitted until every active dependency has a value. After that
// the combiner runs on every change of an active dependency, with the latest
// value of each passive dependency. Changes of passive dependencies alone
// never trigger an emission. A nil combiner yields the values as a []any.
func (t *Tracker) Combine(active, passive []string, combiner Combiner) (stream.Observable, error) {
	if combiner == nil {
		combiner = func(values ...any) any { return values }
	}

	actives, err := t.resolveAll(active)
	if err != nil {
		return nil, err
	}
	passives, err := t.resolveAll(passive)
	if err != nil {
		return nil, err
	}

	combined := stream.CombineLatest(actives...)
	if len(passives) == 0 {
		return stream.Map(combined, func(v any) any {
			return combiner(v.([]any)...)
		}), nil
	}
	return stream.WithLatestFrom(combined, passives, func(v any, latest []any) any {
		values := append(append([]any(nil), v.([]any)...), latest...)
		return combiner(values...)
	}), nil
}

// CombineObject is Combine with the values keyed by dependency name. A nil
// fn yields the map itself.
func (t *Tracker) CombineObject(active, passive []string, fn func(values map[string]any) any) (stream.Observable, error) {
	if fn == nil {
		fn = func(values map[string]any) any { return values }
	}
	names := append(append([]string(nil), active...), passive...)
	return t.Combine(active, passive, func(values ...any) any {
		keyed := make(map[string]any, len(values))
		for i, v := range values {
			keyed[names[i]] = v
		}
		return fn(keyed)
	})
}

func (t *Tracker) resolveAll(names []string) ([]stream.Observable, error) {
	out := make([]stream.Observable, 0, len(names))
	for _, name := range names {
		src, err := t.P(name)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}
