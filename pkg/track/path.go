package track

import (
	"fmt"
	"log/slog"
	"reflect"
	"regexp"

	"github.com/vango-dev/valuetrack/pkg/stream"
)

// pathPattern splits a path at its first '.' or '?.' separator.
var pathPattern = regexp.MustCompile(`^(.+?)(\??\.)(.+)$`)

// chainPath is a dotted path split at its first separator.
type chainPath struct {
	full     string
	head     string
	tail     string
	optional bool
}

func splitPath(name string) (chainPath, bool) {
	m := pathPattern.FindStringSubmatch(name)
	if m == nil {
		return chainPath{}, false
	}
	return chainPath{full: name, head: m[1], tail: m[3], optional: m[2] == "?."}, true
}

// P returns the stream of a property by name. The name may be a dotted path
// such as "carriage.x" or "carriage?.x", which follows the object held by
// the carriage property:
//
//   - with ".", nothing is emitted while the link is nil;
//   - with "?.", nil is emitted while the link is nil.
//
// Each time the link changes, the stream switches to the new object.
func (t *Tracker) P(name string) (stream.Observable, error) {
	if path, ok := splitPath(name); ok {
		return t.chain(path, func(target Trackable, tail string) (stream.Observable, error) {
			return target.P(tail)
		})
	}
	p, err := t.LookupProperty(name)
	if err != nil {
		return nil, err
	}
	return p.view, nil
}

// E returns an event stream by name. The name may be a dotted path whose
// last segment is an event of the linked object, such as "phone.ring".
// Properties declared with DeriveEvent can be looked up as events too.
func (t *Tracker) E(name string) (stream.Observable, error) {
	if path, ok := splitPath(name); ok {
		return t.chain(path, func(target Trackable, tail string) (stream.Observable, error) {
			return target.E(tail)
		})
	}
	e, err := t.LookupEvent(name)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// chain follows path.head and switches to resolve(link, path.tail) for every
// object the head property holds.
func (t *Tracker) chain(path chainPath, resolve func(Trackable, string) (stream.Observable, error)) (stream.Observable, error) {
	head, err := t.P(path.head)
	if err != nil {
		return nil, err
	}
	return stream.SwitchMap(head, func(link any) (stream.Observable, error) {
		if absent(link) {
			t.relinked(path, false)
			if path.optional {
				return stream.Of(nil), nil
			}
			return stream.Never(), nil
		}
		target, ok := link.(Trackable)
		if !ok {
			return stream.Throw(&ChainTargetError{Path: path.full, Link: path.head, Type: fmt.Sprintf("%T", link)}), nil
		}
		t.relinked(path, true)
		return resolve(target, path.tail)
	}), nil
}

func (t *Tracker) relinked(path chainPath, present bool) {
	t.monitor().Relinked(t, path.full, present)
	t.logger().Debug("chain relinked",
		slog.String("path", path.full),
		slog.Bool("present", present))
}

// absent reports whether a link value counts as missing: nil, or a nil
// pointer, map, slice, func, chan or interface.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
