package track

// Kind distinguishes properties from events.
type Kind uint8

const (
	KindProperty Kind = iota + 1
	KindEvent
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

func (k Kind) article() string {
	if k == KindEvent {
		return "an event"
	}
	return "a property"
}

// Monitor observes the lifecycle of a tracker's streams. Callbacks run
// synchronously on the goroutine that caused them and must not block.
type Monitor interface {
	// Declared is called after a property or event was registered.
	Declared(t *Tracker, kind Kind, name string)

	// Emitted is called for every value accepted by a property or pushed
	// into a standalone event.
	Emitted(t *Tracker, kind Kind, name string)

	// Rejected is called when a value fails validation or the event filter.
	Rejected(t *Tracker, kind Kind, name string)

	// Relinked is called when the link of a chained path changes.
	// present is false when the new link is absent.
	Relinked(t *Tracker, path string, present bool)

	// Disposed is called once the tracker has torn down its streams.
	Disposed(t *Tracker)
}

// NopMonitor implements Monitor with no-ops. Embed it to implement only
// some of the callbacks.
type NopMonitor struct{}

func (NopMonitor) Declared(*Tracker, Kind, string) {}
func (NopMonitor) Emitted(*Tracker, Kind, string)  {}
func (NopMonitor) Rejected(*Tracker, Kind, string) {}
func (NopMonitor) Relinked(*Tracker, string, bool) {}
func (NopMonitor) Disposed(*Tracker)               {}

// multiMonitor fans callbacks out in order.
type multiMonitor []Monitor

// Monitors combines several monitors into one. Nil entries are skipped.
func Monitors(ms ...Monitor) Monitor {
	out := make(multiMonitor, 0, len(ms))
	for _, m := range ms {
		if m == nil {
			continue
		}
		out = append(out, m)
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (mm multiMonitor) Declared(t *Tracker, kind Kind, name string) {
	for _, m := range mm {
		m.Declared(t, kind, name)
	}
}

func (mm multiMonitor) Emitted(t *Tracker, kind Kind, name string) {
	for _, m := range mm {
		m.Emitted(t, kind, name)
	}
}

func (mm multiMonitor) Rejected(t *Tracker, kind Kind, name string) {
	for _, m := range mm {
		m.Rejected(t, kind, name)
	}
}

func (mm multiMonitor) Relinked(t *Tracker, path string, present bool) {
	for _, m := range mm {
		m.Relinked(t, path, present)
	}
}

func (mm multiMonitor) Disposed(t *Tracker) {
	for _, m := range mm {
		m.Disposed(t)
	}
}
