package stream

import "sync"

// subscriber is a single Subject observer.
type subscriber struct {
	id  uint64
	o   Observer
	sub *Subscription
}

// Subject is a hot Observable that multicasts every value pushed with Next
// to all current subscribers.
type Subject struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*subscriber

	// terminal state
	done bool
	err  error
}

// NewSubject creates a Subject with no subscribers.
func NewSubject() *Subject {
	return &Subject{}
}

// Subscribe adds o to the subject's subscribers. If the subject has already
// terminated, o receives the terminal notification immediately.
func (s *Subject) Subscribe(o Observer) *Subscription {
	sub := &Subscription{}

	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		sub.Unsubscribe()
		deliverTerminal(o, err)
		return sub
	}
	s.nextID++
	entry := &subscriber{id: s.nextID, o: o, sub: sub}
	s.subs = append(s.subs, entry)
	s.mu.Unlock()

	sub.Add(func() { s.remove(entry.id) })
	return sub
}

// remove drops a subscriber while keeping delivery order intact.
func (s *Subject) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subs {
		if existing.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// snapshot copies the subscriber list so delivery happens without the lock.
func (s *Subject) snapshot() []*subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

// Next delivers v to every subscriber.
func (s *Subject) Next(v any) {
	for _, entry := range s.snapshot() {
		if entry.sub.Closed() || entry.o.Next == nil {
			continue
		}
		entry.o.Next(v)
	}
}

// Error terminates the subject with err.
func (s *Subject) Error(err error) {
	s.terminate(err)
}

// Complete terminates the subject successfully.
func (s *Subject) Complete() {
	s.terminate(nil)
}

func (s *Subject) terminate(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.err = err
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, entry := range subs {
		if entry.sub.Closed() {
			continue
		}
		entry.sub.Unsubscribe()
		deliverTerminal(entry.o, err)
	}
}

// Done reports whether the subject has terminated.
func (s *Subject) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Observed returns the number of live subscribers.
func (s *Subject) Observed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func deliverTerminal(o Observer, err error) {
	if err != nil {
		if o.Error != nil {
			o.Error(err)
		} else {
			reportError(err)
		}
		return
	}
	if o.Complete != nil {
		o.Complete()
	}
}

// Behavior is a Subject that remembers its latest value and replays it to
// every new subscriber before any later value.
type Behavior struct {
	Subject

	valueMu  sync.Mutex
	value    any
	hasValue bool
}

// NewBehavior creates a Behavior holding initial.
func NewBehavior(initial any) *Behavior {
	return &Behavior{value: initial, hasValue: true}
}

// NewEmptyBehavior creates a Behavior with no value; subscribers receive
// nothing until the first Next.
func NewEmptyBehavior() *Behavior {
	return &Behavior{}
}

// Value returns the latest value and whether there is one.
func (b *Behavior) Value() (any, bool) {
	b.valueMu.Lock()
	defer b.valueMu.Unlock()
	return b.value, b.hasValue
}

// Next stores v and delivers it to every subscriber.
func (b *Behavior) Next(v any) {
	if b.Done() {
		return
	}
	b.valueMu.Lock()
	b.value = v
	b.hasValue = true
	b.valueMu.Unlock()
	b.Subject.Next(v)
}

// Subscribe replays the current value, if any, then forwards later values.
func (b *Behavior) Subscribe(o Observer) *Subscription {
	sub := b.Subject.Subscribe(o)
	if sub.Closed() {
		return sub
	}
	if v, ok := b.Value(); ok && o.Next != nil {
		o.Next(v)
	}
	return sub
}
