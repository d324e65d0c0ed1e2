package stream

import (
	"log/slog"
	"sync"
)

// Observer receives notifications from an Observable.
// Any of the callbacks may be nil.
type Observer struct {
	Next     func(v any)
	Error    func(err error)
	Complete func()
}

// Observable is a source of values that can be subscribed to.
type Observable interface {
	Subscribe(o Observer) *Subscription
}

// Func produces values for a single subscription. It is called once per
// Subscribe with a sink that ignores notifications after termination, and
// the subscription the caller will receive. Producers attach their teardown
// with sub.Add.
type Func func(sink Observer, sub *Subscription)

type funcObservable struct {
	fn Func
}

// New creates a cold Observable from fn.
func New(fn Func) Observable {
	return &funcObservable{fn: fn}
}

// Subscribe implements Observable.
func (f *funcObservable) Subscribe(o Observer) *Subscription {
	sub := &Subscription{}
	s := &sink{o: o, sub: sub}
	f.fn(s.observer(), sub)
	return sub
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	mu        sync.Mutex
	closed    bool
	teardowns []func()
}

// Unsubscribe releases the subscription. Teardowns run once, most recently
// added first. Calling Unsubscribe more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Add registers fn to run on Unsubscribe. If the subscription is already
// closed, fn runs immediately.
func (s *Subscription) Add(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

// AddSubscription ties the lifetime of child to s.
func (s *Subscription) AddSubscription(child *Subscription) {
	if child == nil {
		return
	}
	s.Add(child.Unsubscribe)
}

// sink guards an Observer against notifications after termination or
// after its subscription was released.
type sink struct {
	o    Observer
	sub  *Subscription
	done bool
}

func (s *sink) observer() Observer {
	return Observer{Next: s.next, Error: s.error, Complete: s.complete}
}

func (s *sink) next(v any) {
	if s.done || s.sub.Closed() {
		return
	}
	if s.o.Next != nil {
		s.o.Next(v)
	}
}

func (s *sink) error(err error) {
	if s.done || s.sub.Closed() {
		return
	}
	s.done = true
	s.sub.Unsubscribe()
	if s.o.Error != nil {
		s.o.Error(err)
		return
	}
	reportError(err)
}

func (s *sink) complete() {
	if s.done || s.sub.Closed() {
		return
	}
	s.done = true
	s.sub.Unsubscribe()
	if s.o.Complete != nil {
		s.o.Complete()
	}
}

// reportError logs an error that reached an Observer without an Error
// callback.
func reportError(err error) {
	slog.Default().Error("stream: unhandled error", "error", err)
}
