package stream

// forward subscribes to src on behalf of a downstream sink, overriding Next.
// Errors and completion pass straight through.
func forward(src Observable, sink Observer, sub *Subscription, next func(v any)) {
	sub.AddSubscription(src.Subscribe(Observer{
		Next:     next,
		Error:    sink.Error,
		Complete: sink.Complete,
	}))
}

// Map applies fn to every value of src.
func Map(src Observable, fn func(v any) any) Observable {
	return New(func(sink Observer, sub *Subscription) {
		forward(src, sink, sub, func(v any) {
			sink.Next(fn(v))
		})
	})
}

// Filter forwards only the values of src for which keep returns true.
func Filter(src Observable, keep func(v any) bool) Observable {
	return New(func(sink Observer, sub *Subscription) {
		forward(src, sink, sub, func(v any) {
			if keep(v) {
				sink.Next(v)
			}
		})
	})
}

// Distinct suppresses values equal to the previously forwarded one.
// A nil equal uses Equal.
func Distinct(src Observable, equal func(a, b any) bool) Observable {
	if equal == nil {
		equal = Equal
	}
	return New(func(sink Observer, sub *Subscription) {
		var (
			last any
			seen bool
		)
		forward(src, sink, sub, func(v any) {
			if seen && equal(last, v) {
				return
			}
			last, seen = v, true
			sink.Next(v)
		})
	})
}

// Skip drops the first n values of src.
func Skip(src Observable, n int) Observable {
	return New(func(sink Observer, sub *Subscription) {
		skipped := 0
		forward(src, sink, sub, func(v any) {
			if skipped < n {
				skipped++
				return
			}
			sink.Next(v)
		})
	})
}

// TakeUntil mirrors src until notifier emits a value or completes, then
// completes.
func TakeUntil(src Observable, notifier Observable) Observable {
	if notifier == nil {
		return src
	}
	return New(func(sink Observer, sub *Subscription) {
		sub.AddSubscription(notifier.Subscribe(Observer{
			Next:     func(any) { sink.Complete() },
			Error:    sink.Error,
			Complete: sink.Complete,
		}))
		if sub.Closed() {
			return
		}
		forward(src, sink, sub, sink.Next)
	})
}

// CombineLatest emits a []any holding the latest value of every source each
// time any source emits, once all of them have emitted at least once. It
// completes when every source has completed.
func CombineLatest(srcs ...Observable) Observable {
	if len(srcs) == 0 {
		return Empty()
	}
	return New(func(sink Observer, sub *Subscription) {
		values := make([]any, len(srcs))
		has := make([]bool, len(srcs))
		missing := len(srcs)
		active := len(srcs)

		for i, src := range srcs {
			i := i
			sub.AddSubscription(src.Subscribe(Observer{
				Next: func(v any) {
					if !has[i] {
						has[i] = true
						missing--
					}
					values[i] = v
					if missing == 0 {
						out := make([]any, len(values))
						copy(out, values)
						sink.Next(out)
					}
				},
				Error: sink.Error,
				Complete: func() {
					active--
					if active == 0 {
						sink.Complete()
					}
				},
			}))
			if sub.Closed() {
				return
			}
		}
	})
}

// WithLatestFrom emits combine(v, latest) for every value v of src, where
// latest holds the most recent value of each of others. Values of src that
// arrive before every one of others has emitted are dropped. Emissions of
// others never trigger output.
func WithLatestFrom(src Observable, others []Observable, combine func(v any, latest []any) any) Observable {
	return New(func(sink Observer, sub *Subscription) {
		latest := make([]any, len(others))
		has := make([]bool, len(others))
		missing := len(others)

		for i, other := range others {
			i := i
			sub.AddSubscription(other.Subscribe(Observer{
				Next: func(v any) {
					if !has[i] {
						has[i] = true
						missing--
					}
					latest[i] = v
				},
				Error: sink.Error,
			}))
			if sub.Closed() {
				return
			}
		}

		forward(src, sink, sub, func(v any) {
			if missing > 0 {
				return
			}
			snapshot := make([]any, len(latest))
			copy(snapshot, latest)
			sink.Next(combine(v, snapshot))
		})
	})
}

// SwitchMap maps every value of src to an inner Observable and mirrors only
// the most recent one: each new value of src unsubscribes the previous inner
// stream before subscribing the next. An error from project terminates the
// output. The output completes once src and the current inner stream have
// both completed.
func SwitchMap(src Observable, project func(v any) (Observable, error)) Observable {
	return New(func(sink Observer, sub *Subscription) {
		var (
			inner      *Subscription
			innerDone  = true
			outerDone  bool
			generation int
		)

		sub.Add(func() { inner.Unsubscribe() })

		sub.AddSubscription(src.Subscribe(Observer{
			Next: func(v any) {
				inner.Unsubscribe()
				inner = nil
				generation++
				gen := generation

				next, err := project(v)
				if err != nil {
					sink.Error(err)
					return
				}
				innerDone = false
				s := next.Subscribe(Observer{
					Next: func(v any) {
						if gen == generation {
							sink.Next(v)
						}
					},
					Error: func(err error) {
						if gen == generation {
							sink.Error(err)
						}
					},
					Complete: func() {
						if gen != generation {
							return
						}
						innerDone = true
						if outerDone {
							sink.Complete()
						}
					},
				})
				if gen == generation && !sub.Closed() {
					inner = s
				} else {
					s.Unsubscribe()
				}
			},
			Error: sink.Error,
			Complete: func() {
				outerDone = true
				if innerDone {
					sink.Complete()
				}
			},
		}))
	})
}
