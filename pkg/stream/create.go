package stream

// Of emits each of values in order, then completes.
func Of(values ...any) Observable {
	return New(func(sink Observer, sub *Subscription) {
		for _, v := range values {
			if sub.Closed() {
				return
			}
			sink.Next(v)
		}
		sink.Complete()
	})
}

// Never emits nothing and never terminates.
func Never() Observable {
	return New(func(Observer, *Subscription) {})
}

// Empty completes immediately without emitting.
func Empty() Observable {
	return New(func(sink Observer, _ *Subscription) {
		sink.Complete()
	})
}

// Throw terminates immediately with err.
func Throw(err error) Observable {
	return New(func(sink Observer, _ *Subscription) {
		sink.Error(err)
	})
}

// AsObservable hides every method of src except Subscribe, so holders of
// the result cannot push values into a Subject or Behavior.
func AsObservable(src Observable) Observable {
	return New(func(sink Observer, sub *Subscription) {
		sub.AddSubscription(src.Subscribe(sink))
	})
}

// Collect subscribes to src and appends every value to the returned slice
// pointer. It is intended for tests and diagnostics.
func Collect(src Observable) (*[]any, *Subscription) {
	values := &[]any{}
	sub := src.Subscribe(Observer{
		Next: func(v any) { *values = append(*values, v) },
	})
	return values, sub
}
