// Package stream provides the synchronous push-based streams that back
// tracked properties and events.
//
// An Observable delivers values to an Observer through Next, and may
// terminate once with Error or Complete:
//
//	s := stream.NewSubject()
//	sub := s.Subscribe(stream.Observer{
//	    Next: func(v any) { fmt.Println(v) },
//	})
//	s.Next(1) // prints 1
//	sub.Unsubscribe()
//
// Subject is a hot multicast stream; Behavior additionally remembers its
// latest value and replays it to new subscribers. Operators such as Map,
// Filter, Distinct, CombineLatest, WithLatestFrom and SwitchMap build cold
// observables: every Subscribe call sets up its own upstream subscriptions
// and tears them down on Unsubscribe.
//
// # Delivery
//
// There is no scheduler. Every notification is delivered synchronously on
// the goroutine that produced it, in subscription order, before the producing
// call returns. Subscriber lists are copied before delivery, so subscribing or
// unsubscribing from inside a callback is safe.
package stream
