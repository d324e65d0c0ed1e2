// Package inspect serves live trackers over HTTP.
//
// A Server holds a set of registered trackers and exposes them as JSON:
//
//	GET /objects                              list of registered trackers
//	GET /objects/{id}                         synchronously cached values
//	GET /objects/{id}/properties/{name}       current value of one property
//	GET /objects/{id}/watch?property=path     WebSocket stream of a property
//	GET /objects/{id}/watch?event=path        WebSocket stream of an event
//
// Watch paths may be dotted, such as "carriage?.x". Every emission becomes
// one text frame:
//
//	{"path":"carriage?.x","kind":"property","value":42}
//
// A stream error is sent as {"error":"..."} before the socket closes.
//
// Trackers are not safe for concurrent use, so every access from the
// server's goroutines happens under one lock. Code that mutates registered
// trackers from other goroutines must do so inside Server.Do.
package inspect
