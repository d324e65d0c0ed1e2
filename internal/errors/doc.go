// Package errors provides the coded error catalogue for valuetrack.
//
// Every error that the tracker returns carries a stable code (e.g. "VT001")
// that maps to:
//   - A category (declaration, lookup, chain, write, lifecycle, config, cli)
//   - A short message describing the error
//   - A detailed explanation and a suggestion for fixing the wiring
//
// # Usage
//
//	err := errors.New(errors.CodeDuplicateName).
//	    WithDetail(`"x" is already a property of this object`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR VT001: Duplicate property or event name
//	//
//	//   "x" is already a property of this object
//	//
//	//   Hint: Property and event names share one namespace per object.
//
// Errors from other packages that expose a Code() string method are turned
// into catalogue entries with FromError.
package errors
