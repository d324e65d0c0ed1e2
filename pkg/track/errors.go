package track

import (
	"errors"
	"fmt"

	vterrors "github.com/vango-dev/valuetrack/internal/errors"
)

// Sentinel errors. Every typed error below matches one of these through
// errors.Is.
var (
	ErrDuplicateName   = errors.New("track: duplicate name")
	ErrInvalidOptions  = errors.New("track: invalid property options")
	ErrUnknownProperty = errors.New("track: unknown property")
	ErrUnknownEvent    = errors.New("track: unknown event")
	ErrChainTarget     = errors.New("track: chained link is not trackable")
	ErrReadonly        = errors.New("track: readonly")

	// ErrDisposed is returned when declaring on a disposed tracker.
	ErrDisposed = errors.New("track: tracker disposed")
)

// DuplicateNameError is returned when a name is declared twice on one
// object, either as a property or as an event.
type DuplicateNameError struct {
	Name     string
	Existing Kind
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("track: there is already %s '%s' on this object", e.Existing.article(), e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// Code returns the catalogue code.
func (e *DuplicateNameError) Code() string { return vterrors.CodeDuplicateName }

// InvalidOptionsError is returned when property options contradict each
// other.
type InvalidOptionsError struct {
	Name   string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("track: the property '%s' %s", e.Name, e.Reason)
}

func (e *InvalidOptionsError) Is(target error) bool { return target == ErrInvalidOptions }

// Code returns the catalogue code.
func (e *InvalidOptionsError) Code() string { return vterrors.CodeInvalidOptions }

// UnknownPropertyError is returned when looking up an undeclared property.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("track: no property '%s' exists", e.Name)
}

func (e *UnknownPropertyError) Is(target error) bool { return target == ErrUnknownProperty }

// Code returns the catalogue code.
func (e *UnknownPropertyError) Code() string { return vterrors.CodeUnknownProperty }

// UnknownEventError is returned when looking up an undeclared event.
type UnknownEventError struct {
	Name string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("track: no event '%s' exists", e.Name)
}

func (e *UnknownEventError) Is(target error) bool { return target == ErrUnknownEvent }

// Code returns the catalogue code.
func (e *UnknownEventError) Code() string { return vterrors.CodeUnknownEvent }

// ChainTargetError terminates a chained stream whose link property emitted
// a value that is not Trackable.
type ChainTargetError struct {
	Path string
	Link string
	Type string
}

func (e *ChainTargetError) Error() string {
	return fmt.Sprintf("track: the '%s' property of path '%s' holds a %s, which is not a trackable object, so it cannot be chained", e.Link, e.Path, e.Type)
}

func (e *ChainTargetError) Is(target error) bool { return target == ErrChainTarget }

// Code returns the catalogue code.
func (e *ChainTargetError) Code() string { return vterrors.CodeChainTarget }

// ReadonlyError is returned when writing to a readonly property or to an
// event derived from a property.
type ReadonlyError struct {
	Kind Kind
	Name string
}

func (e *ReadonlyError) Error() string {
	return fmt.Sprintf("track: the %s '%s' is readonly", e.Kind, e.Name)
}

func (e *ReadonlyError) Is(target error) bool { return target == ErrReadonly }

// Code returns the catalogue code.
func (e *ReadonlyError) Code() string { return vterrors.CodeReadonly }
