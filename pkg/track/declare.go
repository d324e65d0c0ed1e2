package track

// Declaration is one entry of a Declare call.
type Declaration struct {
	kind      Kind
	name      string
	propOpts  []PropertyOption
	eventOpts []EventOption
}

// PropertyDecl describes a property for Declare.
func PropertyDecl(name string, opts ...PropertyOption) Declaration {
	return Declaration{kind: KindProperty, name: name, propOpts: opts}
}

// EventDecl describes a standalone event for Declare.
func EventDecl(name string, opts ...EventOption) Declaration {
	return Declaration{kind: KindEvent, name: name, eventOpts: opts}
}

// Name returns the declared name.
func (d Declaration) Name() string { return d.name }

// Kind returns whether d declares a property or an event.
func (d Declaration) Kind() Kind { return d.kind }

// Declare runs a list of declarations in order, typically once from an
// object's constructor. Events come before properties regardless of their
// position in decls, so derived properties may refer to any property that
// precedes them. It stops at the first error.
//
//	func NewVector() *Vector {
//	    v := &Vector{}
//	    v.MustDeclare(
//	        track.PropertyDecl("x", track.Initial(0), track.CacheInvalidation(true)),
//	        track.PropertyDecl("y", track.Initial(1)),
//	        track.PropertyDecl("z", track.Initial(2)),
//	    )
//	    return v
//	}
func (t *Tracker) Declare(decls ...Declaration) error {
	for _, d := range decls {
		if d.kind != KindEvent {
			continue
		}
		if _, err := t.DeclareEvent(d.name, d.eventOpts...); err != nil {
			return err
		}
	}
	for _, d := range decls {
		if d.kind != KindProperty {
			continue
		}
		if _, err := t.DeclareProperty(d.name, d.propOpts...); err != nil {
			return err
		}
	}
	return nil
}

// MustDeclare is like Declare but panics on error. Declaration errors are
// wiring mistakes, so constructors usually prefer it.
func (t *Tracker) MustDeclare(decls ...Declaration) {
	if err := t.Declare(decls...); err != nil {
		panic(err)
	}
}
