package track

// checkName reports a DuplicateNameError if name is taken by a property or
// an event. Callers must hold t.mu.
func (t *Tracker) checkName(name string) error {
	if _, ok := t.properties[name]; ok {
		return &DuplicateNameError{Name: name, Existing: KindProperty}
	}
	if _, ok := t.events[name]; ok {
		return &DuplicateNameError{Name: name, Existing: KindEvent}
	}
	return nil
}

// reserve validates that name can be declared.
func (t *Tracker) reserve(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialize()
	if t.disposed {
		return ErrDisposed
	}
	return t.checkName(name)
}

// registerProperty stores p and, if present, its derived event.
func (t *Tracker) registerProperty(p *Property, derived *Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return ErrDisposed
	}
	if err := t.checkName(p.name); err != nil {
		return err
	}
	t.properties[p.name] = p
	t.propertyOrder = append(t.propertyOrder, p.name)
	t.nameOrder = append(t.nameOrder, p.name)
	if derived != nil {
		t.events[derived.name] = derived
		t.eventOrder = append(t.eventOrder, derived.name)
	}
	return nil
}

func (t *Tracker) registerEvent(e *Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return ErrDisposed
	}
	if err := t.checkName(e.name); err != nil {
		return err
	}
	t.events[e.name] = e
	t.eventOrder = append(t.eventOrder, e.name)
	t.nameOrder = append(t.nameOrder, e.name)
	return nil
}

// LookupProperty returns the property declared under name.
func (t *Tracker) LookupProperty(name string) (*Property, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.properties[name]
	if !ok {
		return nil, &UnknownPropertyError{Name: name}
	}
	return p, nil
}

// LookupEvent returns the event declared under name, including events
// derived from properties.
func (t *Tracker) LookupEvent(name string) (*Event, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.events[name]
	if !ok {
		return nil, &UnknownEventError{Name: name}
	}
	return e, nil
}

// HasProperty reports whether a property is declared under name.
func (t *Tracker) HasProperty(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.properties[name]
	return ok
}

// HasEvent reports whether an event is declared under name.
func (t *Tracker) HasEvent(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.events[name]
	return ok
}

// Properties returns the declared property names in declaration order.
func (t *Tracker) Properties() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.propertyOrder...)
}

// Events returns the declared event names in declaration order, including
// events derived from properties.
func (t *Tracker) Events() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.eventOrder...)
}

// Names returns every declared name in declaration order. A property and
// its derived event share one entry.
func (t *Tracker) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.nameOrder...)
}

// PSubject returns the privileged handle of a property. Unlike P, it can
// write to readonly standalone properties and is meant for the object that
// declared the property.
func (t *Tracker) PSubject(name string) (*Property, error) {
	return t.LookupProperty(name)
}

// Set writes v into a writable property.
func (t *Tracker) Set(name string, v any) error {
	p, err := t.LookupProperty(name)
	if err != nil {
		return err
	}
	if p.readonly {
		return &ReadonlyError{Kind: KindProperty, Name: name}
	}
	return p.Set(v)
}

// Emit pushes v into a standalone event.
func (t *Tracker) Emit(name string, v any) error {
	e, err := t.LookupEvent(name)
	if err != nil {
		return err
	}
	return e.Emit(v)
}
