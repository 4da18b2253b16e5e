package factory

import "reflect"

// Arguments holds constructor argument values keyed by their static type.
// Lookups use exact type identity: a value stored for a type is never served
// for its supertypes or subtypes. Arguments are caller-owned and not safe for
// concurrent mutation.
type Arguments struct {
	values map[reflect.Type]any
}

// NewArguments creates an empty argument store.
func NewArguments() *Arguments {
	return &Arguments{values: make(map[reflect.Type]any)}
}

// Set stores a value under its dynamic type and returns the store for
// chaining. A later Set for the same type overwrites the earlier value. Use
// SetAs to key a value by an interface type.
func (a *Arguments) Set(value any) *Arguments {
	if value == nil {
		return a
	}
	a.values[reflect.TypeOf(value)] = value
	return a
}

// SetAs stores a value under the explicit type A, allowing interface-typed
// argument keys.
func SetAs[A any](a *Arguments, value A) *Arguments {
	a.values[typeOf[A]()] = value
	return a
}

// Get returns the value stored for exactly t.
func (a *Arguments) Get(t reflect.Type) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[t]
	return v, ok
}

// Len returns the number of stored argument types.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}
