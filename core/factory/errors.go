package factory

import (
	"fmt"
	"reflect"
)

// ParseError reports a malformed registry source. Discovery for the whole
// scope aborts; this error is never routed through a FailureHandler.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("factory: parse registry source %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotDefinedError reports a registered implementation name with no definition
// in the scope.
type NotDefinedError struct {
	Implementation string
}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("factory: implementation %q is not defined", e.Implementation)
}

// TypeMismatchError reports an implementation whose product type is not
// assignable to the requested factory type. It is always fatal, regardless of
// the configured FailureHandler.
type TypeMismatchError struct {
	Implementation string
	Product        reflect.Type
	FactoryType    reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("factory: implementation %q of type %s is not assignable to factory type %s",
		e.Implementation, e.Product, e.FactoryType)
}

// NoSuchConstructorError reports that no declared constructor of the
// implementation could be satisfied: there is no zero-argument constructor and
// no constructor whose parameters are all present in the Arguments.
type NoSuchConstructorError struct {
	Implementation string
}

func (e *NoSuchConstructorError) Error() string {
	return fmt.Sprintf("factory: implementation %q has no suitable constructor", e.Implementation)
}

// DuplicateDefinitionError reports a second definition under an existing name.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("factory: implementation %q already defined", e.Name)
}

// InstantiationError wraps a per-candidate failure with the implementation
// name and the requested factory type. The underlying cause is preserved.
type InstantiationError struct {
	FactoryType    reflect.Type
	Implementation string
	Err            error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("factory: unable to instantiate implementation %q for factory type %s: %v",
		e.Implementation, e.FactoryType, e.Err)
}

func (e *InstantiationError) Unwrap() error { return e.Err }
