package factory

import (
	"reflect"
	"sync"
)

// Scope is the isolation boundary of a lookup. It owns the registry sources
// declaring implementation names and the definitions resolving those names to
// constructors. Discovery results are cached per scope (see ClearCache).
type Scope struct {
	name string

	mu      sync.RWMutex
	sources []Source
	defs    map[string]*Definition
}

// Default is the scope used when callers pass a nil scope.
var Default = NewScope("default")

// NewScope creates an empty scope. The name is used in diagnostics and
// metrics only; scope identity is the value itself.
func NewScope(name string) *Scope {
	return &Scope{name: name, defs: make(map[string]*Definition)}
}

// Name returns the diagnostic name of the scope.
func (s *Scope) Name() string { return s.name }

// AddSource appends a registry source. Sources added after the first load
// against this scope are only picked up after ClearCache.
func (s *Scope) AddSource(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, src)
}

// Define registers an implementation under a name with one or more
// constructor functions. Each constructor must be a non-variadic function
// returning the product, optionally with a trailing error result, and all
// constructors of a definition must produce the same type.
func (s *Scope) Define(name string, constructors ...any) error {
	def, err := NewDefinition(name, constructors...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.defs[name]; ok {
		return &DuplicateDefinitionError{Name: name}
	}
	s.defs[name] = def
	return nil
}

// MustDefine is Define panicking on error, for init-time registration.
func (s *Scope) MustDefine(name string, constructors ...any) {
	if err := s.Define(name, constructors...); err != nil {
		panic(err)
	}
}

// Definition returns the definition registered under name, if any.
func (s *Scope) Definition(name string) (*Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.defs[name]
	return d, ok
}

func (s *Scope) sourcesSnapshot() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

func orDefault(s *Scope) *Scope {
	if s == nil {
		return Default
	}
	return s
}

// TypeName returns the registry key of a factory type: the fully qualified
// type name for named types, the type string otherwise.
func TypeName[T any]() string { return typeName(typeOf[T]()) }

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func typeName(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
