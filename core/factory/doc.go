// Package factory implements discovery and instantiation of factory
// implementations declared in registry sources. A Scope groups the sources
// and the implementation definitions visible to a lookup; discovery results
// are cached per scope for the lifetime of the process.
//
// Implementations are registered ahead of time under a name together with
// their constructors. Loading a factory type resolves the declared names for
// that type, in declaration order with duplicates removed, and invokes a
// constructor for each: the zero-argument constructor when one exists,
// otherwise the first constructor whose parameters can all be bound from the
// caller's Arguments.
//
// Example usage:
//
//	scope := factory.NewScope("plugins")
//	scope.AddSource(factory.NewMapSource("builtin", factory.Registration{
//	    FactoryType:     factory.TypeName[Codec](),
//	    Implementations: []string{"json-codec"},
//	}))
//	scope.MustDefine("json-codec", NewJSONCodec)
//	codecs, err := factory.LoadFactories[Codec](scope)
package factory
