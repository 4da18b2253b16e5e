package factory

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/factories/core/metrics"
)

// DummyFactory is the factory type exercised by the loader tests.
type DummyFactory interface {
	Message() string
}

type myDummyFactory1 struct{}

func (myDummyFactory1) Message() string { return "Foo" }

type myDummyFactory2 struct{}

func (myDummyFactory2) Message() string { return "Bar" }

type argsDummyFactory struct{ msg string }

func (f *argsDummyFactory) Message() string { return f.msg }

func newArgsDummyFactory(msg string) *argsDummyFactory { return &argsDummyFactory{msg: msg} }

func newDummyScope(t *testing.T, regs ...Registration) *Scope {
	t.Helper()
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("test", regs...))
	scope.MustDefine("dummy1", func() myDummyFactory1 { return myDummyFactory1{} })
	scope.MustDefine("dummy2", func() myDummyFactory2 { return myDummyFactory2{} })
	scope.MustDefine("dummy-args", newArgsDummyFactory)
	return scope
}

func dummyRegistration(impls ...string) Registration {
	return Registration{FactoryType: TypeName[DummyFactory](), Implementations: impls}
}

func TestLoadFactoryNames(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "dummy2"))

	names, err := LoadFactoryNames[DummyFactory](scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"dummy1", "dummy2"}, names)
}

func TestLoadFactoriesWithNoRegisteredImplementations(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1"))

	loaded, err := LoadFactories[io.Closer](scope)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadFactoriesInDeclarationOrderWithDuplicatesPresent(t *testing.T) {
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("first", dummyRegistration("dummy1", "dummy2")))
	scope.AddSource(NewMapSource("second", dummyRegistration("dummy1")))
	scope.MustDefine("dummy1", func() myDummyFactory1 { return myDummyFactory1{} })
	scope.MustDefine("dummy2", func() myDummyFactory2 { return myDummyFactory2{} })

	loaded, err := LoadFactories[DummyFactory](scope)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.IsType(t, myDummyFactory1{}, loaded[0])
	assert.IsType(t, myDummyFactory2{}, loaded[1])
}

func TestLoadFactoriesOfIncompatibleType(t *testing.T) {
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("test", Registration{
		FactoryType:     TypeName[io.Closer](),
		Implementations: []string{"dummy1"},
	}))
	scope.MustDefine("dummy1", func() myDummyFactory1 { return myDummyFactory1{} })

	_, err := LoadFactories[io.Closer](scope)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "dummy1", mismatch.Implementation)
	assert.Contains(t, err.Error(), "dummy1")
	assert.Contains(t, err.Error(), "io.Closer")
}

func TestLoadFactoriesOfIncompatibleTypeWithLoggingFailureHandler(t *testing.T) {
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("test", Registration{
		FactoryType:     TypeName[io.Closer](),
		Implementations: []string{"dummy1"},
	}))
	scope.MustDefine("dummy1", func() myDummyFactory1 { return myDummyFactory1{} })

	// The mismatch is a caller programming error and stays fatal even under
	// the skip-and-continue handler.
	_, err := LoadFactories[io.Closer](scope, WithFailureHandler(NewLoggingFailureHandler(nil)))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestLoadFactoriesWithNonDefaultConstructor(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "dummy2", "dummy-args"))

	args := NewArguments().Set("injected")
	loaded, err := LoadFactories[DummyFactory](scope, WithArguments(args))
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	messages := []string{loaded[0].Message(), loaded[1].Message(), loaded[2].Message()}
	assert.Equal(t, []string{"Foo", "Bar", "injected"}, messages)
}

func TestLoadFactoriesWithMissingArgument(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "dummy2", "dummy-args"))

	_, err := LoadFactories[DummyFactory](scope)
	var instErr *InstantiationError
	require.ErrorAs(t, err, &instErr)
	assert.Equal(t, "dummy-args", instErr.Implementation)
	assert.Contains(t, err.Error(), "DummyFactory")

	var ctorErr *NoSuchConstructorError
	require.ErrorAs(t, err, &ctorErr)
	assert.Contains(t, ctorErr.Error(), "no suitable constructor")
}

func TestLoadFactoriesWithMissingArgumentUsingLoggingFailureHandler(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "dummy2", "dummy-args"))

	log := &recordingLogger{}
	loaded, err := LoadFactories[DummyFactory](scope, WithFailureHandler(NewLoggingFailureHandler(log)))
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.IsType(t, myDummyFactory1{}, loaded[0])
	assert.IsType(t, myDummyFactory2{}, loaded[1])
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "dummy-args")
}

func TestLoadFactoriesUndefinedImplementation(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "ghost"))

	_, err := LoadFactories[DummyFactory](scope)
	var notDefined *NotDefinedError
	require.ErrorAs(t, err, &notDefined)
	assert.Equal(t, "ghost", notDefined.Implementation)

	loaded, err := LoadFactories[DummyFactory](scope, WithFailureHandler(NewLoggingFailureHandler(nil)))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.IsType(t, myDummyFactory1{}, loaded[0])
}

func TestLoadFactoriesConstructorError(t *testing.T) {
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("test", dummyRegistration("broken")))
	boom := errors.New("boom")
	scope.MustDefine("broken", func() (myDummyFactory1, error) { return myDummyFactory1{}, boom })

	_, err := LoadFactories[DummyFactory](scope)
	var instErr *InstantiationError
	require.ErrorAs(t, err, &instErr)
	assert.ErrorIs(t, err, boom)
}

func TestLoadFactoriesConstructorPanic(t *testing.T) {
	t.Cleanup(ClearCache)
	scope := NewScope(t.Name())
	scope.AddSource(NewMapSource("test", dummyRegistration("panicky", "dummy2")))
	scope.MustDefine("panicky", func() myDummyFactory1 { panic("kaboom") })
	scope.MustDefine("dummy2", func() myDummyFactory2 { return myDummyFactory2{} })

	loaded, err := LoadFactories[DummyFactory](scope, WithFailureHandler(NewLoggingFailureHandler(nil)))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Bar", loaded[0].Message())
}

func TestLoadNamed(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1"))

	f, err := LoadNamed[DummyFactory](scope, "dummy-args", NewArguments().Set("direct"))
	require.NoError(t, err)
	assert.Equal(t, "direct", f.Message())

	_, err = LoadNamed[DummyFactory](scope, "ghost", nil)
	var instErr *InstantiationError
	require.ErrorAs(t, err, &instErr)
	var notDefined *NotDefinedError
	require.ErrorAs(t, err, &notDefined)

	_, err = LoadNamed[io.Closer](scope, "dummy1", nil)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

type captureSink struct {
	records []metrics.LoadResult
}

func (s *captureSink) RecordLoadResult(results []metrics.LoadResult) error {
	s.records = append(s.records, results...)
	return nil
}

func TestLoadFactoriesRecordsMetrics(t *testing.T) {
	scope := newDummyScope(t, dummyRegistration("dummy1", "dummy-args", "dummy2"))

	sink := &captureSink{}
	loaded, err := LoadFactories[DummyFactory](scope,
		WithFailureHandler(NewLoggingFailureHandler(nil)),
		WithMetrics(sink),
	)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Len(t, sink.records, 3)

	assert.Equal(t, metrics.OutcomeLoaded, sink.records[0].Outcome)
	assert.Equal(t, metrics.OutcomeSkipped, sink.records[1].Outcome)
	assert.Equal(t, metrics.OutcomeLoaded, sink.records[2].Outcome)
	assert.Equal(t, "dummy-args", sink.records[1].Implementation)
	assert.NotEmpty(t, sink.records[1].Error)
	for _, r := range sink.records {
		assert.Equal(t, sink.records[0].OpID, r.OpID)
		assert.Equal(t, TypeName[DummyFactory](), r.FactoryType)
	}
}
