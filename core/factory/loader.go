package factory

import (
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/factories/core/metrics"
)

// LoadOption customizes a load operation.
type LoadOption func(*loadOptions)

type loadOptions struct {
	args    *Arguments
	handler FailureHandler
	sink    metrics.Sink
}

// WithArguments supplies constructor arguments. Without it only
// zero-argument constructors can be satisfied.
func WithArguments(args *Arguments) LoadOption {
	return func(o *loadOptions) { o.args = args }
}

// WithFailureHandler replaces the default ThrowingFailureHandler.
func WithFailureHandler(h FailureHandler) LoadOption {
	return func(o *loadOptions) {
		if h != nil {
			o.handler = h
		}
	}
}

// WithMetrics records a LoadResult per candidate to the sink.
func WithMetrics(sink metrics.Sink) LoadOption {
	return func(o *loadOptions) { o.sink = sink }
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{handler: ThrowingFailureHandler{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadFactoryNames returns the implementation names registered for the
// factory type T in the scope, in declaration order with duplicates removed.
// A factory type with no registrations yields an empty slice, not an error.
// A nil scope means the default scope.
func LoadFactoryNames[T any](scope *Scope) ([]string, error) {
	return namesFor(orDefault(scope), TypeName[T]())
}

// LoadFactories instantiates every implementation registered for the factory
// type T in the scope. The result preserves registry declaration order after
// deduplication. Per-candidate failures are routed through the configured
// FailureHandler; with the default handler the first failure aborts the whole
// call and no partial result is returned. A registered implementation whose
// product type is not assignable to T always aborts, regardless of handler.
func LoadFactories[T any](scope *Scope, opts ...LoadOption) ([]T, error) {
	o := newLoadOptions(opts)
	scope = orDefault(scope)
	factoryType := typeOf[T]()
	names, err := namesFor(scope, typeName(factoryType))
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	records := make([]metrics.LoadResult, 0, len(names))
	record := func(name string, outcome metrics.Outcome, cause error, start time.Time) {
		if o.sink == nil {
			return
		}
		r := metrics.LoadResult{
			OpID:           opID,
			Scope:          scope.name,
			FactoryType:    typeName(factoryType),
			Implementation: name,
			Outcome:        outcome,
			Duration:       time.Since(start),
			Time:           start,
		}
		if cause != nil {
			r.Error = cause.Error()
		}
		records = append(records, r)
	}
	flush := func() {
		if o.sink != nil && len(records) > 0 {
			_ = o.sink.RecordLoadResult(records)
		}
	}

	out := make([]T, 0, len(names))
	for _, name := range names {
		start := time.Now()
		inst, err := instantiate(scope, factoryType, name, o.args)
		if err != nil {
			var mismatch *TypeMismatchError
			if errors.As(err, &mismatch) {
				record(name, metrics.OutcomeFailed, err, start)
				flush()
				return nil, err
			}
			if herr := o.handler.HandleFailure(factoryType, name, err); herr != nil {
				record(name, metrics.OutcomeFailed, herr, start)
				flush()
				return nil, herr
			}
			record(name, metrics.OutcomeSkipped, err, start)
			continue
		}
		record(name, metrics.OutcomeLoaded, nil, start)
		out = append(out, inst.(T))
	}
	flush()
	return out, nil
}

// LoadNamed instantiates the single implementation defined under name in the
// scope, checked against the factory type T. Failures are returned directly;
// no failure handler is involved.
func LoadNamed[T any](scope *Scope, name string, args *Arguments) (T, error) {
	var zero T
	scope = orDefault(scope)
	factoryType := typeOf[T]()
	inst, err := instantiate(scope, factoryType, name, args)
	if err != nil {
		var mismatch *TypeMismatchError
		if errors.As(err, &mismatch) {
			return zero, err
		}
		return zero, &InstantiationError{FactoryType: factoryType, Implementation: name, Err: err}
	}
	return inst.(T), nil
}

// instantiate resolves one candidate: definition lookup, assignability check
// against the requested factory type, constructor selection, invocation.
func instantiate(scope *Scope, factoryType reflect.Type, name string, args *Arguments) (any, error) {
	def, ok := scope.Definition(name)
	if !ok {
		return nil, &NotDefinedError{Implementation: name}
	}
	if !def.product.AssignableTo(factoryType) {
		return nil, &TypeMismatchError{Implementation: name, Product: def.product, FactoryType: factoryType}
	}
	ctor, bound, err := selectConstructor(def, args)
	if err != nil {
		return nil, err
	}
	return def.construct(ctor, bound)
}
