package factory

import (
	"reflect"

	"github.com/kilianp07/factories/core/logger"
)

// FailureHandler decides what happens when one candidate fails to resolve or
// instantiate. Returning a non-nil error aborts the whole load with that
// error; returning nil skips the candidate and continues. The handler is
// consulted exactly once per failing candidate and never sees successes.
//
// Type mismatches bypass the handler: a registered implementation that is not
// assignable to the requested factory type is a configuration defect and is
// always fatal.
type FailureHandler interface {
	HandleFailure(factoryType reflect.Type, implementation string, cause error) error
}

// ThrowingFailureHandler aborts on the first failure, wrapping the cause in
// an InstantiationError naming both the implementation and the factory type.
// It is the default handler.
type ThrowingFailureHandler struct{}

func (ThrowingFailureHandler) HandleFailure(factoryType reflect.Type, implementation string, cause error) error {
	return &InstantiationError{FactoryType: factoryType, Implementation: implementation, Err: cause}
}

// LoggingFailureHandler records each failure and continues with the remaining
// candidates. The failed implementation is simply absent from the result.
type LoggingFailureHandler struct {
	log logger.Logger
}

// NewLoggingFailureHandler creates a skip-and-log handler. A nil logger
// discards the records.
func NewLoggingFailureHandler(log logger.Logger) LoggingFailureHandler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return LoggingFailureHandler{log: log}
}

func (h LoggingFailureHandler) HandleFailure(factoryType reflect.Type, implementation string, cause error) error {
	h.log.Errorf("skipping implementation %s for factory type %s: %v", implementation, typeName(factoryType), cause)
	h.log.Debugw("factory instantiation failure", map[string]any{
		"factory_type":   typeName(factoryType),
		"implementation": implementation,
		"cause":          cause.Error(),
	})
	return nil
}
