package factory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log output for assertions.
type recordingLogger struct {
	errors []string
	fields []map[string]any
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Debugw(_ string, fields map[string]any) {
	l.fields = append(l.fields, fields)
}
func (l *recordingLogger) Infof(string, ...any) {}
func (l *recordingLogger) Warnf(string, ...any) {}
func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestThrowingFailureHandler(t *testing.T) {
	cause := errors.New("nope")
	err := ThrowingFailureHandler{}.HandleFailure(typeOf[DummyFactory](), "dummy1", cause)

	var instErr *InstantiationError
	require.ErrorAs(t, err, &instErr)
	assert.Equal(t, "dummy1", instErr.Implementation)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DummyFactory")
	assert.Contains(t, err.Error(), "dummy1")
}

func TestLoggingFailureHandlerSkips(t *testing.T) {
	log := &recordingLogger{}
	h := NewLoggingFailureHandler(log)

	err := h.HandleFailure(typeOf[DummyFactory](), "dummy1", errors.New("nope"))
	require.NoError(t, err)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "dummy1")
	require.Len(t, log.fields, 1)
	assert.Equal(t, "dummy1", log.fields[0]["implementation"])
	assert.Equal(t, "nope", log.fields[0]["cause"])
}

func TestLoggingFailureHandlerNilLogger(t *testing.T) {
	h := NewLoggingFailureHandler(nil)
	assert.NoError(t, h.HandleFailure(typeOf[DummyFactory](), "dummy1", errors.New("nope")))
}
