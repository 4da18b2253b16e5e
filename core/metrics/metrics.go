package metrics

import "time"

// Outcome classifies the result of a single instantiation attempt.
type Outcome string

const (
	// OutcomeLoaded marks an instance appended to the result sequence.
	OutcomeLoaded Outcome = "loaded"
	// OutcomeSkipped marks a candidate dropped by a skip-and-continue handler.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed marks a candidate whose failure aborted the load.
	OutcomeFailed Outcome = "failed"
)

// LoadResult represents a per-implementation load event to be recorded.
type LoadResult struct {
	OpID           string
	Scope          string
	FactoryType    string
	Implementation string
	Outcome        Outcome
	Error          string
	Duration       time.Duration
	Time           time.Time
}

// Sink records load results for observability purposes.
type Sink interface {
	RecordLoadResult(results []LoadResult) error
}

// RegistrySnapshot captures the discovered registrations of one factory type
// within a scope.
type RegistrySnapshot struct {
	Scope           string
	FactoryType     string
	Implementations int
	Time            time.Time
}

// SnapshotRecorder records registry snapshots. Implemented by sinks that
// support gauge-style registry size reporting.
type SnapshotRecorder interface {
	RecordRegistrySnapshot(snaps []RegistrySnapshot) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordLoadResult([]LoadResult) error { return nil }
