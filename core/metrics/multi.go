package metrics

// MultiSink fanouts records to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordLoadResult forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordLoadResult(results []LoadResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordLoadResult(results); err != nil {
			return err
		}
	}
	return nil
}

// RecordRegistrySnapshot forwards snapshots to the sinks that support them.
func (m *MultiSink) RecordRegistrySnapshot(snaps []RegistrySnapshot) error {
	for _, s := range m.Sinks {
		if sr, ok := s.(SnapshotRecorder); ok {
			if err := sr.RecordRegistrySnapshot(snaps); err != nil {
				return err
			}
		}
	}
	return nil
}
