package metrics

// SinkConfig contains the type name and raw configuration of one sink. The
// sink implementation decodes the raw map into its own settings.
type SinkConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []SinkConfig `json:"sinks"`
}
