package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/factories/core/metrics"
)

// Config is the top-level configuration of the factories tooling.
type Config struct {
	Registry RegistryConfig `json:"registry"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  metrics.Config `json:"metrics"`
}

// RegistryConfig declares the registry sources of a scope.
type RegistryConfig struct {
	// Scope names the loading scope; used in diagnostics and metrics.
	Scope string `json:"scope"`
	// Sources lists registry files, read in order.
	Sources []string `json:"sources"`
}

// SetDefaults applies sane defaults.
func (c *RegistryConfig) SetDefaults() {
	if c.Scope == "" {
		c.Scope = "default"
	}
}

// Validate checks mandatory fields.
func (c RegistryConfig) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one registry source is required")
	}
	for _, s := range c.Sources {
		if s == "" {
			return fmt.Errorf("registry source path must not be empty")
		}
	}
	return nil
}

// Load reads the configuration file at path. YAML and JSON are supported,
// selected by file extension. Environment variables prefixed with FACTORIES_
// override file values, with "__" as the key separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FACTORIES_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "factories_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Registry.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Registry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
