package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kilianp07/factories/config"
	"github.com/kilianp07/factories/core/factory"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "factories",
	Short: "Inspect and validate factory registries",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "factories.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration and applies the log level globally.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// newScope builds the loading scope declared by the configuration.
func newScope(cfg *config.Config) *factory.Scope {
	scope := factory.NewScope(cfg.Registry.Scope)
	for _, path := range cfg.Registry.Sources {
		scope.AddSource(factory.NewFileSource(path))
	}
	return scope
}
