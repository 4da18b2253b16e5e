package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/factories/core/factory"
	coremetrics "github.com/kilianp07/factories/core/metrics"
	"github.com/kilianp07/factories/infra/logger"
	"github.com/kilianp07/factories/infra/metrics"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Export registry metrics over a Prometheus endpoint",
	Long: `Re-reads the configured registry sources on an interval and publishes
per-factory-type registry sizes, together with any configured metrics sinks.`,
	RunE: serveMetrics,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":9090", "metrics listen address")
	serveCmd.Flags().DurationVarP(&serveInterval, "interval", "i", time.Minute, "registry refresh interval")
	rootCmd.AddCommand(serveCmd)
}

func serveMetrics(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logg := logger.New("serve")

	sink, err := metrics.NewSink(cfg.Metrics)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	recorder, ok := sink.(coremetrics.SnapshotRecorder)
	if !ok {
		prom, err := metrics.NewPromSink()
		if err != nil {
			return fmt.Errorf("prom sink: %w", err)
		}
		recorder = prom
	}

	scope := newScope(cfg)
	go func() {
		if err := metrics.StartPromServer(ctx, serveAddr); err != nil {
			logg.Errorf("prom server: %v", err)
		}
	}()

	ticker := time.NewTicker(serveInterval)
	defer ticker.Stop()
	for {
		if err := snapshotRegistry(scope, recorder); err != nil {
			logg.Errorf("registry snapshot: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// Drop the cached snapshot so source edits are picked up.
			factory.ClearCache()
		}
	}
}

func snapshotRegistry(scope *factory.Scope, recorder coremetrics.SnapshotRecorder) error {
	entries, err := factory.Entries(scope)
	if err != nil {
		return err
	}
	now := time.Now()
	snaps := make([]coremetrics.RegistrySnapshot, 0, len(entries))
	for _, e := range entries {
		snaps = append(snaps, coremetrics.RegistrySnapshot{
			Scope:           scope.Name(),
			FactoryType:     e.FactoryType,
			Implementations: len(e.Implementations),
			Time:            now,
		})
	}
	return recorder.RecordRegistrySnapshot(snaps)
}
