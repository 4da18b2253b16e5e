package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/factories/core/metrics"
)

// PromSink records factory load events in Prometheus metrics.
type PromSink struct {
	events   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	registry *prometheus.GaugeVec
}

// NewPromSink registers load metrics on the default Prometheus registerer.
// The Prometheus server is started separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "factory_load_events_total",
		Help: "Total number of factory instantiation attempts",
	}, []string{"factory_type", "implementation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "factory_load_duration_seconds",
		Help:    "Time spent resolving and instantiating one implementation",
		Buckets: prometheus.DefBuckets,
	}, []string{"factory_type", "outcome"})
	registry := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "factory_registry_implementations",
		Help: "Number of implementations registered per factory type",
	}, []string{"scope", "factory_type"})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(registry); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			registry = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, duration: duration, registry: registry}, nil
}

// RecordLoadResult increments the event counter and observes the duration for
// each load result.
func (s *PromSink) RecordLoadResult(results []coremetrics.LoadResult) error {
	for _, r := range results {
		outcome := string(r.Outcome)
		s.events.WithLabelValues(r.FactoryType, r.Implementation, outcome).Inc()
		s.duration.WithLabelValues(r.FactoryType, outcome).Observe(r.Duration.Seconds())
	}
	return nil
}

// RecordRegistrySnapshot updates the registry size gauge.
func (s *PromSink) RecordRegistrySnapshot(snaps []coremetrics.RegistrySnapshot) error {
	for _, sn := range snaps {
		s.registry.WithLabelValues(sn.Scope, sn.FactoryType).Set(float64(sn.Implementations))
	}
	return nil
}
