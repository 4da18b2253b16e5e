package metrics

import (
	"github.com/kilianp07/factories/core/factory"
	coremetrics "github.com/kilianp07/factories/core/metrics"
)

// Sink implementations are themselves loaded through the factory machinery:
// each sink type is defined in a dedicated scope and built by name from its
// raw configuration map.
var sinkScope = factory.NewScope("metrics-sinks")

func init() {
	sinkScope.MustDefine("nop", func() coremetrics.Sink {
		return coremetrics.NopSink{}
	})
	sinkScope.MustDefine("prometheus", func() (coremetrics.Sink, error) {
		return NewPromSink()
	})
	sinkScope.MustDefine("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var ic InfluxConfig
		if err := factory.Decode(conf, &ic); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(ic), nil
	})
}

// NewSink builds a metrics sink from the configuration. No configured sinks
// yields a NopSink; multiple sinks are combined into a MultiSink.
func NewSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	if len(cfg.Sinks) == 0 {
		return coremetrics.NopSink{}, nil
	}
	sinks := make([]coremetrics.Sink, 0, len(cfg.Sinks))
	for _, sc := range cfg.Sinks {
		args := factory.NewArguments()
		conf := sc.Conf
		if conf == nil {
			conf = map[string]any{}
		}
		args.Set(conf)
		s, err := factory.LoadNamed[coremetrics.Sink](sinkScope, sc.Type, args)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return coremetrics.NewMultiSink(sinks...), nil
}
