package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"
)

// MetricsReporterFunc is the type used to define a function that reports the metrics
// recorded during a run.
type MetricsReporterFunc func(ctx context.Context)

// metricsRegistry provides the metrics.Registry implementation that metrics are reported to.
var metricsRegistry = metrics.NewRegistry()

// metricsReporter returns a MetricsReporterFunc that logs every metric in the registry at
// debug level, sorted by name.
func metricsReporter(registry metrics.Registry) MetricsReporterFunc {
	return func(ctx context.Context) {
		log := zerolog.Ctx(ctx)

		var names []string
		all := map[string]interface{}{}
		registry.Each(func(name string, m interface{}) {
			names = append(names, name)
			all[name] = m
		})
		sort.Strings(names)

		for _, name := range names {
			switch m := all[name].(type) {
			case metrics.Counter:
				log.Debug().Int64("count", m.Count()).Msgf("Metric %s", name)
			case metrics.Timer:
				t := m.Snapshot()
				log.Debug().
					Int64("count", t.Count()).
					Dur("mean", durationOf(t.Mean())).
					Dur("p95", durationOf(t.Percentile(0.95))).
					Dur("max", durationOf(float64(t.Max()))).
					Msgf("Metric %s", name)
			}
		}
	}
}

func durationOf(nanos float64) time.Duration {
	return time.Duration(nanos)
}
