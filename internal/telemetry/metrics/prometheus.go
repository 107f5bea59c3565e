package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on the metrics port.
// Process metrics are prefixed with namespace, Go runtime metrics are
// limited to the GC, memory and scheduler groups.
func SetupPrometheus(namespace string) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.MetricsGC,
				collectors.MetricsMemory,
				collectors.MetricsScheduler,
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: namespace,
		}),
	)

	return promRegistry
}
