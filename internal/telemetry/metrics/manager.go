package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests               *prometheus.CounterVec
	CounterHandleRequestPanic     prometheus.Counter
	CounterRateLimitedRequests    prometheus.Counter
	CounterInvalidSelections      *prometheus.CounterVec
	CounterDegenerateCorrelations prometheus.Counter
	CounterCacheHits              prometheus.Counter
	CounterCacheMisses            prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge
	GaugeTableRows  *prometheus.GaugeVec

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramCatalogLoad     prometheus.Histogram
	HistogramHeartTableBuild prometheus.Histogram
	HistogramComputeDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitinsights", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitinsights", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterInvalidSelections := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "invalid_selections",
		Help:      "The total number of rejected selections, by field",
	}, []string{"field"})
	counterDegenerateCorrelations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "degenerate_correlations",
		Help:      "Correlations where all x values were identical",
	})
	counterCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "response_cache_hits",
		Help:      "Responses served from the response cache",
	})
	counterCacheMisses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "response_cache_misses",
		Help:      "Responses computed because the cache had no entry",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeTableRows := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "table_rows",
		Help:      "Rows loaded per record table",
	}, []string{"table"})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramCatalogLoad := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "catalog_load_duration_seconds",
		Help:      "Time to read and parse all record files",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})
	histogramHeartTableBuild := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "heart_table_build_duration_seconds",
		Help:      "Time to resample heart rate and join MET values",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})
	histogramComputeDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "compute_duration_seconds",
		Help:      "Duration of dashboard page computations",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"page"})

	return &Manager{
		CounterRequests:               counterRequests,
		CounterHandleRequestPanic:     counterHandleRequestPanic,
		CounterRateLimitedRequests:    counterRateLimitedRequests,
		CounterInvalidSelections:      counterInvalidSelections,
		CounterDegenerateCorrelations: counterDegenerateCorrelations,
		CounterCacheHits:              counterCacheHits,
		CounterCacheMisses:            counterCacheMisses,
		GaugeRequests:                 gaugeRequests,
		GaugeLifeSignal:               gaugeLifeSignal,
		GaugeTableRows:                gaugeTableRows,
		HistogramRequestDuration:      histogramRequestDuration,
		HistogramCatalogLoad:          histogramCatalogLoad,
		HistogramHeartTableBuild:      histogramHeartTableBuild,
		HistogramComputeDuration:      histogramComputeDuration,
	}
}

// RecordTableRows publishes the row count of every loaded table.
func (m *Manager) RecordTableRows(rows map[string]int) {
	for table, n := range rows {
		m.GaugeTableRows.WithLabelValues(table).Set(float64(n))
	}
}
