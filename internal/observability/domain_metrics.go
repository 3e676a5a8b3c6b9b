package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	synthesisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffinder_synthesis_total",
			Help: "Total number of natural-language query syntheses by source.",
		},
		[]string{"source"},
	)
	modelTranslateLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staffinder_model_translate_latency_ms",
			Help:    "Model translation call latency in milliseconds.",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 15000},
		},
	)
	extractionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffinder_extraction_failures_total",
			Help: "Total number of model responses with no extractable SQL statement.",
		},
	)
	queriesExecutedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffinder_queries_executed_total",
			Help: "Total number of SQL statements executed against the employees table.",
		},
	)
	queryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staffinder_query_failures_total",
			Help: "Total number of SQL execution failures.",
		},
	)
	queryLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staffinder_query_latency_ms",
			Help:    "SQL execution latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2000},
		},
	)
)

func init() {
	prometheus.MustRegister(
		synthesisTotal,
		modelTranslateLatencyMs,
		extractionFailuresTotal,
		queriesExecutedTotal,
		queryFailuresTotal,
		queryLatencyMs,
	)
}

func ObserveSynthesis(source string) {
	synthesisTotal.WithLabelValues(source).Inc()
}

func ObserveModelTranslation(elapsed time.Duration) {
	modelTranslateLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func IncrementExtractionFailure() {
	extractionFailuresTotal.Inc()
}

func ObserveQueryExecution(elapsed time.Duration, failed bool) {
	queriesExecutedTotal.Inc()
	if failed {
		queryFailuresTotal.Inc()
	}
	queryLatencyMs.Observe(float64(elapsed.Milliseconds()))
}
