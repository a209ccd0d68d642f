// Package metrics exposes Prometheus collectors for the acquisition pipelines.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	strategyAttemptsTotal *prometheus.CounterVec
	fallbackBatchesTotal  *prometheus.CounterVec
	rowsReplacedTotal     *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		strategyAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviefeed_strategy_attempts_total",
				Help: "Strategy attempts partitioned by pipeline, strategy and outcome.",
			},
			[]string{"pipeline", "strategy", "outcome"},
		)

		fallbackBatchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviefeed_fallback_batches_total",
				Help: "Curated fallback batches served per pipeline.",
			},
			[]string{"pipeline"},
		)

		rowsReplacedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviefeed_rows_replaced_total",
				Help: "Rows written by replace-all operations per table.",
			},
			[]string{"table"},
		)
	})
}

// ObserveAttempt records the outcome of one strategy attempt.
func ObserveAttempt(pipeline, strategy, outcome string) {
	if strategyAttemptsTotal == nil {
		return
	}
	strategyAttemptsTotal.WithLabelValues(pipeline, strategy, outcome).Inc()
}

// ObserveFallback records one curated batch served in place of live data.
func ObserveFallback(pipeline string) {
	if fallbackBatchesTotal == nil {
		return
	}
	fallbackBatchesTotal.WithLabelValues(pipeline).Inc()
}

// ObserveRowsReplaced records rows committed by a replace-all write.
func ObserveRowsReplaced(table string, rows int) {
	if rowsReplacedTotal == nil {
		return
	}
	rowsReplacedTotal.WithLabelValues(table).Add(float64(rows))
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
