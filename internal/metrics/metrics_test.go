package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	// Reset collectors for testing purposes.
	strategyAttemptsTotal = nil
	fallbackBatchesTotal = nil
	rowsReplacedTotal = nil

	// Call Init multiple times to test idempotency.
	Init()
	Init()

	if strategyAttemptsTotal == nil || fallbackBatchesTotal == nil || rowsReplacedTotal == nil {
		t.Fatal("Init() did not initialize metrics collectors")
	}

	ObserveAttempt("scrape", "http", "success")
	if val := testutil.ToFloat64(strategyAttemptsTotal.WithLabelValues("scrape", "http", "success")); val != 1 {
		t.Errorf("expected one recorded attempt, got %f", val)
	}

	ObserveFallback("api")
	if val := testutil.ToFloat64(fallbackBatchesTotal.WithLabelValues("api")); val != 1 {
		t.Errorf("expected one recorded fallback batch, got %f", val)
	}

	ObserveRowsReplaced("scraped_movies", 10)
	if val := testutil.ToFloat64(rowsReplacedTotal.WithLabelValues("scraped_movies")); val != 10 {
		t.Errorf("expected 10 replaced rows, got %f", val)
	}
}

func TestObserversAreNilSafe(t *testing.T) {
	saved := strategyAttemptsTotal
	savedFallback := fallbackBatchesTotal
	savedRows := rowsReplacedTotal
	strategyAttemptsTotal = nil
	fallbackBatchesTotal = nil
	rowsReplacedTotal = nil
	defer func() {
		strategyAttemptsTotal = saved
		fallbackBatchesTotal = savedFallback
		rowsReplacedTotal = savedRows
	}()

	// Must not panic before Init.
	ObserveAttempt("scrape", "http", "success")
	ObserveFallback("scrape")
	ObserveRowsReplaced("api_movies", 3)
}
