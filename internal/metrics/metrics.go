// Package metrics provides counters, Prometheus collectors, and HTTP
// handlers for exporting stevedore batch metrics.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 1. Internal State (Source of Truth)
var (
	batches          int64
	batchesFailed    int64
	targetsSucceeded int64
	targetsSatisfied int64
	targetsFailed    int64
	lastBatch        int64
)

const counterInc int64 = 1

// 2. Prometheus Collectors
var (
	promBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stevedore_batches_total",
			Help: "Total batch operations by result",
		},
		[]string{"result"},
	)
	promOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stevedore_target_outcomes_total",
			Help: "Per-target outcomes by operation and class",
		},
		[]string{"operation", "outcome"},
	)
	promBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "stevedore_batch_duration_seconds",
			Help: "Duration of batch lifecycle operations",
			Buckets: []float64{
				0.1,
				0.5,
				1,
				2,
				5,
				10,
				30,
				60,
				120,
			},
		},
	)
	promLastBatch = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stevedore_last_batch_timestamp_seconds",
			Help: "Unix timestamp of the last completed batch",
		},
	)
)

func init() {
	prometheus.MustRegister(
		promBatches,
		promOutcomes,
		promBatchDuration,
		promLastBatch,
	)
}

// 3. Public API (Updates both Atomic and Prometheus)

// IncBatch records one completed batch; failed says whether the batch
// surfaced a representative error.
func IncBatch(failed bool) {
	atomic.AddInt64(&batches, counterInc)
	if failed {
		atomic.AddInt64(&batchesFailed, counterInc)
		promBatches.WithLabelValues("failure").Inc()
		return
	}
	promBatches.WithLabelValues("success").Inc()
}

// IncSucceeded records one target for which the operation succeeded.
func IncSucceeded(operation string) {
	atomic.AddInt64(&targetsSucceeded, counterInc)
	promOutcomes.WithLabelValues(operation, "succeeded").Inc()
}

// IncAlreadySatisfied records one target whose desired state already held.
func IncAlreadySatisfied(operation string) {
	atomic.AddInt64(&targetsSatisfied, counterInc)
	promOutcomes.WithLabelValues(operation, "already_satisfied").Inc()
}

// IncFailed records one target for which the operation failed.
func IncFailed(operation string) {
	atomic.AddInt64(&targetsFailed, counterInc)
	promOutcomes.WithLabelValues(operation, "failed").Inc()
}

// ObserveBatchDuration records the duration (in seconds) of a batch in the
// Prometheus histogram.
func ObserveBatchDuration(seconds float64) {
	promBatchDuration.Observe(seconds)
}

// SetLastBatch stores the provided time as the last batch timestamp and
// updates the corresponding Prometheus gauge.
func SetLastBatch(t time.Time) {
	atomic.StoreInt64(&lastBatch, t.Unix())
	promLastBatch.Set(float64(t.Unix()))
}

// 4. JSON Snapshot Struct

// StatsSnapshot is a snapshot of metrics for JSON encoding.
type StatsSnapshot struct {
	Batches          int64  `json:"batches"`
	BatchesFailed    int64  `json:"batches_failed"`
	TargetsSucceeded int64  `json:"targets_succeeded"`
	TargetsSatisfied int64  `json:"targets_already_satisfied"`
	TargetsFailed    int64  `json:"targets_failed"`
	LastBatch        int64  `json:"last_batch_timestamp"`
	LastBatchHuman   string `json:"last_batch_human"`
}

// GetSnapshot returns a StatsSnapshot with the current values of all
// internal counters and timestamps.
func GetSnapshot() StatsSnapshot {
	ts := atomic.LoadInt64(&lastBatch)
	return StatsSnapshot{
		Batches:          atomic.LoadInt64(&batches),
		BatchesFailed:    atomic.LoadInt64(&batchesFailed),
		TargetsSucceeded: atomic.LoadInt64(&targetsSucceeded),
		TargetsSatisfied: atomic.LoadInt64(&targetsSatisfied),
		TargetsFailed:    atomic.LoadInt64(&targetsFailed),
		LastBatch:        ts,
		LastBatchHuman:   time.Unix(ts, 0).Format(time.RFC3339),
	}
}

// 5. Handlers

// PromHandler returns an HTTP handler that exposes Prometheus metrics.
func PromHandler() http.Handler { return promhttp.Handler() }

// JSONHandler returns an HTTP handler that serves the current metrics as
// a JSON-encoded StatsSnapshot.
func JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetSnapshot())
	})
}
