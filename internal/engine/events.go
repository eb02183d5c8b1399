package engine

import (
	"time"

	"github.com/stevedore/stevedore/internal/logging"
	"github.com/stevedore/stevedore/internal/metrics"
)

// Event describes the outcome of one target within a batch.
type Event struct {
	BatchID   string
	Operation Operation
	Target    string
	Outcome   Outcome
	Reason    string // set for already-satisfied outcomes
	Err       error  // set for failed outcomes
	Elapsed   time.Duration
}

// EventSink receives one TaskCompleted call per target and one BatchCompleted
// call per run. Implementations must be safe for concurrent TaskCompleted
// calls.
type EventSink interface {
	TaskCompleted(ev Event)
	BatchCompleted(report *Report)
}

// logSink is the default sink: structured logs plus metrics counters.
type logSink struct{}

func (logSink) TaskCompleted(ev Event) {
	log := logging.Get().With().
		Str("batch_id", ev.BatchID).
		Str("operation", ev.Operation.Kind.String()).
		Str("target", ev.Target).
		Dur("elapsed", ev.Elapsed).
		Logger()

	switch ev.Outcome {
	case OutcomeSucceeded:
		metrics.IncSucceeded(ev.Operation.Kind.String())
		log.Info().Msg("target done")
	case OutcomeAlreadySatisfied:
		metrics.IncAlreadySatisfied(ev.Operation.Kind.String())
		log.Info().Str("reason", ev.Reason).Msg("target already in desired state")
	case OutcomeFailed:
		metrics.IncFailed(ev.Operation.Kind.String())
		log.Error().Err(ev.Err).Msg("target failed")
	}
}

func (logSink) BatchCompleted(report *Report) {
	metrics.IncBatch(len(report.Failed) > 0)
	metrics.ObserveBatchDuration(report.Duration.Seconds())
	metrics.SetLastBatch(time.Now())

	logging.Get().Info().
		Str("batch_id", report.BatchID).
		Str("operation", report.Operation.Kind.String()).
		Int("succeeded", len(report.Succeeded)).
		Int("already_satisfied", len(report.AlreadySatisfied)).
		Int("failed", len(report.Failed)).
		Dur("duration", report.Duration).
		Msg("batch completed")
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) TaskCompleted(Event)    {}
func (NopSink) BatchCompleted(*Report) {}
