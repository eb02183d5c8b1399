// Package engine runs lifecycle operations against many targets at once and
// folds the per-target results into a single deterministic report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevedore/stevedore/internal/docker"
)

// ErrNoTargets is returned when Run is called with an empty target list.
var ErrNoTargets = errors.New("no targets given")

// Engine dispatches one task per target and aggregates the outcomes.
type Engine struct {
	client        docker.Client
	sink          EventSink
	maxConcurrent int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink replaces the default log/metrics sink.
func WithSink(s EventSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithMaxConcurrent bounds the number of in-flight tasks. Zero or negative
// means one goroutine per target.
func WithMaxConcurrent(n int) Option {
	return func(e *Engine) { e.maxConcurrent = n }
}

// New returns an Engine backed by the given lifecycle client.
func New(client docker.Client, opts ...Option) *Engine {
	e := &Engine{client: client, sink: logSink{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// outcome is the raw per-target result before aggregation.
type outcome struct {
	class  Outcome
	reason string
	err    error
}

// Run executes op against every target concurrently and returns the
// aggregated report. The report partitions are ordered by the input target
// list regardless of completion order. The returned error is non-nil exactly
// when at least one target failed; it wraps the first failure in input order.
//
// Duplicate identifiers are processed independently and yield one outcome
// each. The report is assembled only after every task has finished.
func (e *Engine) Run(ctx context.Context, op Operation, targets []string) (*Report, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	batchID := uuid.NewString()
	start := time.Now()

	// One slot per target, written exactly once by the task that owns the
	// index. No shared mutation until the join barrier below has passed.
	results := make([]outcome, len(targets))

	var sem chan struct{}
	if e.maxConcurrent > 0 {
		sem = make(chan struct{}, e.maxConcurrent)
	}

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			taskStart := time.Now()
			results[i] = e.runOne(ctx, op, target)
			e.sink.TaskCompleted(Event{
				BatchID:   batchID,
				Operation: op,
				Target:    target,
				Outcome:   results[i].class,
				Reason:    results[i].reason,
				Err:       results[i].err,
				Elapsed:   time.Since(taskStart),
			})
		}(i, target)
	}
	wg.Wait()

	report := &Report{
		BatchID:   batchID,
		Operation: op,
		Duration:  time.Since(start),
	}
	for i, res := range results {
		switch res.class {
		case OutcomeSucceeded:
			report.Succeeded = append(report.Succeeded, targets[i])
		case OutcomeAlreadySatisfied:
			report.AlreadySatisfied = append(report.AlreadySatisfied, SatisfiedTarget{Name: targets[i], Reason: res.reason})
		case OutcomeFailed:
			report.Failed = append(report.Failed, FailedTarget{Name: targets[i], Err: res.err})
		}
	}
	e.sink.BatchCompleted(report)

	return report, report.Err()
}

// runOne applies op to a single target and classifies the result. A panic in
// the client surfaces as a failed outcome rather than tearing down the batch.
func (e *Engine) runOne(ctx context.Context, op Operation, target string) (res outcome) {
	defer func() {
		if r := recover(); r != nil {
			res = outcome{class: OutcomeFailed, err: fmt.Errorf("task execution failure: %v", r)}
		}
	}()

	err := e.apply(ctx, op, target)
	switch {
	case err == nil:
		return outcome{class: OutcomeSucceeded}
	case docker.IsAlreadyInDesiredState(err):
		return outcome{class: OutcomeAlreadySatisfied, reason: docker.StateReason(err)}
	case docker.IsNotFound(err) && op.Kind.absenceSatisfies():
		return outcome{class: OutcomeAlreadySatisfied, reason: "not found"}
	default:
		return outcome{class: OutcomeFailed, err: err}
	}
}

func (e *Engine) apply(ctx context.Context, op Operation, target string) error {
	switch op.Kind {
	case StopContainer:
		return e.client.StopContainer(ctx, target, op.timeout())
	case StartContainer:
		return e.client.StartContainer(ctx, target)
	case RemoveContainer:
		return e.client.RemoveContainer(ctx, target, op.Force)
	case RemoveImage:
		return e.client.RemoveImage(ctx, target, op.Force)
	default:
		return fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}
