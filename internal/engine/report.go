package engine

import (
	"fmt"
	"time"
)

// Outcome is the classification of a single target's result.
type Outcome string

const (
	OutcomeSucceeded        Outcome = "succeeded"
	OutcomeAlreadySatisfied Outcome = "already_satisfied"
	OutcomeFailed           Outcome = "failed"
)

// SatisfiedTarget names a target whose desired state already held, with the
// reason the client reported ("already stopped", "not found", ...).
type SatisfiedTarget struct {
	Name   string
	Reason string
}

// FailedTarget pairs a target with the error that sank it.
type FailedTarget struct {
	Name string
	Err  error
}

// Report is the aggregate result of one batch. Each partition preserves the
// input order of the targets, and every input identifier lands in exactly one
// of the three.
type Report struct {
	BatchID   string
	Operation Operation
	Duration  time.Duration

	Succeeded        []string
	AlreadySatisfied []SatisfiedTarget
	Failed           []FailedTarget
}

// Total returns the number of targets the batch processed.
func (r *Report) Total() int {
	return len(r.Succeeded) + len(r.AlreadySatisfied) + len(r.Failed)
}

// FailureLines renders one diagnostic line per failed target, in input order,
// for display alongside the aggregate error.
func (r *Report) FailureLines() []string {
	lines := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		lines = append(lines, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return lines
}

// Err returns the batch's aggregate error: nil when nothing failed, otherwise
// an error wrapping the first failed target's error in input order.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("failed to %s %d %s(s): %w",
		r.Operation.Kind.verb(), len(r.Failed), r.Operation.Kind.resource(), r.Failed[0].Err)
}
