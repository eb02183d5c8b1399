package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/stevedore/stevedore/internal/engine"
	"github.com/stevedore/stevedore/internal/history"
	"github.com/stevedore/stevedore/internal/logging"
	"github.com/stevedore/stevedore/internal/notify"
)

// runBatch executes one engine batch and handles the shared tail: diagnostic
// output, history recording, and failure notifications. The returned error is
// non-nil exactly when the batch failed, which drives the exit code.
func runBatch(ctx context.Context, op engine.Operation, targets []string) error {
	cli, err := newClient(cfg.DockerHost)
	if err != nil {
		return err
	}

	eng := engine.New(cli, engine.WithMaxConcurrent(cfg.MaxConcurrent))
	report, err := eng.Run(ctx, op, targets)
	if report == nil {
		return err
	}

	for _, line := range report.FailureLines() {
		fmt.Fprintln(os.Stderr, line)
	}
	printSummary(report)
	recordBatch(report)

	if err != nil && cfg.WebhookURL != "" {
		notifyFailure(ctx, report, err)
	}
	return err
}

func printSummary(report *engine.Report) {
	fmt.Printf("%s: %d succeeded, %d already satisfied, %d failed\n",
		report.Operation.Kind, len(report.Succeeded), len(report.AlreadySatisfied), len(report.Failed))
}

func recordBatch(report *engine.Report) {
	rec := history.BatchRecord{
		BatchID:          report.BatchID,
		Operation:        report.Operation.Kind.String(),
		Succeeded:        len(report.Succeeded),
		AlreadySatisfied: len(report.AlreadySatisfied),
		Failed:           len(report.Failed),
		Duration:         report.Duration,
		Timestamp:        time.Now(),
	}
	if err := history.Record(rec, cfg.HistoryLimit); err != nil {
		logging.Get().Warn().Err(err).Msg("could not record batch history")
	}
}

func notifyFailure(ctx context.Context, report *engine.Report, batchErr error) {
	m := notify.NewMultiNotifier()
	m.Add(&notify.Webhook{URL: cfg.WebhookURL})
	title := fmt.Sprintf("stevedore %s batch failed", report.Operation.Kind)
	m.Send(ctx, title, batchErr.Error())

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := m.Wait(waitCtx); err != nil {
		logging.Get().Warn().Err(err).Msg("notification delivery incomplete")
	}
}
