package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/history"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recently completed batches",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			records, err := history.All()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No recorded batches")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("WHEN", "OPERATION", "OK", "SATISFIED", "FAILED", "DURATION", "BATCH ID")
			for i := len(records) - 1; i >= 0; i-- {
				r := records[i]
				table.Append(
					r.Timestamp.Format("2006-01-02 15:04:05"),
					r.Operation,
					fmt.Sprintf("%d", r.Succeeded),
					fmt.Sprintf("%d", r.AlreadySatisfied),
					fmt.Sprintf("%d", r.Failed),
					r.Duration.Round(time.Millisecond).String(),
					r.BatchID,
				)
			}
			table.Render()
			return nil
		},
	}
}
