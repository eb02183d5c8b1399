package commands

import (
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/engine"
)

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start NAME...",
		Short: "Start one or more stopped containers",
		Long: `Start the named containers concurrently. Containers already running
count as satisfied; a container that does not exist is a failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), engine.Operation{Kind: engine.StartContainer}, args)
		},
	}
}
