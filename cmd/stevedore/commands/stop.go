package commands

import (
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/engine"
)

func newStopCommand() *cobra.Command {
	var timeoutSeconds uint

	cmd := &cobra.Command{
		Use:   "stop NAME...",
		Short: "Stop one or more running containers",
		Long: `Stop the named containers concurrently, waiting up to the grace period
for each before the daemon kills it. Containers that are already stopped or
do not exist count as satisfied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := engine.Operation{Kind: engine.StopContainer, TimeoutSeconds: timeoutSeconds}
			if !cmd.Flags().Changed("time") {
				op.TimeoutSeconds = uint(cfg.StopTimeout.Seconds())
			}
			return runBatch(cmd.Context(), op, args)
		},
	}

	cmd.Flags().UintVarP(&timeoutSeconds, "time", "t", 10, "seconds to wait before killing the container")
	return cmd
}
