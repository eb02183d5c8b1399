package commands

import (
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/engine"
)

func newRmCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm NAME...",
		Short: "Remove one or more containers",
		Long: `Remove the named containers concurrently. A running container is
refused unless --force is given. Containers that do not exist count as
satisfied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := engine.Operation{Kind: engine.RemoveContainer, Force: force}
			return runBatch(cmd.Context(), op, args)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove running containers too")
	return cmd
}
