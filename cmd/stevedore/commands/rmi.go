package commands

import (
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/engine"
)

func newRmiCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rmi NAME...",
		Short: "Remove one or more images",
		Long: `Remove the named images concurrently. An image still used by a
container is refused unless --force is given. Images that do not exist count
as satisfied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := engine.Operation{Kind: engine.RemoveImage, Force: force}
			return runBatch(cmd.Context(), op, args)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove images referenced by containers")
	return cmd
}
