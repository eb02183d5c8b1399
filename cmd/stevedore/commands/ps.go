package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient(cfg.DockerHost)
			if err != nil {
				return err
			}
			containers, err := cli.ListContainers(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(containers) == 0 {
				fmt.Println("No containers")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("CONTAINER ID", "IMAGE", "STATE", "STATUS", "NAMES")
			for _, c := range containers {
				table.Append(shortID(c.ID), c.Image, c.State, c.Status, displayNames(c.Names))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include stopped containers")
	return cmd
}
