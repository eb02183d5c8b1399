package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/docker"
	"github.com/stevedore/stevedore/internal/engine"
)

func newPruneCommand() *cobra.Command {
	var (
		prefix string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "prune [--prefix P] [-f]",
		Short: "Remove stopped containers",
		Long: `List stopped containers, optionally filtered by a name prefix. Without
--force this is a dry run that only shows what would be removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient(cfg.DockerHost)
			if err != nil {
				return err
			}
			containers, err := cli.ListContainers(cmd.Context(), true)
			if err != nil {
				return err
			}

			candidates := pruneCandidates(containers, prefix)
			if len(candidates) == 0 {
				fmt.Println("Nothing to prune")
				return nil
			}

			if !force {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("CONTAINER ID", "IMAGE", "STATE", "NAMES")
				for _, c := range candidates {
					table.Append(shortID(c.ID), c.Image, c.State, displayNames(c.Names))
				}
				table.Render()
				fmt.Printf("%d container(s) would be removed; rerun with --force to remove them\n", len(candidates))
				return nil
			}

			targets := make([]string, 0, len(candidates))
			for _, c := range candidates {
				targets = append(targets, c.ID)
			}
			return runBatch(cmd.Context(), engine.Operation{Kind: engine.RemoveContainer}, targets)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only containers whose name starts with this prefix")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "actually remove the containers")
	return cmd
}

// pruneCandidates keeps the non-running containers, optionally filtered by a
// name prefix (container names carry a leading slash).
func pruneCandidates(containers []docker.Container, prefix string) []docker.Container {
	var out []docker.Container
	for _, c := range containers {
		if c.State == "running" {
			continue
		}
		if prefix != "" && !hasNameWithPrefix(c.Names, prefix) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasNameWithPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(strings.TrimPrefix(n, "/"), prefix) {
			return true
		}
	}
	return false
}

func displayNames(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		trimmed = append(trimmed, strings.TrimPrefix(n, "/"))
	}
	return strings.Join(trimmed, ",")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
