package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/stevedore/stevedore/internal/logging"
	"github.com/stevedore/stevedore/internal/semver"
)

// policyLabel marks containers that opt in to version tracking; its value is
// a semver constraint like "14.x" or "^1.2".
const policyLabel = "stevedore.policy"

func newOutdatedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "Show running containers whose image lags the registry",
		Long: `For every running container labeled ` + policyLabel + `, resolve the best
registry tag allowed by the label's semver constraint and report whether the
container's image is behind it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient(cfg.DockerHost)
			if err != nil {
				return err
			}
			containers, err := cli.ListContainers(cmd.Context(), false)
			if err != nil {
				return err
			}

			resolver := semver.NewResolver()
			if cfg.RegistryUser != "" {
				resolver = semver.NewResolverWithAuth(cfg.RegistryUser, cfg.RegistryPass)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("CONTAINER", "IMAGE", "POLICY", "LATEST", "STATUS")

			tracked := 0
			for _, c := range containers {
				policy, ok := c.Labels[policyLabel]
				if !ok {
					continue
				}
				tracked++

				latest, err := resolver.Resolve(cmd.Context(), c.Image, policy)
				if err != nil {
					logging.Get().Warn().Err(err).Str("container", displayNames(c.Names)).Msg("tag resolution failed")
					table.Append(displayNames(c.Names), c.Image, policy, "-", "error")
					continue
				}

				status := "up to date"
				if latest != c.Image {
					status = "outdated"
				}
				table.Append(displayNames(c.Names), c.Image, policy, latest, status)
			}

			if tracked == 0 {
				fmt.Printf("No running containers carry the %s label\n", policyLabel)
				return nil
			}
			table.Render()
			return nil
		},
	}
}
