package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "List local images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient(cfg.DockerHost)
			if err != nil {
				return err
			}
			images, err := cli.ListImages(cmd.Context())
			if err != nil {
				return err
			}
			if len(images) == 0 {
				fmt.Println("No images")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("REPOSITORY:TAG", "IMAGE ID", "SIZE", "CREATED")
			for _, im := range images {
				tags := "<none>"
				if len(im.RepoTags) > 0 {
					tags = strings.Join(im.RepoTags, ",")
				}
				table.Append(tags, shortImageID(im.ID), humanSize(im.Size), time.Unix(im.Created, 0).Format("2006-01-02 15:04"))
			}
			table.Render()
			return nil
		},
	}
}

func shortImageID(id string) string {
	return shortID(strings.TrimPrefix(id, "sha256:"))
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
