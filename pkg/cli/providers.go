package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dvc-ops/provgate/pkg/cli/config"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func cmdProviders() *cli.Command {
	var providersCfg config.Providers

	return &cli.Command{
		Name:  "providers",
		Usage: "List configured identity providers",
		Flags: providersCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := providersCfg.Configure()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Base URL", "Positions"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, p := range registry.Providers {
				table.Append([]string{
					p.ID.String(),
					p.Name,
					p.BaseURL,
					fmt.Sprintf("%d (+default %s)", len(p.Positions), p.DefaultPosition.PositionName),
				})
			}
			table.Render()
			return nil
		},
	}
}
