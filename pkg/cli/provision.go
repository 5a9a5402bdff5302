package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dvc-ops/provgate/pkg/cli/config"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/dvc-ops/provgate/pkg/importer"
	"github.com/dvc-ops/provgate/pkg/repository"
	providerSvc "github.com/dvc-ops/provgate/pkg/service/provider"
	"github.com/dvc-ops/provgate/pkg/service/sso"
	"github.com/dvc-ops/provgate/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func cmdProvision() *cli.Command {
	var (
		providersCfg  config.Providers
		credentialCfg config.Credential
		batchCfg      config.Batch
		inputPath     string
	)

	flags := joinFlags(
		providersCfg.Flags(),
		credentialCfg.Flags(),
		batchCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Usage:       "Path to the CSV import file",
				Required:    true,
				Sources:     cli.EnvVars("PROVGATE_INPUT"),
				Destination: &inputPath,
			},
		},
	)

	return &cli.Command{
		Name:  "provision",
		Usage: "Provision accounts from an import file across selected providers",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			registry, err := providersCfg.Configure()
			if err != nil {
				return err
			}
			providerIDs, err := parseProviderIDs(batchCfg.Selection, registry)
			if err != nil {
				return err
			}

			// Input validation is batch-fatal and happens before any
			// token exchange or provisioning call.
			records, err := importer.NewCSV(inputPath).Records(ctx)
			if err != nil {
				return goerr.Wrap(err, "import file rejected")
			}
			if len(records) == 0 {
				return goerr.New("import file has no records",
					goerr.V("path", inputPath))
			}

			cred, err := promptCredential(credentialCfg.Username, credentialCfg.Password)
			if err != nil {
				return err
			}
			userID := types.UserID(cred.Username)

			logger.Info("starting provisioning batch",
				"input", inputPath,
				"records", len(records),
				"providers", len(providerIDs),
				"batch", batchCfg,
			)

			// Token sync is the prerequisite step: the batch itself never
			// exchanges credentials inline.
			store := repository.NewMemoryTokenStore()
			syncUC := usecase.NewSync(registry, store, sso.New())
			for _, r := range syncUC.SyncTokens(ctx, userID, cred, providerIDs) {
				if !r.OK {
					logger.Warn("provider token unavailable; its cells will fail",
						"providerID", r.ProviderID,
						"message", r.Message,
					)
				}
			}

			batch := usecase.NewBatch(registry, store, providerSvc.Factory(),
				usecase.WithWorkers(batchCfg.Workers))
			report := batch.Run(ctx, userID, records, providerIDs)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Record", "Provider", "Status", "Message"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, cell := range report.Results {
				table.Append([]string{
					fmt.Sprintf("%d", cell.RecordIndex+1),
					cell.ProviderID.String(),
					cell.Status.String(),
					cell.Message,
				})
			}
			table.Render()

			counts := report.Counts()
			fmt.Printf("\n%d records, %d operations: %d succeeded, %d failed\n",
				counts.TotalRecords, counts.TotalOperations,
				counts.SuccessCount, counts.ErrorCount)
			return nil
		},
	}
}
