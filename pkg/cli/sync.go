package cli

import (
	"context"
	"os"

	"github.com/dvc-ops/provgate/pkg/cli/config"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/dvc-ops/provgate/pkg/repository"
	"github.com/dvc-ops/provgate/pkg/service/sso"
	"github.com/dvc-ops/provgate/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// cmdSync checks that the user's credentials authenticate against the
// selected providers. Tokens are cached in process memory only, so a batch
// run performs its own sync step; this command exists for credential and
// connectivity checks ahead of a large import.
func cmdSync() *cli.Command {
	var (
		providersCfg  config.Providers
		credentialCfg config.Credential
		batchCfg      config.Batch
	)

	flags := joinFlags(
		providersCfg.Flags(),
		credentialCfg.Flags(),
		batchCfg.Flags(),
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Exchange credentials for tokens against the selected providers",
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
			cred, err := promptCredential(credentialCfg.Username, credentialCfg.Password)
			if err != nil {
				return err
			}

			logger.Info("starting token sync",
				"providers", len(providerIDs),
				"credential", credentialCfg,
			)

			store := repository.NewMemoryTokenStore()
			syncUC := usecase.NewSync(registry, store, sso.New())
			results := syncUC.SyncTokens(ctx, types.UserID(cred.Username), cred, providerIDs)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Provider", "Result", "Message"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, r := range results {
				status := "FAILED"
				if r.OK {
					status = "OK"
				}
				table.Append([]string{r.ProviderID.String(), status, r.Message})
			}
			table.Render()
			return nil
		},
	}
}
