package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dvc-ops/provgate/pkg/cli/config"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/dvc-ops/provgate/pkg/service/provider"
	"github.com/dvc-ops/provgate/pkg/service/sso"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// cmdLookup searches a provider's account directory by keyword. Its main use
// is verifying that a batch run actually landed the accounts it reported.
func cmdLookup() *cli.Command {
	var (
		providersCfg  config.Providers
		credentialCfg config.Credential
		providerID    int
		page          int
		size          int
	)

	flags := joinFlags(
		providersCfg.Flags(),
		credentialCfg.Flags(),
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "provider",
				Usage:       "Provider ID to search",
				Category:    "Lookup",
				Required:    true,
				Sources:     cli.EnvVars("PROVGATE_PROVIDER"),
				Destination: &providerID,
			},
			&cli.IntFlag{
				Name:        "page",
				Usage:       "Result page (0-based)",
				Category:    "Lookup",
				Value:       0,
				Destination: &page,
			},
			&cli.IntFlag{
				Name:        "size",
				Usage:       "Results per page",
				Category:    "Lookup",
				Value:       20,
				Destination: &size,
			},
		},
	)

	return &cli.Command{
		Name:      "lookup",
		Usage:     "Search a provider's account directory by keyword",
		ArgsUsage: "<keyword>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			keyword := c.Args().First()
			if keyword == "" {
				return goerr.New("keyword argument is required")
			}

			registry, err := providersCfg.Configure()
			if err != nil {
				return err
			}
			p := registry.Find(types.ProviderID(providerID))
			if p == nil {
				return goerr.New("provider is not configured",
					goerr.V("providerID", providerID))
			}
			cred, err := promptCredential(credentialCfg.Username, credentialCfg.Password)
			if err != nil {
				return err
			}

			token, err := sso.New().Exchange(ctx, p, cred)
			if err != nil {
				return goerr.Wrap(err, "token exchange failed",
					goerr.V("providerID", p.ID))
			}

			accounts, err := provider.New(p).SearchUsers(ctx, keyword, token.AccessToken, page, size)
			if err != nil {
				return err
			}

			logger.Info("account lookup finished",
				"providerID", p.ID,
				"keyword", keyword,
				"matches", len(accounts),
			)

			if len(accounts) == 0 {
				fmt.Fprintln(os.Stdout, "no matching accounts")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Username", "Full Name", "Email"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, a := range accounts {
				table.Append([]string{a.ID, a.Username, a.FullName, a.Email})
			}
			table.Render()
			return nil
		},
	}
}
