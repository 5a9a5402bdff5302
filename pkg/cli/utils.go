package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// parseProviderIDs parses a comma-separated provider selection. An empty
// selection means every provider in the registry, in registry order.
func parseProviderIDs(selection string, registry *model.Registry) ([]types.ProviderID, error) {
	if strings.TrimSpace(selection) == "" {
		return registry.IDs(), nil
	}

	var ids []types.ProviderID
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid provider ID in selection",
				goerr.V("value", part))
		}
		ids = append(ids, types.ProviderID(n))
	}
	if len(ids) == 0 {
		return nil, goerr.New("provider selection is empty")
	}
	return ids, nil
}

// promptCredential completes a credential from flags, prompting for whatever
// is missing. The password prompt never echoes.
func promptCredential(username, password string) (model.Credential, error) {
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		if _, err := fmt.Scanln(&username); err != nil {
			return model.Credential{}, goerr.Wrap(err, "failed to read username")
		}
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return model.Credential{}, goerr.Wrap(err, "failed to read password")
		}
		password = string(raw)
	}
	return model.Credential{Username: username, Password: password}, nil
}
