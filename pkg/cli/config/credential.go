package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Credential holds the acting user's provider login for token sync. The
// password is normally prompted interactively; the env source exists for
// non-interactive runs.
type Credential struct {
	Username string
	Password string
}

// Flags returns CLI flags for Credential configuration
func (c *Credential) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Usage:       "Provider portal username (prompted when omitted)",
			Category:    "Credential",
			Sources:     cli.EnvVars("PROVGATE_USERNAME"),
			Destination: &c.Username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Provider portal password (prompted when omitted)",
			Category:    "Credential",
			Sources:     cli.EnvVars("PROVGATE_PASSWORD"),
			Destination: &c.Password,
		},
	}
}

// LogValue returns structured log value; the password is never included
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.Bool("has_password", c.Password != ""),
	)
}
