package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Batch holds batch execution configuration
type Batch struct {
	Workers   int
	Selection string
}

// Flags returns CLI flags for batch execution
func (b *Batch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Parallel provider calls per record (1 = sequential)",
			Category:    "Batch",
			Value:       1,
			Sources:     cli.EnvVars("PROVGATE_WORKERS"),
			Destination: &b.Workers,
		},
		&cli.StringFlag{
			Name:        "select",
			Usage:       "Comma-separated provider IDs to target (empty = all)",
			Category:    "Batch",
			Sources:     cli.EnvVars("PROVGATE_SELECT"),
			Destination: &b.Selection,
		},
	}
}

// LogValue returns structured log value
func (b Batch) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("workers", b.Workers),
		slog.String("select", b.Selection),
	)
}
