package config_test

import (
	"context"
	"testing"

	"github.com/dvc-ops/provgate/pkg/cli/config"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func TestBatchFlags(t *testing.T) {
	var cfg config.Batch

	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), []string{"test", "--workers", "4", "--select", "1,3"}))
	gt.Equal(t, 4, cfg.Workers)
	gt.Equal(t, "1,3", cfg.Selection)
}

func TestBatchFlagDefaults(t *testing.T) {
	var cfg config.Batch

	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), []string{"test"}))
	gt.Equal(t, 1, cfg.Workers)
	gt.Equal(t, "", cfg.Selection)
}
