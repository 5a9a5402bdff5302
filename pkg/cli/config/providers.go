package config

import (
	"log/slog"
	"os"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Providers holds the provider registry configuration
type Providers struct {
	Path string
}

// Flags returns CLI flags for the provider registry
func (p *Providers) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "providers",
			Usage:       "Path to the provider registry YAML file",
			Category:    "Providers",
			Value:       "config/providers.yaml",
			Sources:     cli.EnvVars("PROVGATE_PROVIDERS"),
			Destination: &p.Path,
		},
	}
}

// Configure loads and validates the registry from the YAML file
func (p *Providers) Configure() (*model.Registry, error) {
	if p.Path == "" {
		return nil, goerr.New("provider registry path is required")
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "provider registry file not found",
				goerr.V("path", p.Path))
		}
		return nil, goerr.Wrap(err, "failed to read provider registry",
			goerr.V("path", p.Path))
	}

	var registry model.Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, goerr.Wrap(err, "failed to parse provider registry YAML",
			goerr.V("path", p.Path))
	}

	if err := registry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid provider registry",
			goerr.V("path", p.Path))
	}

	return &registry, nil
}

// LogValue returns structured log value
func (p Providers) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.Path),
	)
}
