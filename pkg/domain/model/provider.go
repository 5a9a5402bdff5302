package model

import (
	"strings"

	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Default API paths shared by the ministry admin portals. Individual providers
// may override them in the registry file.
const (
	DefaultAccountAPIPath    = "/hu/user/--fully"
	DefaultAgencyTreeAPIPath = "/ba/agency/tree-view"
	DefaultTokenPath         = "/auth/realms/digo/protocol/openid-connect/token"
)

// Position is one entry of a provider's job-title mapping table
type Position struct {
	Title        string `yaml:"title"`
	PositionID   string `yaml:"positionId"`
	PositionName string `yaml:"positionName"`
}

// Validate validates a position entry
func (p *Position) Validate() error {
	if p.PositionID == "" {
		return goerr.New("position ID is required", goerr.V("title", p.Title))
	}
	if p.PositionName == "" {
		return goerr.New("position name is required", goerr.V("title", p.Title))
	}
	return nil
}

// Provider describes one ministry's identity and account-management API
// surface. Providers are loaded from the registry file at startup and are
// immutable afterwards; the position table is configuration, not logic.
type Provider struct {
	ID                types.ProviderID `yaml:"id"`
	Name              string           `yaml:"name"`
	BaseURL           string           `yaml:"baseUrl"`
	SSOURL            string           `yaml:"ssoUrl"`
	TokenPath         string           `yaml:"tokenPath,omitempty"`
	AccountAPIPath    string           `yaml:"accountApiPath,omitempty"`
	AgencyTreeAPIPath string           `yaml:"agencyTreeApiPath,omitempty"`
	Positions         []Position       `yaml:"positions"`
	DefaultPosition   Position         `yaml:"defaultPosition"`
}

// Validate validates a provider entry and fills in default API paths
func (p *Provider) Validate() error {
	if p.ID == 0 {
		return goerr.New("provider ID is required", goerr.V("name", p.Name))
	}
	if p.Name == "" {
		return goerr.New("provider name is required", goerr.V("id", p.ID))
	}
	if p.BaseURL == "" {
		return goerr.New("provider base URL is required", goerr.V("id", p.ID))
	}
	if p.SSOURL == "" {
		return goerr.New("provider SSO URL is required", goerr.V("id", p.ID))
	}
	if err := p.DefaultPosition.Validate(); err != nil {
		return goerr.Wrap(err, "default position is required", goerr.V("id", p.ID))
	}
	for i, pos := range p.Positions {
		if err := pos.Validate(); err != nil {
			return goerr.Wrap(err, "invalid position at index",
				goerr.V("id", p.ID),
				goerr.V("index", i))
		}
	}

	if p.TokenPath == "" {
		p.TokenPath = DefaultTokenPath
	}
	if p.AccountAPIPath == "" {
		p.AccountAPIPath = DefaultAccountAPIPath
	}
	if p.AgencyTreeAPIPath == "" {
		p.AgencyTreeAPIPath = DefaultAgencyTreeAPIPath
	}
	return nil
}

// Position maps a free-text job title to this provider's position entry.
// The lookup is exact-match after whitespace trim; an empty or unknown title
// falls back to the provider's default entry, so the mapping is total.
func (p *Provider) Position(jobTitle string) Position {
	title := strings.TrimSpace(jobTitle)
	if title == "" {
		return p.DefaultPosition
	}
	for _, pos := range p.Positions {
		if pos.Title == title {
			return pos
		}
	}
	return p.DefaultPosition
}

// TokenURL returns the full password-grant token endpoint
func (p *Provider) TokenURL() string {
	return strings.TrimRight(p.SSOURL, "/") + p.TokenPath
}

// Registry is the process-wide, read-only provider directory
type Registry struct {
	Providers []Provider `yaml:"providers"`
}

// Validate validates the registry configuration
func (r *Registry) Validate() error {
	if len(r.Providers) == 0 {
		return goerr.New("at least one provider is required")
	}

	idMap := make(map[types.ProviderID]bool)
	for i := range r.Providers {
		p := &r.Providers[i]
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid provider at index",
				goerr.V("index", i))
		}
		if idMap[p.ID] {
			return goerr.New("duplicate provider ID", goerr.V("id", p.ID))
		}
		idMap[p.ID] = true
	}
	return nil
}

// Find returns the provider with the given ID, or nil when unconfigured
func (r *Registry) Find(id types.ProviderID) *Provider {
	for i := range r.Providers {
		if r.Providers[i].ID == id {
			// Return a copy to prevent modification
			result := r.Providers[i]
			return &result
		}
	}
	return nil
}

// IDs returns all provider IDs in registry order
func (r *Registry) IDs() []types.ProviderID {
	ids := make([]types.ProviderID, 0, len(r.Providers))
	for _, p := range r.Providers {
		ids = append(ids, p.ID)
	}
	return ids
}
