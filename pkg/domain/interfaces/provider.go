package interfaces

import (
	"context"

	"github.com/dvc-ops/provgate/pkg/domain/model"
)

// SSOClient exchanges a user's own credentials for a provider access token
type SSOClient interface {
	Exchange(ctx context.Context, provider *model.Provider, cred model.Credential) (*model.TokenRecord, error)
}

// CreateResult is the outcome of an account-creation call
type CreateResult struct {
	UserID  string
	Message string
}

// ProviderAPI is one provider's account/organization API surface, bound to a
// single provider at construction time.
type ProviderAPI interface {
	// ResolveOrgUnit looks up an organizational unit by keyword. An
	// unresolved keyword yields (nil, nil): absence is a legitimate
	// terminal outcome, not an error.
	ResolveOrgUnit(ctx context.Context, keyword, accessToken string) (*model.OrgUnitRef, error)

	// CreateAccount submits the account-creation payload for one record
	CreateAccount(ctx context.Context, record *model.ImportRecord, accessToken string) (*CreateResult, error)

	// AttachExperience attaches the employment record for a created user.
	// Account creation is not rolled back when this fails.
	AttachExperience(ctx context.Context, userID string, record *model.ImportRecord, accessToken string) error
}

// ProviderAPIFactory builds a ProviderAPI for one registry entry
type ProviderAPIFactory func(provider *model.Provider) ProviderAPI
