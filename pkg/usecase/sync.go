package usecase

import (
	"context"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// Sync implements TokenSyncUseCase. It is the only writer of the TokenStore:
// the batch itself never exchanges credentials inline, so a missing or
// expired token during a batch is terminal for that cell.
type Sync struct {
	registry *model.Registry
	store    interfaces.TokenStore
	sso      interfaces.SSOClient
}

// NewSync creates the token sync use case
func NewSync(registry *model.Registry, store interfaces.TokenStore, sso interfaces.SSOClient) *Sync {
	return &Sync{
		registry: registry,
		store:    store,
		sso:      sso,
	}
}

var _ TokenSyncUseCase = (*Sync)(nil)

// SyncTokens exchanges the user's credentials against each selected provider
// and caches the resulting tokens. One provider's failure never aborts the
// remaining exchanges; the credential itself is not retained after return.
func (s *Sync) SyncTokens(ctx context.Context, userID types.UserID, cred model.Credential, providerIDs []types.ProviderID) []SyncResult {
	logger := ctxlog.From(ctx)

	results := make([]SyncResult, 0, len(providerIDs))
	for _, id := range providerIDs {
		provider := s.registry.Find(id)
		if provider == nil {
			results = append(results, SyncResult{
				ProviderID: id,
				Message:    "provider not configured",
			})
			continue
		}

		record, err := s.sso.Exchange(ctx, provider, cred)
		if err != nil {
			logger.Warn("token exchange failed",
				"providerID", id,
				"provider", provider.Name,
				"error", err,
			)
			results = append(results, SyncResult{
				ProviderID: id,
				Message:    model.TruncateMessage(err.Error()),
			})
			continue
		}

		if err := s.store.Put(ctx, userID, record); err != nil {
			results = append(results, SyncResult{
				ProviderID: id,
				Message:    model.TruncateMessage(err.Error()),
			})
			continue
		}

		logger.Info("token cached",
			"providerID", id,
			"provider", provider.Name,
			"expiresAt", record.ExpiresAt,
		)
		results = append(results, SyncResult{
			ProviderID: id,
			OK:         true,
			Message:    "token acquired",
		})
	}
	return results
}
