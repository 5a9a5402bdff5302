package usecase

import (
	"context"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
)

// SyncResult is the outcome of one provider's token acquisition
type SyncResult struct {
	ProviderID types.ProviderID
	OK         bool
	Message    string
}

// TokenSyncUseCase acquires tokens for the acting user ahead of a batch run
type TokenSyncUseCase interface {
	SyncTokens(ctx context.Context, userID types.UserID, cred model.Credential, providerIDs []types.ProviderID) []SyncResult
}

// BatchUseCase drives records through the provisioning pipeline
type BatchUseCase interface {
	Run(ctx context.Context, userID types.UserID, records []model.ImportRecord, providerIDs []types.ProviderID) *model.BatchReport
}
