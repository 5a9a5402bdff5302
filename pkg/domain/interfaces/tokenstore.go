package interfaces

import (
	"context"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
)

// TokenStore is the per-user, per-provider credential cache. Implementations
// must make check-then-use atomic per (userID, providerID) key: concurrent
// readers see either the fully-old or fully-new record, never a partial write.
// There is no eviction; cached tokens are short-lived by construction.
type TokenStore interface {
	// Put stores or replaces the record for the (user, provider) key
	Put(ctx context.Context, userID types.UserID, record *model.TokenRecord) error

	// Get returns the cached record, or model.ErrNoToken when absent
	Get(ctx context.Context, userID types.UserID, providerID types.ProviderID) (*model.TokenRecord, error)

	// IsValid reports whether the record is usable at the store's current time
	IsValid(record *model.TokenRecord) bool
}
