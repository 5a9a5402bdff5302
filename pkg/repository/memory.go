package repository

import (
	"context"
	"sync"
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type tokenKey struct {
	userID     types.UserID
	providerID types.ProviderID
}

// MemoryTokenStore implements TokenStore with in-memory storage. Tokens live
// only for the process lifetime; persistence across restarts is intentionally
// unsupported. The clock is injected so expiry logic is testable without
// wall-clock sleep.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[tokenKey]*model.TokenRecord
	now    func() time.Time
}

// NewMemoryTokenStore creates a new in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return NewMemoryTokenStoreWithClock(time.Now)
}

// NewMemoryTokenStoreWithClock creates a store with an injected clock
func NewMemoryTokenStoreWithClock(now func() time.Time) *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[tokenKey]*model.TokenRecord),
		now:    now,
	}
}

var _ interfaces.TokenStore = (*MemoryTokenStore)(nil)

// Put stores or replaces the record for the (user, provider) key
func (s *MemoryTokenStore) Put(ctx context.Context, userID types.UserID, record *model.TokenRecord) error {
	if record == nil {
		return goerr.New("token record is nil")
	}
	if userID == "" {
		return goerr.New("user ID is empty")
	}
	if record.AccessToken == "" {
		return goerr.New("access token is empty",
			goerr.V("providerID", record.ProviderID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so callers cannot mutate the cached record afterwards
	recordCopy := *record
	s.tokens[tokenKey{userID: userID, providerID: record.ProviderID}] = &recordCopy
	return nil
}

// Get returns the cached record, or model.ErrNoToken when absent
func (s *MemoryTokenStore) Get(ctx context.Context, userID types.UserID, providerID types.ProviderID) (*model.TokenRecord, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.tokens[tokenKey{userID: userID, providerID: providerID}]
	if !exists {
		return nil, goerr.Wrap(model.ErrNoToken, "token not cached",
			goerr.V("userID", userID),
			goerr.V("providerID", providerID))
	}

	// Return a copy to prevent external modification
	recordCopy := *record
	return &recordCopy, nil
}

// IsValid reports whether the record is usable at the store's current time
func (s *MemoryTokenStore) IsValid(record *model.TokenRecord) bool {
	if record == nil {
		return false
	}
	return record.ValidAt(s.now())
}
