package model

import (
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/types"
)

// Credential carries the acting user's own provider login. It is supplied
// once per sync operation and never persisted or logged.
type Credential struct {
	Username string
	Password string
}

// TokenRecord is one cached access token for a (user, provider) pair.
// ExpiresAt is always IssuedAt plus the provider-reported expires_in.
type TokenRecord struct {
	ProviderID   types.ProviderID
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// NewTokenRecord creates a TokenRecord from a token-endpoint response
func NewTokenRecord(providerID types.ProviderID, accessToken, refreshToken string, issuedAt time.Time, expiresIn time.Duration) *TokenRecord {
	return &TokenRecord{
		ProviderID:   providerID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IssuedAt:     issuedAt,
		ExpiresAt:    issuedAt.Add(expiresIn),
	}
}

// ValidAt reports whether the record is usable at the given instant.
// Validity is strict: a record expiring exactly at t is already invalid.
func (r *TokenRecord) ValidAt(t time.Time) bool {
	return t.Before(r.ExpiresAt)
}
