package types

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID identifies the acting portal user who owns cached tokens
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// ProviderID identifies one ministry provider in the registry
type ProviderID int

// String returns the string representation
func (id ProviderID) String() string {
	return fmt.Sprintf("%d", id)
}

// Int returns the int representation
func (id ProviderID) Int() int {
	return int(id)
}

// BatchID identifies one batch invocation
type BatchID string

// String returns the string representation
func (id BatchID) String() string {
	return string(id)
}

// NewBatchID creates a new BatchID
func NewBatchID() BatchID {
	return BatchID(fmt.Sprintf("batch-%s", uuid.New().String()))
}
