package interfaces

import (
	"context"

	"github.com/dvc-ops/provgate/pkg/domain/model"
)

// RecordSource supplies the ordered, validated provisioning input. A source
// that cannot produce every record (missing mandatory columns, unreadable
// file) returns an error before any provisioning begins.
type RecordSource interface {
	Records(ctx context.Context) ([]model.ImportRecord, error)
}
