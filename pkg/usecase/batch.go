package usecase

import (
	"context"
	"fmt"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/dvc-ops/provgate/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
)

// Batch implements BatchUseCase: it drives N records × M selected providers
// through the provisioning pipeline, one cell at a time. Cells are fully
// isolated (a failure in one never aborts its neighbors) and the report
// always lists every cell in record-major, provider-minor order regardless
// of how execution was scheduled.
type Batch struct {
	registry *model.Registry
	store    interfaces.TokenStore
	factory  interfaces.ProviderAPIFactory
	workers  int
}

// BatchOption configures the Batch use case
type BatchOption func(*Batch)

// WithWorkers parallelizes cells across the provider dimension within one
// record. Workers <= 1 keeps the sequential behavior.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBatch creates the batch orchestrator
func NewBatch(registry *model.Registry, store interfaces.TokenStore, factory interfaces.ProviderAPIFactory, opts ...BatchOption) *Batch {
	b := &Batch{
		registry: registry,
		store:    store,
		factory:  factory,
		workers:  1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ BatchUseCase = (*Batch)(nil)

// Run processes every (record, provider) cell and returns the ordered report.
// A batch-level context cancellation stops scheduling new cells; completed
// cells keep their results and the remainder is marked not_attempted.
func (b *Batch) Run(ctx context.Context, userID types.UserID, records []model.ImportRecord, providerIDs []types.ProviderID) *model.BatchReport {
	logger := ctxlog.From(ctx)

	report := &model.BatchReport{
		BatchID: types.NewBatchID(),
		Results: make([]model.ProvisionResult, 0, len(records)*len(providerIDs)),
	}

	logger.Info("batch started",
		"batchID", report.BatchID,
		"records", len(records),
		"providers", len(providerIDs),
		"workers", b.workers,
	)

	for ri := range records {
		record := &records[ri]
		cells := make([]model.ProvisionResult, len(providerIDs))

		if b.workers > 1 {
			tasks := make([]func(ctx context.Context), len(providerIDs))
			for pi, providerID := range providerIDs {
				tasks[pi] = func(ctx context.Context) {
					cells[pi] = b.processCell(ctx, userID, record, providerID)
				}
			}
			async.Parallel(ctx, b.workers, tasks)
		} else {
			for pi, providerID := range providerIDs {
				cells[pi] = b.processCell(ctx, userID, record, providerID)
			}
		}

		// Slots are pre-indexed by provider position, so emitted order is
		// record-major, provider-minor no matter how execution interleaved.
		report.Results = append(report.Results, cells...)
	}

	counts := report.Counts()
	logger.Info("batch finished",
		"batchID", report.BatchID,
		"operations", counts.TotalOperations,
		"success", counts.SuccessCount,
		"errors", counts.ErrorCount,
	)
	return report
}

// processCell runs the state machine for one (record, provider) cell:
// pending -> no_token | token_expired | success | error, or not_attempted
// when the batch context is already done.
func (b *Batch) processCell(ctx context.Context, userID types.UserID, record *model.ImportRecord, providerID types.ProviderID) model.ProvisionResult {
	result := model.ProvisionResult{
		RecordIndex: record.Index,
		ProviderID:  providerID,
		Status:      types.CellStatusPending,
	}

	if ctx.Err() != nil {
		result.Status = types.CellStatusNotAttempted
		result.Message = "batch aborted before this cell"
		return result
	}

	provider := b.registry.Find(providerID)
	if provider == nil {
		result.Status = types.CellStatusError
		result.Message = fmt.Sprintf("provider %s is not configured", providerID)
		return result
	}

	token, err := b.store.Get(ctx, userID, providerID)
	if err != nil {
		result.Status = types.CellStatusNoToken
		result.Message = fmt.Sprintf("no token for %s; run sync first", provider.Name)
		return result
	}
	if !b.store.IsValid(token) {
		result.Status = types.CellStatusTokenExpired
		result.Message = fmt.Sprintf("token for %s expired; run sync again", provider.Name)
		return result
	}

	api := b.factory(provider)
	created, err := api.CreateAccount(ctx, record, token.AccessToken)
	if err != nil {
		result.Status = types.CellStatusError
		result.Message = model.TruncateMessage(err.Error())
		return result
	}

	result.Status = types.CellStatusSuccess
	result.Message = created.Message
	result.CreatedUserID = created.UserID

	// The experience attachment is a second, independent remote effect.
	// Its failure is a secondary note on the same cell; the account stays
	// created, the cell stays success, and nothing is rolled back.
	if record.HasOrgParent() {
		if err := api.AttachExperience(ctx, created.UserID, record, token.AccessToken); err != nil {
			result.Message += "; experience not attached: " + model.TruncateMessage(err.Error())
		}
	}
	return result
}
