package model

import (
	"github.com/dvc-ops/provgate/pkg/domain/types"
)

// MessagePreviewLimit bounds provider error bodies copied into cell messages
// so large or unsafe payloads never leak into reports.
const MessagePreviewLimit = 200

// ProvisionResult is the terminal unit of the report: one (record, provider)
// cell. A result is never mutated after being finalized.
type ProvisionResult struct {
	RecordIndex   int              `json:"recordIndex"`
	ProviderID    types.ProviderID `json:"providerId"`
	Status        types.CellStatus `json:"status"`
	Message       string           `json:"message,omitempty"`
	CreatedUserID string           `json:"createdUserId,omitempty"`
}

// ReportCounts are aggregates derived from the result sequence. They are
// recomputed on demand, never stored as a second source of truth.
type ReportCounts struct {
	TotalRecords    int `json:"totalRecords"`
	TotalOperations int `json:"totalOperations"`
	SuccessCount    int `json:"successCount"`
	ErrorCount      int `json:"errorCount"`
}

// BatchReport is the ordered sequence of cell results for one batch
// invocation, in record-major, provider-minor order.
type BatchReport struct {
	BatchID types.BatchID     `json:"batchId"`
	Results []ProvisionResult `json:"results"`
}

// Counts recomputes the aggregate counters from the result sequence.
// ErrorCount covers every cell that was attempted and did not succeed
// (error, no_token, token_expired); not_attempted cells count toward
// TotalOperations only, so SuccessCount+ErrorCount can be less than
// TotalOperations after an aborted batch.
func (r *BatchReport) Counts() ReportCounts {
	counts := ReportCounts{
		TotalOperations: len(r.Results),
	}
	records := make(map[int]bool)
	for _, res := range r.Results {
		records[res.RecordIndex] = true
		switch res.Status {
		case types.CellStatusSuccess:
			counts.SuccessCount++
		case types.CellStatusError, types.CellStatusNoToken, types.CellStatusTokenExpired:
			counts.ErrorCount++
		}
	}
	counts.TotalRecords = len(records)
	return counts
}

// TruncateMessage bounds a provider response body for inclusion in a report
func TruncateMessage(s string) string {
	if len(s) <= MessagePreviewLimit {
		return s
	}
	return s[:MessagePreviewLimit] + "..."
}
