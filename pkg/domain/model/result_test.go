package model_test

import (
	"strings"
	"testing"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestReportCounts(t *testing.T) {
	report := &model.BatchReport{
		Results: []model.ProvisionResult{
			{RecordIndex: 0, ProviderID: 1, Status: types.CellStatusSuccess},
			{RecordIndex: 0, ProviderID: 3, Status: types.CellStatusTokenExpired},
			{RecordIndex: 1, ProviderID: 1, Status: types.CellStatusError},
			{RecordIndex: 1, ProviderID: 3, Status: types.CellStatusSuccess},
			{RecordIndex: 2, ProviderID: 1, Status: types.CellStatusNoToken},
			{RecordIndex: 2, ProviderID: 3, Status: types.CellStatusNotAttempted},
		},
	}

	counts := report.Counts()
	gt.Equal(t, 3, counts.TotalRecords)
	gt.Equal(t, 6, counts.TotalOperations)
	gt.Equal(t, 2, counts.SuccessCount)
	// no_token and token_expired are attempted failures; the not_attempted
	// cell lands in neither bucket
	gt.Equal(t, 3, counts.ErrorCount)
}

func TestReportCountsEmpty(t *testing.T) {
	report := &model.BatchReport{}
	counts := report.Counts()
	gt.Equal(t, 0, counts.TotalRecords)
	gt.Equal(t, 0, counts.TotalOperations)
}

func TestTruncateMessage(t *testing.T) {
	short := "all good"
	gt.Equal(t, short, model.TruncateMessage(short))

	long := strings.Repeat("a", 500)
	truncated := model.TruncateMessage(long)
	gt.Equal(t, model.MessagePreviewLimit+3, len(truncated))
	gt.S(t, truncated).Contains("...")
}
