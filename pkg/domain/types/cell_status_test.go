package types_test

import (
	"testing"

	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCellStatusValid(t *testing.T) {
	valid := []types.CellStatus{
		types.CellStatusPending,
		types.CellStatusNoToken,
		types.CellStatusTokenExpired,
		types.CellStatusSuccess,
		types.CellStatusError,
		types.CellStatusNotAttempted,
	}
	for _, s := range valid {
		gt.True(t, s.IsValid())
	}
	gt.False(t, types.CellStatus("done").IsValid())
}

func TestCellStatusTerminal(t *testing.T) {
	gt.False(t, types.CellStatusPending.IsTerminal())
	gt.True(t, types.CellStatusSuccess.IsTerminal())
	gt.True(t, types.CellStatusNotAttempted.IsTerminal())
}
