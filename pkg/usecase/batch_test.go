package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/dvc-ops/provgate/pkg/domain/types"
	"github.com/dvc-ops/provgate/pkg/repository"
	"github.com/dvc-ops/provgate/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func testRegistry(ids ...types.ProviderID) *model.Registry {
	reg := &model.Registry{}
	for _, id := range ids {
		reg.Providers = append(reg.Providers, model.Provider{
			ID:      id,
			Name:    fmt.Sprintf("Ministry %d", id),
			BaseURL: fmt.Sprintf("https://provider-%d.example.gov.vn", id),
			SSOURL:  fmt.Sprintf("https://sso-%d.example.gov.vn", id),
			DefaultPosition: model.Position{
				PositionID:   "CV",
				PositionName: "Chuyên viên",
			},
		})
	}
	if err := reg.Validate(); err != nil {
		panic(err)
	}
	return reg
}

func testRecords(n int) []model.ImportRecord {
	records := make([]model.ImportRecord, n)
	for i := range records {
		records[i] = model.ImportRecord{
			Index:            i,
			FullName:         fmt.Sprintf("User %d", i),
			Phone:            "0912345678",
			Email:            fmt.Sprintf("user%d@example.gov.vn", i),
			Username:         fmt.Sprintf("user%d", i),
			Password:         "Pass@123",
			OrgParentKeyword: "Sở Y tế",
			JobTitle:         "Chuyên viên",
		}
	}
	return records
}

// fakeAPI is an in-memory ProviderAPI for orchestrator tests
type fakeAPI struct {
	createErr error
	attachErr error
	calls     *int32
	delay     time.Duration
}

func (f *fakeAPI) ResolveOrgUnit(ctx context.Context, keyword, token string) (*model.OrgUnitRef, error) {
	return &model.OrgUnitRef{ID: "ou-1", Name: keyword}, nil
}

func (f *fakeAPI) CreateAccount(ctx context.Context, record *model.ImportRecord, token string) (*interfaces.CreateResult, error) {
	if f.calls != nil {
		atomic.AddInt32(f.calls, 1)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &interfaces.CreateResult{
		UserID:  "created-" + record.Username,
		Message: fmt.Sprintf("account %s created", record.Username),
	}, nil
}

func (f *fakeAPI) AttachExperience(ctx context.Context, userID string, record *model.ImportRecord, token string) error {
	return f.attachErr
}

func fixedFactory(api interfaces.ProviderAPI) interfaces.ProviderAPIFactory {
	return func(p *model.Provider) interfaces.ProviderAPI {
		return api
	}
}

func storeWithTokens(t *testing.T, userID types.UserID, ids ...types.ProviderID) *repository.MemoryTokenStore {
	t.Helper()
	store := repository.NewMemoryTokenStore()
	for _, id := range ids {
		rec := model.NewTokenRecord(id, fmt.Sprintf("token-%d", id), "", time.Now(), time.Hour)
		gt.NoError(t, store.Put(context.Background(), userID, rec))
	}
	return store
}

func TestBatchOrderingIsRecordMajor(t *testing.T) {
	registry := testRegistry(1, 2)
	store := storeWithTokens(t, "alice", 1, 2)
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{}))

	report := batch.Run(context.Background(), "alice", testRecords(2), []types.ProviderID{1, 2})

	gt.Equal(t, 4, len(report.Results))
	expected := [][2]int{{0, 1}, {0, 2}, {1, 1}, {1, 2}}
	for i, want := range expected {
		gt.Equal(t, want[0], report.Results[i].RecordIndex)
		gt.Equal(t, types.ProviderID(want[1]), report.Results[i].ProviderID)
	}
}

func TestBatchOrderingWithWorkers(t *testing.T) {
	registry := testRegistry(1, 2, 3, 4)
	store := storeWithTokens(t, "alice", 1, 2, 3, 4)
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{delay: 5 * time.Millisecond}),
		usecase.WithWorkers(4))

	providers := []types.ProviderID{4, 2, 3, 1}
	report := batch.Run(context.Background(), "alice", testRecords(3), providers)

	// Selection order is preserved per record even with parallel execution
	gt.Equal(t, 12, len(report.Results))
	for ri := 0; ri < 3; ri++ {
		for pi, providerID := range providers {
			cell := report.Results[ri*len(providers)+pi]
			gt.Equal(t, ri, cell.RecordIndex)
			gt.Equal(t, providerID, cell.ProviderID)
			gt.Equal(t, types.CellStatusSuccess, cell.Status)
		}
	}
}

func TestBatchTokenStates(t *testing.T) {
	// alice has a valid token for provider 3 and an expired token for
	// provider 1; provider 1 must short-circuit before any network call.
	registry := testRegistry(1, 3)
	store := repository.NewMemoryTokenStore()
	now := time.Now()
	gt.NoError(t, store.Put(context.Background(), "alice",
		model.NewTokenRecord(1, "stale", "", now.Add(-2*time.Hour), time.Hour)))
	gt.NoError(t, store.Put(context.Background(), "alice",
		model.NewTokenRecord(3, "fresh", "", now, time.Hour)))

	var calls int32
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{calls: &calls}))
	report := batch.Run(context.Background(), "alice", testRecords(1), []types.ProviderID{1, 3})

	gt.Equal(t, 2, len(report.Results))
	gt.Equal(t, types.CellStatusTokenExpired, report.Results[0].Status)
	gt.Equal(t, types.CellStatusSuccess, report.Results[1].Status)

	// Only provider 3 reached the account API
	gt.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBatchNoToken(t *testing.T) {
	registry := testRegistry(1)
	store := repository.NewMemoryTokenStore()
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{}))

	report := batch.Run(context.Background(), "alice", testRecords(1), []types.ProviderID{1})
	gt.Equal(t, types.CellStatusNoToken, report.Results[0].Status)
}

func TestBatchProviderUnconfigured(t *testing.T) {
	registry := testRegistry(1)
	store := storeWithTokens(t, "alice", 1)
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{}))

	report := batch.Run(context.Background(), "alice", testRecords(1), []types.ProviderID{1, 99})
	gt.Equal(t, types.CellStatusSuccess, report.Results[0].Status)
	gt.Equal(t, types.CellStatusError, report.Results[1].Status)
	gt.S(t, report.Results[1].Message).Contains("not configured")
}

func TestBatchCellIsolation(t *testing.T) {
	// One provider failing across all records never aborts the other cells
	registry := testRegistry(1, 2)
	store := storeWithTokens(t, "alice", 1, 2)

	failing := &fakeAPI{createErr: goerr.New("account creation rejected",
		goerr.V("status", 409))}
	factory := func(p *model.Provider) interfaces.ProviderAPI {
		if p.ID == 1 {
			return failing
		}
		return &fakeAPI{}
	}

	batch := usecase.NewBatch(registry, store, factory)
	report := batch.Run(context.Background(), "alice", testRecords(2), []types.ProviderID{1, 2})

	gt.Equal(t, 4, len(report.Results))
	gt.Equal(t, types.CellStatusError, report.Results[0].Status)
	gt.Equal(t, types.CellStatusSuccess, report.Results[1].Status)
	gt.Equal(t, types.CellStatusError, report.Results[2].Status)
	gt.Equal(t, types.CellStatusSuccess, report.Results[3].Status)

	counts := report.Counts()
	gt.Equal(t, 2, counts.TotalRecords)
	gt.Equal(t, 4, counts.TotalOperations)
	gt.Equal(t, 2, counts.SuccessCount)
	gt.Equal(t, 2, counts.ErrorCount)
}

func TestBatchAttachFailureStaysSuccess(t *testing.T) {
	registry := testRegistry(1)
	store := storeWithTokens(t, "alice", 1)

	api := &fakeAPI{attachErr: goerr.Wrap(model.ErrMissingOrgAnchor, "experience not attached")}
	batch := usecase.NewBatch(registry, store, fixedFactory(api))

	report := batch.Run(context.Background(), "alice", testRecords(1), []types.ProviderID{1})
	cell := report.Results[0]
	gt.Equal(t, types.CellStatusSuccess, cell.Status)
	gt.Equal(t, "created-user0", cell.CreatedUserID)
	gt.S(t, cell.Message).Contains("experience not attached")
}

func TestBatchSkipsAttachWithoutOrgParent(t *testing.T) {
	registry := testRegistry(1)
	store := storeWithTokens(t, "alice", 1)

	api := &fakeAPI{attachErr: goerr.New("must not be called")}
	batch := usecase.NewBatch(registry, store, fixedFactory(api))

	records := testRecords(1)
	records[0].OrgParentKeyword = ""

	report := batch.Run(context.Background(), "alice", records, []types.ProviderID{1})
	cell := report.Results[0]
	gt.Equal(t, types.CellStatusSuccess, cell.Status)
	gt.False(t, strings.Contains(cell.Message, "must not be called"))
}

func TestBatchCancelledContextMarksNotAttempted(t *testing.T) {
	registry := testRegistry(1, 2)
	store := storeWithTokens(t, "alice", 1, 2)
	batch := usecase.NewBatch(registry, store, fixedFactory(&fakeAPI{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := batch.Run(ctx, "alice", testRecords(2), []types.ProviderID{1, 2})
	gt.Equal(t, 4, len(report.Results))
	for _, cell := range report.Results {
		gt.Equal(t, types.CellStatusNotAttempted, cell.Status)
	}

	counts := report.Counts()
	gt.Equal(t, 0, counts.SuccessCount)
	gt.Equal(t, 0, counts.ErrorCount)
}

func TestBatchMessageTruncated(t *testing.T) {
	registry := testRegistry(1)
	store := storeWithTokens(t, "alice", 1)

	long := strings.Repeat("v", 1000)
	api := &fakeAPI{createErr: goerr.New(long)}
	batch := usecase.NewBatch(registry, store, fixedFactory(api))

	report := batch.Run(context.Background(), "alice", testRecords(1), []types.ProviderID{1})
	gt.True(t, len(report.Results[0].Message) <= model.MessagePreviewLimit+3)
}
