package async_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/dvc-ops/provgate/pkg/utils/async"
	"github.com/m-mizutani/gt"
)

func TestParallelRunsAllTasks(t *testing.T) {
	var count int32
	tasks := make([]func(ctx context.Context), 20)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) {
			atomic.AddInt32(&count, 1)
		}
	}

	async.Parallel(context.Background(), 4, tasks)
	gt.Equal(t, int32(20), atomic.LoadInt32(&count))
}

func TestParallelBoundsConcurrency(t *testing.T) {
	var current, peak int32
	tasks := make([]func(ctx context.Context), 16)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			atomic.AddInt32(&current, -1)
		}
	}

	async.Parallel(context.Background(), 3, tasks)
	gt.True(t, atomic.LoadInt32(&peak) <= 3)
}

func TestParallelRecoversPanic(t *testing.T) {
	var count int32
	tasks := []func(ctx context.Context){
		func(ctx context.Context) { panic("boom") },
		func(ctx context.Context) { atomic.AddInt32(&count, 1) },
	}

	async.Parallel(context.Background(), 2, tasks)
	gt.Equal(t, int32(1), atomic.LoadInt32(&count))
}
