package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Parallel runs tasks with bounded concurrency and waits for all of them.
// Each task owns its own result slot, so no values cross goroutines here.
// A panicking task is recovered and logged; it never takes down the batch.
func Parallel(ctx context.Context, limit int, tasks []func(ctx context.Context)) {
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(run func(ctx context.Context)) {
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("panic in parallel task",
						"recover", r,
						"stack", string(debug.Stack()),
					)
				}
				<-sem
				wg.Done()
			}()
			run(ctx)
		}(task)
	}
	wg.Wait()
}
