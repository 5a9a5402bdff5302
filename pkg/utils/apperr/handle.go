package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an application-level error with its goerr context values
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if goErr := goerr.Unwrap(err); goErr != nil {
		logger.Error("application error", "error", goErr)
		return
	}
	logger.Error("application error", "error", err)
}
