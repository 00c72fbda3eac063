package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new
// goroutine. The handler gets a fresh background context (the
// triggering request may finish first) that keeps the caller's logger,
// and panics are recovered and logged instead of crashing the process.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
