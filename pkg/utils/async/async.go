package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Result is the outcome of an asynchronous call
type Result[T any] struct {
	Value T
	Err   error
}

// Go executes fn asynchronously and delivers exactly one Result on the returned channel.
//
// Parameters:
//   - ctx: Original context (values will be preserved, but cancellation won't affect fn)
//   - fn: Function to execute asynchronously
//
// Behavior:
//   - Creates a new background context with preserved logger
//   - Executes fn in a new goroutine
//   - Recovers from panics, logs them and delivers them as an error
//   - The channel is buffered and closed after the result is sent, so the caller may drop it
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	newCtx := newBackgroundContext(ctx)
	ch := make(chan Result[T], 1)

	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))

				var zero T
				ch <- Result[T]{
					Value: zero,
					Err:   goerr.New("panic in async handler", goerr.V("recover", r)),
				}
			}
		}()

		v, err := fn(newCtx)
		ch <- Result[T]{Value: v, Err: err}
	}()

	return ch
}

// newBackgroundContext creates a new background context preserving important values
//
// Preserved values:
//   - ctxlog logger
//
// Returns: New context.Background() with preserved values
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	return newCtx
}
