package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine. The handler gets a background
// context carrying the logger of ctx, so cancelling ctx does not stop it.
// Panics and returned errors are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go run(newCtx, handler)
}

// Group dispatches handlers like Dispatch and lets the caller wait for all of
// them. The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// Dispatch runs handler asynchronously as part of the group
func (g *Group) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		run(newCtx, handler)
	}()
}

// Wait blocks until every dispatched handler has returned
func (g *Group) Wait() {
	g.wg.Wait()
}

func run(ctx context.Context, handler func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(ctx).Error("panic in async handler",
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := handler(ctx); err != nil {
		ctxlog.From(ctx).Error("error in async handler", "error", err)
	}
}

func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
