package tasks

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Result carries the outcome of a submitted task.
type Result[T any] struct {
	Value T
	Err   error
}

// Runner executes blocking work off the caller's goroutine, with at most a
// fixed number of tasks running at once.
type Runner struct {
	sem *semaphore.Weighted
	log *zap.Logger
}

func NewRunner(workers int64, log *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		sem: semaphore.NewWeighted(workers),
		log: log,
	}
}

// Submit starts fn and returns a channel that receives exactly one result.
// The task waits for a free worker; if ctx ends first the result is ctx.Err().
func Submit[T any](ctx context.Context, r *Runner, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			out <- Result[T]{Err: err}
			return
		}
		defer r.sem.Release(1)

		value, err := call(ctx, r.log, fn)
		out <- Result[T]{Value: value, Err: err}
	}()

	return out
}

// Await blocks until the task result arrives or ctx is done.
func Await[T any](ctx context.Context, results <-chan Result[T]) (T, error) {
	select {
	case res := <-results:
		return res.Value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Run submits fn and waits for its result.
func Run[T any](ctx context.Context, r *Runner, fn func(context.Context) (T, error)) (T, error) {
	return Await(ctx, Submit(ctx, r, fn))
}

func call[T any](ctx context.Context, log *zap.Logger, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("task panicked", zap.Any("panic", p), zap.Stack("stack"))
			var zero T
			value, err = zero, fmt.Errorf("task panicked: %v", p)
		}
	}()
	return fn(ctx)
}
