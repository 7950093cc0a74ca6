package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// complete stores the outcome and releases waiters. Only the first call wins.
func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes first.
// The future itself keeps running when ctx is cancelled.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// Returns the result and error if the function completes before the timeout.
// If the timeout occurs before completion, returns a timeout error.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the future has completed.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		// Early exit prevents running work for a context that is already gone
		if err := ctx.Err(); err != nil {
			var zero U
			f.complete(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// Resolved returns a future that is already complete with the given value.
func Resolved[U any](value U) *Future[U] {
	f := newFuture[U]()
	f.complete(value, nil)
	return f
}

// Rejected returns a future that is already complete with the given error.
func Rejected[U any](err error) *Future[U] {
	f := newFuture[U]()
	var zero U
	f.complete(zero, err)
	return f
}

// Promise creates a future completed by the returned resolve function.
// Calls after the first are ignored.
func Promise[U any]() (*Future[U], func(U, error)) {
	f := newFuture[U]()
	return f, f.complete
}

// Then chains fn onto src: once src completes successfully, fn runs with its value
// and the returned future completes with fn's result. Errors from src skip fn.
func Then[T any, U any](ctx context.Context, src *Future[T], fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		val, err := src.Await()
		if err != nil {
			var zero U
			f.complete(zero, err)
			return
		}
		f.complete(fn(ctx, val))
	}()

	return f
}

// WaitAll waits for all futures to complete and returns a slice of their results and an error
// if any of the futures returned an error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
