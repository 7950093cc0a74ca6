package validator

import (
	"context"

	"github.com/dmitrymomot/valkit/pkg/async"
)

// Check is one sub-result of a deferred predicate.
type Check struct {
	Valid bool
}

// Predicate is a named rule check. It receives the raw params of the rule spec.
type Predicate func(ctx context.Context, value any, params []string) Outcome

// Outcome is what a predicate returns: an immediate verdict or
// a pending list of sub-checks that are reduced with logical AND.
// The zero Outcome is an immediate failure.
type Outcome struct {
	valid  bool
	checks *async.Future[[]Check]
}

// Pass is an immediate success.
func Pass() Outcome { return Outcome{valid: true} }

// Fail is an immediate failure.
func Fail() Outcome { return Outcome{} }

// Bool wraps an immediate verdict.
func Bool(ok bool) Outcome { return Outcome{valid: ok} }

// Defer wraps a future list of sub-checks. A nil future is treated as an immediate failure.
func Defer(checks *async.Future[[]Check]) Outcome {
	if checks == nil {
		return Fail()
	}
	return Outcome{checks: checks}
}

// DeferFunc runs fn in the background and defers on its result.
func DeferFunc(ctx context.Context, fn func(ctx context.Context) ([]Check, error)) Outcome {
	return Defer(async.Async(ctx, fn, func(ctx context.Context, fn func(context.Context) ([]Check, error)) ([]Check, error) {
		return fn(ctx)
	}))
}

// IsDeferred reports whether the outcome is still pending.
func (o Outcome) IsDeferred() bool { return o.checks != nil }

// Valid returns the immediate verdict. It is false for deferred outcomes.
func (o Outcome) Valid() bool { return o.valid }

// allValid reduces sub-checks with AND. An empty list is valid.
func allValid(checks []Check) bool {
	for _, c := range checks {
		if !c.Valid {
			return false
		}
	}
	return true
}

// Result is returned by Validate and ValidateAll.
// It carries either an immediate bool or a pending one that callers must await.
type Result struct {
	valid  bool
	future *async.Future[bool]
}

func immediate(ok bool) Result { return Result{valid: ok} }

func deferred(f *async.Future[bool]) Result { return Result{future: f} }

// IsDeferred reports whether the result must be awaited.
func (r Result) IsDeferred() bool { return r.future != nil }

// Valid returns the verdict without blocking.
// A deferred result reports false until it has resolved successfully.
func (r Result) Valid() bool {
	if r.future == nil {
		return r.valid
	}
	if !r.future.IsComplete() {
		return false
	}
	ok, err := r.future.Await()
	return err == nil && ok
}

// Await blocks until the verdict is known or ctx is done.
func (r Result) Await(ctx context.Context) (bool, error) {
	if r.future == nil {
		return r.valid, nil
	}
	return r.future.AwaitContext(ctx)
}

// Future exposes the pending verdict, or nil for immediate results.
func (r Result) Future() *async.Future[bool] { return r.future }
