package validator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/valkit/pkg/async"
	"github.com/dmitrymomot/valkit/pkg/validator"
)

// promiseRule registers a rule whose checks are resolved by the test.
func promiseRule(t *testing.T, r *validator.Registry, name string) <-chan func([]validator.Check, error) {
	t.Helper()
	resolvers := make(chan func([]validator.Check, error), 8)
	require.NoError(t, r.Extend(name, validator.Predicate(func(context.Context, any, []string) validator.Outcome {
		f, resolve := async.Promise[[]validator.Check]()
		resolvers <- resolve
		return validator.Defer(f)
	})))
	return resolvers
}

func checksRule(checks ...validator.Check) validator.Predicate {
	return func(context.Context, any, []string) validator.Outcome {
		return validator.Defer(async.Resolved(checks))
	}
}

func TestValidator_Deferred(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("conjunction of sub-checks", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("mixed", checksRule(validator.Check{Valid: true}, validator.Check{Valid: false})))
		v := validator.New(map[string]string{"x": "mixed"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		require.True(t, res.IsDeferred())

		ok, err := res.Await(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"The x value is not valid."}, v.Errors().Get("x"))
		assert.False(t, res.Valid())
	})

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("fine", checksRule(validator.Check{Valid: true}, validator.Check{Valid: true})))
		v := validator.New(map[string]string{"x": "fine"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		ok, err := res.Await(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, res.Valid())
		assert.False(t, v.Errors().Has("x"))
	})

	t.Run("empty list passes", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("none", checksRule()))
		v := validator.New(map[string]string{"x": "none"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		ok, err := res.Await(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("synchronous rule after deferred one wins the result", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("bad", checksRule(validator.Check{Valid: false})))
		v := validator.New(map[string]string{"x": "bad|required"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		assert.False(t, res.IsDeferred())
		assert.True(t, res.Valid())

		assert.Eventually(t, func() bool { return v.Errors().Has("x") }, time.Second, time.Millisecond)
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		resolvers := promiseRule(t, r, "slow")
		v := validator.New(map[string]string{"x": "slow"}, validator.WithRegistry(r))

		first, err := v.Validate(ctx, "x", "old")
		require.NoError(t, err)
		resolveFirst := <-resolvers

		second, err := v.Validate(ctx, "x", "new")
		require.NoError(t, err)
		resolveSecond := <-resolvers

		resolveSecond([]validator.Check{{Valid: true}}, nil)
		ok, err := second.Await(ctx)
		require.NoError(t, err)
		assert.True(t, ok)

		resolveFirst([]validator.Check{{Valid: false}}, nil)
		ok, err = first.Await(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.False(t, v.Errors().Has("x"), "the first pass no longer owns the field")
	})

	t.Run("clear discards pending writes", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		resolvers := promiseRule(t, r, "slow")
		v := validator.New(map[string]string{"x": "slow"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		resolve := <-resolvers

		v.Errors().Clear()
		resolve([]validator.Check{{Valid: false}}, nil)
		_, err = res.Await(ctx)
		require.NoError(t, err)
		assert.False(t, v.Errors().Has("x"))
	})

	t.Run("rejected checks surface from await", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("backend down")
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("broken", validator.Predicate(func(context.Context, any, []string) validator.Outcome {
			return validator.Defer(async.Rejected[[]validator.Check](boom))
		})))

		var mu sync.Mutex
		var observed []validator.Evaluation
		v := validator.New(map[string]string{"x": "broken"}, validator.WithRegistry(r),
			validator.WithObserver(validator.ObserverFunc(func(_ context.Context, ev validator.Evaluation) {
				mu.Lock()
				defer mu.Unlock()
				observed = append(observed, ev)
			})))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		_, err = res.Await(ctx)
		assert.ErrorIs(t, err, boom)
		assert.False(t, res.Valid())
		assert.False(t, v.Errors().Has("x"))

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, observed, 1)
		assert.True(t, observed[0].Deferred)
		assert.ErrorIs(t, observed[0].Err, boom)
	})

	t.Run("missing formatter surfaces from await", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("nomsg", validator.Bundle{
			Validate: checksRule(validator.Check{Valid: false}),
			Messages: map[string]validator.Formatter{},
		}))
		v := validator.New(map[string]string{"x": "nomsg"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		_, err = res.Await(ctx)
		assert.ErrorIs(t, err, validator.ErrNoFormatter)
	})

	t.Run("defer func", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("remote", validator.Predicate(func(ctx context.Context, value any, _ []string) validator.Outcome {
			return validator.DeferFunc(ctx, func(context.Context) ([]validator.Check, error) {
				return []validator.Check{{Valid: value == "taken"}}, nil
			})
		})))
		v := validator.New(map[string]string{"x": "remote"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "free")
		require.NoError(t, err)
		ok, err := res.Await(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"The x value is not valid."}, v.Errors().Get("x"))
	})

	t.Run("await honours context", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		_ = promiseRule(t, r, "never")
		v := validator.New(map[string]string{"x": "never"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		_, err = res.Await(waitCtx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, res.Valid())
	})

	t.Run("validate all returns pending last field", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("bad", checksRule(validator.Check{Valid: false})))
		v := validator.New(map[string]string{"a": "required", "z": "bad"}, validator.WithRegistry(r))

		res, err := v.ValidateAll(ctx, map[string]any{"a": "", "z": "v"})
		require.NoError(t, err)
		require.True(t, res.IsDeferred())
		ok, err := res.Await(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"a", "z"}, v.Errors().Fields())
	})
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Pass().Valid())
	assert.False(t, validator.Fail().Valid())
	assert.True(t, validator.Bool(true).Valid())
	assert.False(t, validator.Outcome{}.Valid())
	assert.False(t, validator.Pass().IsDeferred())
	assert.True(t, validator.Defer(async.Resolved([]validator.Check{})).IsDeferred())
	assert.False(t, validator.Defer(nil).IsDeferred())
}

func TestValidator_Settle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("waits for deferred rules that are not last", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		resolvers := promiseRule(t, r, "slow")
		v := validator.New(map[string]string{"x": "slow|required"}, validator.WithRegistry(r))

		res, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)
		assert.False(t, res.IsDeferred())

		resolve := <-resolvers
		go resolve([]validator.Check{{Valid: false}}, nil)

		require.NoError(t, v.Settle(ctx))
		assert.Equal(t, []string{"The x value is not valid."}, v.Errors().Get("x"))
	})

	t.Run("nothing pending", func(t *testing.T) {
		t.Parallel()
		v := validator.New(map[string]string{"x": "required"}, validator.WithRegistry(validator.NewRegistry()))
		assert.NoError(t, v.Settle(ctx))
	})

	t.Run("joins resolution errors", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		r := validator.NewRegistry()
		require.NoError(t, r.Extend("broken", validator.Predicate(func(context.Context, any, []string) validator.Outcome {
			return validator.Defer(async.Rejected[[]validator.Check](boom))
		})))
		v := validator.New(map[string]string{"a": "broken", "b": "broken"}, validator.WithRegistry(r))

		_, err := v.ValidateAll(ctx, map[string]any{"a": 1, "b": 2})
		require.NoError(t, err)
		assert.ErrorIs(t, v.Settle(ctx), boom)
	})

	t.Run("context done", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		_ = promiseRule(t, r, "never")
		v := validator.New(map[string]string{"x": "never"}, validator.WithRegistry(r))

		_, err := v.Validate(ctx, "x", "v")
		require.NoError(t, err)

		waitCtx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, v.Settle(waitCtx), context.Canceled)
	})
}
