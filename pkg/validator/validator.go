package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/valkit/pkg/async"
	"github.com/dmitrymomot/valkit/pkg/i18n"
	"github.com/dmitrymomot/valkit/pkg/logger"
)

// Validator runs rule chains against values and collects the failures.
// It is safe for concurrent use, although results follow the order of calls.
type Validator struct {
	mu       sync.RWMutex
	chains   map[string][]RuleSpec
	locale   string
	registry *Registry
	errors   *ErrorBag
	logger   *slog.Logger
	observer Observer
	pending  []*async.Future[bool]
}

// New builds a validator for the given field -> expression map.
func New(fields map[string]string, opts ...Option) *Validator {
	v := &Validator{
		chains:   Normalize(fields),
		locale:   i18n.DefaultLanguage,
		errors:   NewErrorBag(),
		logger:   logger.Discard(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = Default()
	}
	v.logger = v.logger.With(logger.Component("validator"))
	return v
}

// SetLocale switches the message locale. Unknown locales fall back to English per rule.
func (v *Validator) SetLocale(code string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.locale = code
}

// Locale returns the active message locale.
func (v *Validator) Locale() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.locale
}

// Attach replaces the chain of field and drops its recorded errors.
func (v *Validator) Attach(field, expression string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.chains, field)
	v.errors.Remove(field)
	v.chains[field] = ParseExpression(expression)
}

// Detach removes the chain of field. Errors already recorded for it are kept.
func (v *Validator) Detach(field string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.chains, field)
}

// Chain returns a copy of the chain attached to field.
func (v *Validator) Chain(field string) []RuleSpec {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.chains[field])
}

// Fields lists the fields with an attached chain, sorted.
func (v *Validator) Fields() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Sorted(maps.Keys(v.chains))
}

// Errors returns the error bag.
func (v *Validator) Errors() *ErrorBag {
	return v.errors
}

// Registry returns the registry the validator resolves rules from.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Extend registers a rule on the validator's registry, so every validator sharing it sees the rule.
func (v *Validator) Extend(name string, ext Extension) error {
	return v.registry.Extend(name, ext)
}

// UpdateDictionary merges messages into the validator's registry.
func (v *Validator) UpdateDictionary(dictionary map[string]map[string]Formatter) {
	v.registry.UpdateDictionary(dictionary)
}

// Validate clears the errors of field and runs its chain left to right against value.
//
// The returned Result is the verdict of the last rule in the chain, not the
// conjunction of all rules; inspect Errors() for the full picture. A field
// without a chain validates as true. Deferred rules are started but not awaited,
// so the Result may be pending. An unregistered rule or a missing message aborts
// the chain with an error.
func (v *Validator) Validate(ctx context.Context, field string, value any) (Result, error) {
	v.mu.RLock()
	chain := v.chains[field]
	locale := v.locale
	v.mu.RUnlock()

	token := v.errors.begin(field)

	result := immediate(true)
	for _, spec := range chain {
		r, err := v.test(ctx, field, value, spec, locale, token)
		if err != nil {
			return Result{}, err
		}
		result = r
	}
	return result, nil
}

// ValidateAll clears every error and validates each entry of values in sorted key order.
// Like Validate, it returns the result of the last field only.
func (v *Validator) ValidateAll(ctx context.Context, values map[string]any) (Result, error) {
	v.errors.Clear()

	result := immediate(true)
	for _, field := range slices.Sorted(maps.Keys(values)) {
		r, err := v.Validate(ctx, field, values[field])
		if err != nil {
			return Result{}, err
		}
		result = r
	}
	return result, nil
}

// test evaluates a single rule and records its message on failure.
func (v *Validator) test(ctx context.Context, field string, value any, spec RuleSpec, locale string, token uint64) (Result, error) {
	pred, ok := v.registry.Predicate(spec.Name)
	if !ok {
		v.logger.WarnContext(ctx, "unknown rule", logger.Field(field), logger.Rule(spec.Name))
		return Result{}, fmt.Errorf("%w: %q (field %q)", ErrUnknownRule, spec.Name, field)
	}

	start := time.Now()
	out := pred(ctx, value, spec.Params)

	if !out.IsDeferred() {
		valid := out.Valid()
		v.observer.ObserveRule(ctx, Evaluation{
			Field:    field,
			Rule:     spec.Name,
			Locale:   locale,
			Valid:    valid,
			Duration: time.Since(start),
		})
		if !valid {
			if err := v.fail(ctx, field, spec, locale, token); err != nil {
				return Result{}, err
			}
		}
		return immediate(valid), nil
	}

	verdict := async.Async(ctx, out.checks, func(ctx context.Context, src *async.Future[[]Check]) (bool, error) {
		checks, err := src.AwaitContext(ctx)
		valid := err == nil && allValid(checks)
		if err == nil && !valid {
			err = v.fail(ctx, field, spec, locale, token)
		}
		v.observer.ObserveRule(ctx, Evaluation{
			Field:    field,
			Rule:     spec.Name,
			Locale:   locale,
			Valid:    valid,
			Deferred: true,
			Duration: time.Since(start),
			Err:      err,
		})
		v.logger.DebugContext(ctx, "deferred rule resolved",
			logger.Field(field),
			logger.Rule(spec.Name),
			logger.Count(len(checks)),
			logger.Valid(valid),
			logger.Error(err))
		if err != nil {
			return false, err
		}
		return valid, nil
	})
	v.track(verdict)
	return deferred(verdict), nil
}

// track remembers an in-flight deferred verdict for Settle.
func (v *Validator) track(f *async.Future[bool]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = slices.DeleteFunc(v.pending, resolved)
	v.pending = append(v.pending, f)
}

// resolved reports a future that completed without error.
func resolved(f *async.Future[bool]) bool {
	if !f.IsComplete() {
		return false
	}
	_, err := f.Await()
	return err == nil
}

// Settle waits for every deferred rule started by this validator, including
// those whose verdict Validate did not return. It returns the resolution
// errors joined, or ctx.Err() if ctx is done first.
func (v *Validator) Settle(ctx context.Context) error {
	var errs []error
	for {
		v.mu.Lock()
		pending := v.pending
		v.pending = nil
		v.mu.Unlock()

		if len(pending) == 0 {
			return errors.Join(errs...)
		}

		for i, f := range pending {
			if _, err := f.AwaitContext(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					v.mu.Lock()
					v.pending = append(pending[i:], v.pending...)
					v.mu.Unlock()
					return ctxErr
				}
				errs = append(errs, err)
			}
		}
	}
}

// fail formats the message of spec and records it under token.
func (v *Validator) fail(ctx context.Context, field string, spec RuleSpec, locale string, token uint64) error {
	msg, err := v.registry.Catalog().Format(locale, field, spec)
	if err != nil {
		v.logger.WarnContext(ctx, "no message for rule",
			logger.Field(field),
			logger.Rule(spec.Name),
			logger.Locale(locale))
		return err
	}
	v.errors.record(token, ValidationError{
		Field:   field,
		Rule:    spec.Name,
		Params:  spec.Params,
		Message: msg,
	})
	return nil
}
