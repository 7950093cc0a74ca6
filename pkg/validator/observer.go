package validator

import (
	"context"
	"time"
)

// Evaluation describes one rule run against one value.
type Evaluation struct {
	Field    string
	Rule     string
	Locale   string
	Valid    bool
	Deferred bool
	Duration time.Duration
	// Err is set when a deferred check failed to resolve or its message could not be formatted.
	Err error
}

// Observer is notified after every rule evaluation.
// Deferred rules are reported when they resolve, from another goroutine.
type Observer interface {
	ObserveRule(ctx context.Context, ev Evaluation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Evaluation)

func (f ObserverFunc) ObserveRule(ctx context.Context, ev Evaluation) {
	f(ctx, ev)
}

type nopObserver struct{}

func (nopObserver) ObserveRule(context.Context, Evaluation) {}
