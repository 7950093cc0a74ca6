package validator

import "log/slog"

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry makes the validator use r instead of Default().
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithLocale sets the initial message locale.
func WithLocale(code string) Option {
	return func(v *Validator) {
		v.locale = code
	}
}

// WithLogger sets the logger. Validators log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithObserver installs a hook called after every rule evaluation.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}
