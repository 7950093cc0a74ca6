// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// A single factory, New, creates a *slog.Logger configured by Option functions:
//
//   - WithEnvironment – development (text, debug) or staging/production (JSON, info) defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – override output format.
//   - WithLevel – set a custom slog.Level; ParseLevel and ParseFormat read them from config.
//   - WithAttr – attach static attributes.
//   - WithContextExtractors – inject attributes from context.
//
// WithRunID tags a context with the id of one validation run; every logger built by New
// adds it to records logged with that context under the key "run_id".
//
// Output goes to stderr unless WithOutput says otherwise, so command output on stdout stays
// clean. Discard returns a logger that drops everything, the default for library components.
//
// Attribute helpers (Field, Rule, Params, Locale, Valid, Error, ...) keep key naming
// consistent across the validator, the CLI and the metrics observer.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "valkit"),
//	)
//	ctx = logger.WithRunID(ctx, uuid.NewString())
//	log.DebugContext(ctx, "rule evaluated",
//	    logger.Field("email"),
//	    logger.Rule("required"),
//	    logger.Valid(false),
//	)
//
// # Error Handling
//
// Error and Errors produce attributes only for non-nil errors, so
// log.Info("done", logger.Error(err)) needs no nil check. WithFormat panics on an
// unknown format because logger misconfiguration should stop startup.
package logger
