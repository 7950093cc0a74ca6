// Package metrics exposes validator rule evaluations as Prometheus metrics.
//
// A Collector implements validator.Observer and records:
//
//   - valkit_rule_evaluations_total{rule, result, deferred}, where result is
//     "pass", "fail" or "error" (a deferred rule that could not resolve).
//   - valkit_rule_duration_seconds{rule, deferred}, measured from predicate
//     call to resolution.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	v := validator.New(fields, validator.WithObserver(metrics.New(reg)))
//
//	// later, e.g. in a CLI
//	_ = metrics.WriteText(os.Stderr, reg)
package metrics
