// Package validator is a declarative, per-field validation engine.
//
// Fields are described with rule chains written as expressions such as
// "required|between:3,20|alpha_dash". A Validator runs each field's chain
// against a value, records a localized message in its ErrorBag for every
// failing rule and reports a verdict. Rules may answer immediately or return
// a deferred list of sub-checks, which lets predicates query remote state
// without blocking the chain.
//
// # Architecture
//
// The engine is built from a few small parts:
//   - ParseExpression / Normalize turn expressions into []RuleSpec chains.
//     Only the first ':' separates a rule name from its comma-separated params.
//   - Registry maps rule names to Predicate functions and owns a Catalog of
//     locale -> rule -> Formatter. NewRegistry seeds the built-in rules and the
//     English messages embedded from locales/en.yaml. Default() is the shared
//     process-wide registry.
//   - ErrorBag stores ValidationError entries per field in insertion order.
//   - Validator owns the field -> chain map, the active locale and an ErrorBag.
//
// Message lookup uses the active locale first and falls back to "en" per rule.
//
// # Usage
//
//	v := validator.New(map[string]string{
//	    "email": "required|email",
//	    "age":   "integer|between:18,120",
//	}, validator.WithLocale("de"))
//
//	res, err := v.ValidateAll(ctx, map[string]any{"email": email, "age": age})
//	if err != nil {
//	    // configuration defect: unknown rule or missing message
//	}
//	if _, err := res.Await(ctx); err != nil {
//	    // a deferred rule failed to resolve
//	}
//	if errs := v.Errors().Err(); errs != nil {
//	    // field-level messages
//	}
//
// The verdict returned by Validate is the one of the last rule in the chain,
// and ValidateAll returns the verdict of the last field in sorted key order.
// Neither is a conjunction; the ErrorBag is the complete record.
//
// # Extending
//
// New rules are registered with Extend, either as a bare Predicate (which gets
// the English message "The <field> value is not valid.") or as a Bundle with
// its own messages:
//
//	err := validator.Extend("even", validator.Bundle{
//	    Validate: func(_ context.Context, v any, _ []string) validator.Outcome {
//	        n, ok := v.(int)
//	        return validator.Bool(ok && n%2 == 0)
//	    },
//	    Message: validator.TemplateFormatter("The %{field} must be even."),
//	    Messages: map[string]validator.Formatter{
//	        "de": validator.TemplateFormatter("%{field} muss gerade sein."),
//	    },
//	})
//
// Dictionaries can be merged with UpdateDictionary or loaded from YAML/JSON
// files through Registry.LoadDictionary and any i18n.DictionaryAdapter.
// Templates support %{field}, %{params} and positional %{0}, %{1}, ...
//
// # Deferred rules
//
// A Predicate may return Defer(future) or DeferFunc(ctx, fn). The sub-checks
// are reduced with logical AND (an empty list passes) and one message is
// recorded when the result is false. Validate does not wait for them: when the
// last rule of a chain is deferred the Result is pending and must be awaited
// with Result.Await. Settle waits for every deferred rule a validator has
// started, including those hidden behind a later synchronous rule. A deferred
// result that arrives after its field was validated again or cleared is discarded.
//
// # Error Handling
//
// Extension contract violations are returned from Extend as *ExtensionError
// wrapping ErrRuleExists, ErrInvalidExtension, ErrMissingPredicate or
// ErrMissingMessage. Configuration defects found while validating are
// returned as errors wrapping ErrUnknownRule or ErrNoFormatter and are never
// stored in the ErrorBag. Failed values are data, not errors: they only show
// up in the ErrorBag and in the verdict.
package validator
