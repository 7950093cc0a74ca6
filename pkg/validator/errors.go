package validator

import (
	"errors"
	"fmt"
)

// Configuration defects discovered while validating. These never end up in the ErrorBag.
var (
	// ErrUnknownRule is returned when a chain references a rule that is not registered.
	ErrUnknownRule = errors.New("validator: unknown rule")

	// ErrNoFormatter is returned when neither the active locale nor English has a message for a rule.
	ErrNoFormatter = errors.New("validator: no message formatter")

	// ErrInvalidTemplate is returned when a dictionary template uses an unsupported placeholder.
	ErrInvalidTemplate = errors.New("validator: invalid message template")
)

// Extension contract violations, always wrapped in *ExtensionError.
var (
	// ErrRuleExists is returned when extending with a name that is already registered.
	ErrRuleExists = errors.New("rule already registered")

	// ErrInvalidExtension is returned for a nil extension or an empty rule name.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrMissingPredicate is returned when an extension has no validate function.
	ErrMissingPredicate = errors.New("extension has no validate function")

	// ErrMissingMessage is returned when a bundle provides neither a message nor a messages map.
	ErrMissingMessage = errors.New("extension has no message")
)

// ExtensionError reports a rejected Extend call.
type ExtensionError struct {
	Rule string
	Err  error
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("validator: extend %q: %v", e.Rule, e.Err)
}

func (e *ExtensionError) Unwrap() error {
	return e.Err
}

// IsExtensionError reports whether err is an extension contract violation.
func IsExtensionError(err error) bool {
	var extErr *ExtensionError
	return errors.As(err, &extErr)
}
