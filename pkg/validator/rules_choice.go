package validator

import (
	"context"
	"fmt"
	"slices"
)

// ruleIn passes when the value, rendered as text, equals one of the params.
func ruleIn(_ context.Context, value any, params []string) Outcome {
	if value == nil {
		return Fail()
	}
	return Bool(slices.Contains(params, fmt.Sprint(value)))
}

func ruleNotIn(_ context.Context, value any, params []string) Outcome {
	if value == nil {
		return Pass()
	}
	return Bool(!slices.Contains(params, fmt.Sprint(value)))
}
