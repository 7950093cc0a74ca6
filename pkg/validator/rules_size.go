package validator

import "context"

// Size rules compare numbers by value and strings, slices and maps by length.

func ruleMin(_ context.Context, value any, params []string) Outcome {
	limit, ok := floatParam(params, 0)
	if !ok {
		return Fail()
	}
	size, ok := sizeOf(value)
	return Bool(ok && size >= limit)
}

func ruleMax(_ context.Context, value any, params []string) Outcome {
	limit, ok := floatParam(params, 0)
	if !ok {
		return Fail()
	}
	size, ok := sizeOf(value)
	return Bool(ok && size <= limit)
}

func ruleSize(_ context.Context, value any, params []string) Outcome {
	exact, ok := floatParam(params, 0)
	if !ok {
		return Fail()
	}
	size, ok := sizeOf(value)
	return Bool(ok && size == exact)
}

func ruleBetween(_ context.Context, value any, params []string) Outcome {
	lo, okLo := floatParam(params, 0)
	hi, okHi := floatParam(params, 1)
	if !okLo || !okHi {
		return Fail()
	}
	size, ok := sizeOf(value)
	return Bool(ok && size >= lo && size <= hi)
}
