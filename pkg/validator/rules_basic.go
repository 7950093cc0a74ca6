package validator

import (
	"context"
	"math"
	"reflect"
	"strconv"
	"strings"
)

func ruleRequired(_ context.Context, value any, _ []string) Outcome {
	return Bool(!isEmpty(value))
}

func ruleString(_ context.Context, value any, _ []string) Outcome {
	_, ok := value.(string)
	return Bool(ok)
}

// ruleNumeric accepts Go numbers and strings that parse as a finite float.
func ruleNumeric(_ context.Context, value any, _ []string) Outcome {
	if n, ok := numberValue(value); ok {
		return Bool(!math.IsNaN(n) && !math.IsInf(n, 0))
	}
	s, ok := value.(string)
	if !ok {
		return Fail()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return Bool(err == nil && !math.IsNaN(f) && !math.IsInf(f, 0))
}

// ruleInteger accepts integer kinds, floats without a fraction and integer strings.
func ruleInteger(_ context.Context, value any, _ []string) Outcome {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Pass()
	}
	if n, ok := numberValue(value); ok {
		return Bool(n == math.Trunc(n) && !math.IsInf(n, 0))
	}
	s, ok := value.(string)
	if !ok {
		return Fail()
	}
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return Bool(err == nil)
}

// ruleBoolean accepts bools, 0/1 and their string forms.
func ruleBoolean(_ context.Context, value any, _ []string) Outcome {
	switch v := value.(type) {
	case bool:
		return Pass()
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false", "1", "0":
			return Pass()
		}
		return Fail()
	}
	if n, ok := numberValue(value); ok {
		return Bool(n == 0 || n == 1)
	}
	return Fail()
}
