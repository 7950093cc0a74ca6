package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// stringValue returns v as a string when it is string-like.
func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case json.Number:
		return s.String(), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(s); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		return s.String(), true
	}
	return "", false
}

// numberValue returns v as float64 for Go numeric kinds and json.Number.
// Strings are not converted.
func numberValue(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// sizeOf is the numeric value of numbers and the length of strings, slices, arrays and maps.
// Strings are measured in runes.
func sizeOf(v any) (float64, bool) {
	if n, ok := numberValue(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		return float64(len([]rune(s))), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), true
	}
	return 0, false
}

// isEmpty reports nil, blank strings, empty collections and nil pointers.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// floatParam parses params[i] as a number.
func floatParam(params []string, i int) (float64, bool) {
	if i >= len(params) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(params[i]), 64)
	return f, err == nil
}

// stringRule adapts a string check into a Predicate that fails for non-strings.
func stringRule(check func(s string, params []string) bool) Predicate {
	return func(_ context.Context, value any, params []string) Outcome {
		s, ok := stringValue(value)
		if !ok {
			return Fail()
		}
		return Bool(check(s, params))
	}
}
