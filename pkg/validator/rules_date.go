package validator

import (
	"context"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// now is replaced in tests.
var now = time.Now

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "now":
		return now(), true
	case "today":
		y, m, d := now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		return parseDate(v)
	}
	return time.Time{}, false
}

func ruleDate(_ context.Context, value any, _ []string) Outcome {
	_, ok := dateValue(value)
	return Bool(ok)
}

// ruleBefore passes when the value is strictly earlier than the date param.
func ruleBefore(_ context.Context, value any, params []string) Outcome {
	if len(params) == 0 {
		return Fail()
	}
	t, ok := dateValue(value)
	limit, okLimit := parseDate(params[0])
	return Bool(ok && okLimit && t.Before(limit))
}

// ruleAfter passes when the value is strictly later than the date param.
func ruleAfter(_ context.Context, value any, params []string) Outcome {
	if len(params) == 0 {
		return Fail()
	}
	t, ok := dateValue(value)
	limit, okLimit := parseDate(params[0])
	return Bool(ok && okLimit && t.After(limit))
}
