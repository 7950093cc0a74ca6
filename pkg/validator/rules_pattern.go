package validator

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

var patternCache sync.Map // string -> *regexp.Regexp

func compilePattern(params []string) (*regexp.Regexp, bool) {
	// Commas inside the pattern were split as params
	pattern := strings.Join(params, ",")
	if pattern == "" {
		return nil, false
	}
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	patternCache.Store(pattern, re)
	return re, true
}

func ruleRegex(_ context.Context, value any, params []string) Outcome {
	s, ok := stringValue(value)
	if !ok {
		return Fail()
	}
	re, ok := compilePattern(params)
	return Bool(ok && re.MatchString(s))
}

func ruleNotRegex(_ context.Context, value any, params []string) Outcome {
	s, ok := stringValue(value)
	if !ok {
		return Fail()
	}
	re, ok := compilePattern(params)
	return Bool(ok && !re.MatchString(s))
}
