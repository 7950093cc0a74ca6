package i18n

import (
	"regexp"
	"sort"
	"strings"
)

// Regex to find named parameters in the form %{name}
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate performs substitution of named placeholders in the form "%{key}"
// using the provided map. Unknown placeholders are kept verbatim.
func Interpolate(tmpl string, params map[string]string) string {
	if !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}

// Placeholders lists the distinct placeholder names used in tmpl, sorted.
func Placeholders(tmpl string) []string {
	seen := make(map[string]struct{})
	for _, m := range paramRegex.FindAllStringSubmatch(tmpl, -1) {
		seen[m[1]] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flatten converts a nested message map into dot-separated keys.
// For example m["auth"]["required"] becomes "auth.required".
// Leaves that are neither strings nor maps are reported through the second return value.
func Flatten(messages map[string]any) (map[string]string, []string) {
	out := make(map[string]string, len(messages))
	var invalid []string
	flatten("", messages, out, &invalid)
	sort.Strings(invalid)
	return out, invalid
}

func flatten(prefix string, m map[string]any, out map[string]string, invalid *[]string) {
	for key, val := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := val.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out, invalid)
		case map[any]any:
			converted := make(map[string]any, len(v))
			for k, inner := range v {
				if ks, ok := k.(string); ok {
					converted[ks] = inner
				}
			}
			flatten(full, converted, out, invalid)
		default:
			*invalid = append(*invalid, full)
		}
	}
}
