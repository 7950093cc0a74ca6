package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser turns the raw content of a dictionary file into a locale -> key -> value map.
type Parser interface {
	// Parse processes the given content and returns a nested map structure.
	// The outer map is keyed by locale, the inner map holds message keys and their values.
	// Values are strings or nested maps of the same shape.
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension checks if the parser supports a given file extension.
	// The extension may or may not include a leading dot (both "json" and ".json" are valid).
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil when none fits.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// splitLocales converts a decoded document into the per-locale shape shared by all parsers.
func splitLocales(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for locale, val := range data {
		messages, ok := val.(map[string]any)
		if !ok {
			return nil, &StructureError{Locale: locale, Got: val}
		}
		result[locale] = messages
	}
	return result, nil
}
