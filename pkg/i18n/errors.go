package i18n

import (
	"errors"
	"fmt"
)

// Package errors use descriptive messages for debugging while avoiding implementation details.
// Context cancellation errors are separated to allow proper error handling in timeouts.
var (
	// Parsing
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrInvalidStructure     = errors.New("invalid dictionary structure")

	// File operations
	ErrLoadingFileCancelled = errors.New("loading dictionary file cancelled")
	ErrFailedToReadFile     = errors.New("failed to read dictionary file")
	ErrFailedToParseFile    = errors.New("failed to parse dictionary file")
	ErrEmptyFile            = errors.New("dictionary file is empty")

	// Directory operations
	ErrFailedToReadDirectory     = errors.New("failed to read directory")
	ErrLoadingDirectoryCancelled = errors.New("loading from directory cancelled")
	ErrNoDictionaryFiles         = errors.New("no valid dictionary files found")

	// ErrNilAdapter is returned by Load on an adapter the constructor refused to build.
	ErrNilAdapter = errors.New("dictionary adapter is not configured")
)

// StructureError reports a top-level dictionary entry that is not a map of messages.
type StructureError struct {
	Locale string
	Got    any
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid dictionary structure for locale %q: expected map, got %T", e.Locale, e.Got)
}

func (e *StructureError) Unwrap() error {
	return ErrInvalidStructure
}
