// Package i18n loads localized message dictionaries and renders their templates.
//
// Dictionaries are plain locale -> key -> message maps. They can come from a single file, a
// directory on disk, an embedded file-system, or any custom storage that implements the
// DictionaryAdapter interface. JSON and YAML formats are supported out of the box and the
// parser is chosen from the file extension when none is given explicitly.
//
// Messages use named placeholders in the form `%{name}`, which Interpolate replaces from a
// parameter map. Nested dictionaries can be flattened into dot-separated keys with Flatten.
// Negotiate picks the best supported locale for an Accept-Language style preference list.
//
// # Usage
//
//	import "github.com/dmitrymomot/valkit/pkg/i18n"
//
//	adapter := i18n.NewDirectoryAdapter(nil, "./locales")
//	dict, err := adapter.Load(ctx)
//	if err != nil {
//	    return err
//	}
//
//	flat, _ := i18n.Flatten(dict["en"])
//	msg := i18n.Interpolate(flat["required"], map[string]string{"field": "email"})
//
// # Error Handling
//
// Loading failures are returned as errors joined with one of the package sentinels
// (ErrFailedToReadFile, ErrFailedToParseFile, ErrNoDictionaryFiles, ...), so callers can use
// errors.Is. A top-level entry that is not a map yields a *StructureError.
package i18n
