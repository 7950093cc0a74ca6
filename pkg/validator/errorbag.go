package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ValidationError is a single recorded failure.
type ValidationError struct {
	Field   string
	Rule    string
	Params  []string
	Message string
}

// ValidationErrors is a collection of failures that satisfies the error interface.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any failure was recorded for field.
func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names in order of appearance.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// ErrorBag collects failures per field, in insertion order.
//
// Every Remove or Clear hands the affected fields a new token. Deferred checks
// write with the token they started with, so a result that arrives after its
// field was re-validated or cleared is dropped.
type ErrorBag struct {
	mu      sync.Mutex
	entries map[string][]ValidationError
	tokens  map[string]uint64
	seq     uint64
}

// NewErrorBag returns an empty bag.
func NewErrorBag() *ErrorBag {
	return &ErrorBag{
		entries: make(map[string][]ValidationError),
		tokens:  make(map[string]uint64),
	}
}

// Add appends a message for field.
func (b *ErrorBag) Add(field, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[field] = append(b.entries[field], ValidationError{Field: field, Message: message})
}

// Remove deletes every entry of field.
func (b *ErrorBag) Remove(field string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(field)
}

func (b *ErrorBag) remove(field string) uint64 {
	delete(b.entries, field)
	b.seq++
	b.tokens[field] = b.seq
	return b.seq
}

// Clear deletes every entry of every field.
func (b *ErrorBag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.entries)
	b.seq++
	for field := range b.tokens {
		b.tokens[field] = b.seq
	}
}

// begin clears field and returns the token its writes must carry.
func (b *ErrorBag) begin(field string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remove(field)
}

// record appends entry unless field was cleared since token was issued.
func (b *ErrorBag) record(token uint64, entry ValidationError) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens[entry.Field] != token {
		return false
	}
	b.entries[entry.Field] = append(b.entries[entry.Field], entry)
	return true
}

// Get returns the messages of field.
func (b *ErrorBag) Get(field string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.entries[field]
	if len(entries) == 0 {
		return nil
	}
	messages := make([]string, len(entries))
	for i, e := range entries {
		messages[i] = e.Message
	}
	return messages
}

// First returns the first message of field, or "".
func (b *ErrorBag) First(field string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if entries := b.entries[field]; len(entries) > 0 {
		return entries[0].Message
	}
	return ""
}

// Entries returns a copy of the entries of field.
func (b *ErrorBag) Entries(field string) []ValidationError {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.entries[field])
}

// Has reports whether field has entries.
func (b *ErrorBag) Has(field string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries[field]) > 0
}

// Fields lists the fields that have entries, sorted.
func (b *ErrorBag) Fields() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fields()
}

func (b *ErrorBag) fields() []string {
	fields := make([]string, 0, len(b.entries))
	for field, entries := range b.entries {
		if len(entries) > 0 {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

// Len returns the total number of entries.
func (b *ErrorBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, entries := range b.entries {
		n += len(entries)
	}
	return n
}

// All returns a snapshot of field -> messages.
func (b *ErrorBag) All() map[string][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]string, len(b.entries))
	for field, entries := range b.entries {
		if len(entries) == 0 {
			continue
		}
		messages := make([]string, len(entries))
		for i, e := range entries {
			messages[i] = e.Message
		}
		out[field] = messages
	}
	return out
}

// Err returns the entries as ValidationErrors ordered by field, or nil when empty.
func (b *ErrorBag) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs ValidationErrors
	for _, field := range b.fields() {
		errs = append(errs, b.entries[field]...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

