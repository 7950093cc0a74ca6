package validator

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/valkit/pkg/i18n"
)

// Formatter renders the error message of a rule for a field.
type Formatter func(field string, params []string) string

// Catalog maps locale -> rule name -> Formatter.
// Entries may be added or overwritten, never removed.
type Catalog struct {
	mu      sync.RWMutex
	locales map[string]map[string]Formatter
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{locales: make(map[string]map[string]Formatter)}
}

// Set installs the formatter of rule for locale, creating the locale if needed.
func (c *Catalog) Set(locale, rule string, f Formatter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(locale, rule, f)
}

func (c *Catalog) set(locale, rule string, f Formatter) {
	messages, ok := c.locales[locale]
	if !ok {
		messages = make(map[string]Formatter)
		c.locales[locale] = messages
	}
	messages[rule] = f
}

// Merge overwrites the supplied entries and leaves the rest untouched.
func (c *Catalog) Merge(dictionary map[string]map[string]Formatter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for locale, messages := range dictionary {
		if _, ok := c.locales[locale]; !ok {
			c.locales[locale] = make(map[string]Formatter, len(messages))
		}
		maps.Copy(c.locales[locale], messages)
	}
}

// Lookup returns the formatter registered for exactly this locale.
// A nil entry counts as missing.
func (c *Catalog) Lookup(locale, rule string) (Formatter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.locales[locale][rule]
	return f, f != nil
}

// Resolve looks the rule up in locale and falls back to English.
func (c *Catalog) Resolve(locale, rule string) (Formatter, error) {
	if f, ok := c.Lookup(locale, rule); ok {
		return f, nil
	}
	if f, ok := c.Lookup(i18n.DefaultLanguage, rule); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: rule %q, locale %q", ErrNoFormatter, rule, locale)
}

// Format renders the message of spec for field in locale.
func (c *Catalog) Format(locale, field string, spec RuleSpec) (string, error) {
	f, err := c.Resolve(locale, spec.Name)
	if err != nil {
		return "", err
	}
	return f(field, spec.Params), nil
}

// Locales lists the known locales, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.locales))
}

// TemplateFormatter builds a Formatter from a template such as
// "The %{field} must be between %{0} and %{1}.".
// %{field} is the field name, %{params} the params joined with ", ",
// and %{N} the N-th param. Placeholders without a value stay as they are.
func TemplateFormatter(tmpl string) Formatter {
	return func(field string, params []string) string {
		values := make(map[string]string, len(params)+2)
		values["field"] = field
		values["params"] = strings.Join(params, ", ")
		for i, p := range params {
			values[strconv.Itoa(i)] = p
		}
		return i18n.Interpolate(tmpl, values)
	}
}

// CompileTemplate is TemplateFormatter with placeholder checking.
func CompileTemplate(tmpl string) (Formatter, error) {
	for _, name := range i18n.Placeholders(tmpl) {
		if name == "field" || name == "params" {
			continue
		}
		if n, err := strconv.Atoi(name); err != nil || n < 0 {
			return nil, fmt.Errorf("%w: unknown placeholder %%{%s} in %q", ErrInvalidTemplate, name, tmpl)
		}
	}
	return TemplateFormatter(tmpl), nil
}
