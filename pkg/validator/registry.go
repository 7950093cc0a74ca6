package validator

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/valkit/pkg/i18n"
	"github.com/dmitrymomot/valkit/pkg/logger"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Registry holds the rule predicates and the message catalog shared by validators.
// Rules are only ever added.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Predicate
	catalog *Catalog
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for extension and dictionary events.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithoutBuiltins skips seeding the built-in rules and English messages.
func WithoutBuiltins() RegistryOption {
	return func(r *Registry) {
		r.rules = nil
	}
}

// NewRegistry returns a registry seeded with the built-in rules and English messages.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		rules:   builtinRules(),
		catalog: NewCatalog(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rules == nil {
		r.rules = make(map[string]Predicate)
		return r
	}

	adapter := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), localesFS, "locales")
	if err := r.LoadDictionary(context.Background(), adapter); err != nil {
		panic(fmt.Sprintf("validator: built-in messages: %v", err))
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry() })

// Default returns the process-wide registry used by validators built without WithRegistry.
func Default() *Registry {
	return defaultRegistry()
}

// Extend registers a rule on the default registry.
func Extend(name string, ext Extension) error {
	return Default().Extend(name, ext)
}

// UpdateDictionary merges messages into the default registry's catalog.
func UpdateDictionary(dictionary map[string]map[string]Formatter) {
	Default().UpdateDictionary(dictionary)
}

// Predicate returns the predicate registered under name.
func (r *Registry) Predicate(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.rules[name]
	return p, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Predicate(name)
	return ok
}

// Rules lists the registered rule names, sorted.
func (r *Registry) Rules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// Catalog returns the message catalog.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Extend registers a new rule. It fails with *ExtensionError when the name is taken
// or the extension is malformed.
func (r *Registry) Extend(name string, ext Extension) error {
	r.mu.Lock()
	if _, exists := r.rules[name]; exists {
		r.mu.Unlock()
		return &ExtensionError{Rule: name, Err: ErrRuleExists}
	}
	pred, messages, err := inspect(name, ext)
	if err != nil {
		r.mu.Unlock()
		return &ExtensionError{Rule: name, Err: err}
	}
	r.rules[name] = pred
	r.mu.Unlock()

	r.catalog.Merge(messages)

	r.logger.Debug("rule registered",
		logger.Rule(name),
		logger.Locales(slices.Sorted(maps.Keys(messages))))
	return nil
}

// UpdateDictionary adds or overwrites the given formatters, creating locales as needed.
func (r *Registry) UpdateDictionary(dictionary map[string]map[string]Formatter) {
	r.catalog.Merge(dictionary)
	r.logger.Debug("dictionary updated", logger.Locales(slices.Sorted(maps.Keys(dictionary))))
}

// LoadDictionary reads message templates from adapter and merges them into the catalog.
// Nested keys are flattened with dots, so {"auth": {"pin": "..."}} defines rule "auth.pin".
func (r *Registry) LoadDictionary(ctx context.Context, adapter i18n.DictionaryAdapter) error {
	if adapter == nil {
		return i18n.ErrNilAdapter
	}
	raw, err := adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("validator: load dictionary: %w", err)
	}

	dictionary := make(map[string]map[string]Formatter, len(raw))
	var errs []error
	for locale, messages := range raw {
		flat, invalid := i18n.Flatten(messages)
		if len(invalid) > 0 {
			errs = append(errs, fmt.Errorf("%w: locale %q: non-string values at %s",
				ErrInvalidTemplate, locale, strings.Join(invalid, ", ")))
		}
		formatters := make(map[string]Formatter, len(flat))
		for rule, tmpl := range flat {
			f, err := CompileTemplate(tmpl)
			if err != nil {
				errs = append(errs, fmt.Errorf("locale %q, rule %q: %w", locale, rule, err))
				continue
			}
			formatters[rule] = f
		}
		dictionary[locale] = formatters
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.UpdateDictionary(dictionary)
	return nil
}
