package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/valkit/pkg/i18n"
	"github.com/dmitrymomot/valkit/pkg/logger"
)

// Config is the environment configuration of the engine.
type Config struct {
	Locale        string `env:"VALIDATOR_LOCALE" envDefault:"en"`
	DictionaryDir string `env:"VALIDATOR_DICTIONARY_DIR"`
	Environment   string `env:"APP_ENV" envDefault:"development"`

	// LogLevel and LogFormat override the defaults implied by Environment.
	LogLevel  string `env:"VALIDATOR_LOG_LEVEL"`
	LogFormat string `env:"VALIDATOR_LOG_FORMAT"`
}

// Logger builds the slog logger described by cfg.
func (cfg Config) Logger(opts ...logger.Option) (*slog.Logger, error) {
	base := []logger.Option{logger.WithEnvironment(cfg.Environment, "valkit")}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("validator: %w", err)
		}
		base = append(base, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, fmt.Errorf("validator: %w", err)
		}
		base = append(base, logger.WithFormat(format))
	}
	return logger.New(append(base, opts...)...), nil
}

// FromConfig returns the options that apply cfg: a fresh registry with the
// dictionary directory loaded, the locale and the logger.
func FromConfig(ctx context.Context, cfg Config, logOpts ...logger.Option) ([]Option, error) {
	log, err := cfg.Logger(logOpts...)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(WithRegistryLogger(log))
	if cfg.DictionaryDir != "" {
		if err := registry.LoadDictionary(ctx, i18n.NewDirectoryAdapter(nil, cfg.DictionaryDir)); err != nil {
			return nil, err
		}
		log.DebugContext(ctx, "dictionary loaded",
			slog.String("dir", cfg.DictionaryDir),
			logger.Locales(registry.Catalog().Locales()))
	}

	return []Option{
		WithRegistry(registry),
		WithLocale(cfg.Locale),
		WithLogger(log),
	}, nil
}
