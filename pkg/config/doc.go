// Package config loads application configuration from environment variables
// into typed structs.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv reads one or more `.env` files (default `.env`) without overriding
//     variables that are already set.
//   - Parse fills any struct from the environment using `env` field tags.
//   - Load does the same but caches the result per struct type, so repeated
//     calls across the process are cheap and consistent.
//   - MustLoad and MustLoadEnv panic on failure for configuration that the
//     program cannot start without.
//   - ResetCache clears the cache between tests.
//
// # Usage
//
//	type Config struct {
//	    Locale        string `env:"VALIDATOR_LOCALE" envDefault:"en"`
//	    DictionaryDir string `env:"VALIDATOR_DICTIONARY_DIR"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Sentinel errors can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`     – failed to parse env vars into struct.
//   - `ErrInvalidConfigType` – the target type is not a struct.
//   - `ErrNilPointer`        – nil pointer passed to `Load`/`Parse`.
//   - `ErrLoadingEnvFile`    – a `.env` file could not be read.
package config
