package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/valkit/pkg/config"
	"github.com/dmitrymomot/valkit/pkg/i18n"
	"github.com/dmitrymomot/valkit/pkg/logger"
	"github.com/dmitrymomot/valkit/pkg/metrics"
	"github.com/dmitrymomot/valkit/pkg/redis"
	"github.com/dmitrymomot/valkit/pkg/validator"
)

// errValidationFailed makes the process exit with status 1 without printing an error.
var errValidationFailed = errors.New("validation failed")

type checkOptions struct {
	rules      string
	values     string
	locale     string
	dictionary string
	format     string
	redis      bool
	metrics    bool
}

type report struct {
	RunID  string              `json:"run_id"`
	Valid  bool                `json:"valid"`
	Locale string              `json:"locale"`
	Errors map[string][]string `json:"errors"`
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a values file against a rules file",
		Long: `Reads a field -> rule expression map (YAML or JSON) and a field -> value map
(JSON, or YAML by extension; "-" reads stdin), validates every field that has
rules, waits for deferred rules and prints the failures.

Exit status is 0 when every field passes, 1 when some field fails and 2 on
configuration errors such as an unknown rule.`,
		Example: `  valkit check --rules rules.yaml --values input.json
  valkit check --rules rules.yaml --values - --locale "de-CH,de;q=0.9,en;q=0.5" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return runCheck(cmd.Context(), cmd, envFile, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.rules, "rules", "r", "", "Rules file (YAML or JSON)")
	f.StringVar(&opts.values, "values", "", `Values file (JSON or YAML), "-" for stdin`)
	f.StringVarP(&opts.locale, "locale", "l", "", "Preferred locales in Accept-Language form (default VALIDATOR_LOCALE)")
	f.StringVarP(&opts.dictionary, "dictionary", "d", "", "Directory with extra message dictionaries (default VALIDATOR_DICTIONARY_DIR)")
	f.StringVarP(&opts.format, "format", "f", "text", `Output format: "text" or "json"`)
	f.BoolVar(&opts.redis, "redis", false, "Enable the exists/unique rules backed by VALIDATOR_REDIS_URL")
	f.BoolVar(&opts.metrics, "metrics", false, "Print rule metrics to stderr after validation")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, envFile string, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
	}

	ctx = logger.WithRunID(ctx, uuid.NewString())

	var cfg validator.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if opts.dictionary != "" {
		cfg.DictionaryDir = opts.dictionary
	}

	vopts, err := validator.FromConfig(ctx, cfg,
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithAttr(slog.String("command", cmd.Name())))
	if err != nil {
		return err
	}
	var promReg *prometheus.Registry
	if opts.metrics {
		promReg = prometheus.NewRegistry()
		vopts = append(vopts, validator.WithObserver(metrics.New(promReg)))
	}
	v := validator.New(nil, vopts...)
	registry := v.Registry()

	if opts.redis {
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := redis.NewMembership(client, rcfg.KeyPrefix).Register(registry); err != nil {
			return err
		}
	}

	rules, err := loadRules(opts.rules, cmd.InOrStdin())
	if err != nil {
		return err
	}
	values, err := loadValues(opts.values, cmd.InOrStdin())
	if err != nil {
		return err
	}

	preferred := opts.locale
	if preferred == "" {
		preferred = cfg.Locale
	}
	locale := i18n.Negotiate(preferred, registry.Catalog().Locales(), i18n.DefaultLanguage)
	v.SetLocale(locale)

	input := make(map[string]any, len(rules))
	for field, expr := range rules {
		v.Attach(field, expr)
		input[field] = values[field]
	}

	if _, err := v.ValidateAll(ctx, input); err != nil {
		return err
	}
	if err := v.Settle(ctx); err != nil {
		return err
	}

	runID, _ := logger.RunID(ctx)
	rep := report{
		RunID:  runID,
		Valid:  v.Errors().Len() == 0,
		Locale: locale,
		Errors: v.Errors().All(),
	}
	if err := writeReport(cmd.OutOrStdout(), opts.format, rep); err != nil {
		return err
	}

	if promReg != nil {
		if err := metrics.WriteText(cmd.ErrOrStderr(), promReg); err != nil {
			return err
		}
	}

	if !rep.Valid {
		return errValidationFailed
	}
	return nil
}

func writeReport(w io.Writer, format string, rep report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	if rep.Valid {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}
	fields := make([]string, 0, len(rep.Errors))
	for field := range rep.Errors {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		for _, msg := range rep.Errors[field] {
			if _, err := fmt.Fprintf(w, "%s: %s\n", field, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
