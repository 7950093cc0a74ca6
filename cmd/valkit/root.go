package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valkit",
		Short: "Valkit validates values against declarative rule chains",
		Long: `Valkit evaluates rule chains such as "required|between:3,20|alpha_dash"
against a set of values and reports localized error messages per field.

Configuration is read from the environment, after loading --env-file and then
a .env file in the working directory when present (set variables win):
VALIDATOR_LOCALE, VALIDATOR_DICTIONARY_DIR, VALIDATOR_LOG_LEVEL,
VALIDATOR_LOG_FORMAT, APP_ENV and VALIDATOR_REDIS_* for the membership rules.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("env-file", "", "Load environment variables from this file before reading configuration")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newRulesCmd())
	return root
}
