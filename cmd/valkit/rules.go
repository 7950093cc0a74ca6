package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/valkit/pkg/validator"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules with their English messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := validator.NewRegistry()
			for _, name := range registry.Rules() {
				msg, err := registry.Catalog().Format("en", ":field", validator.RuleSpec{Name: name})
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, msg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
