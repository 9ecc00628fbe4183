package main

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate fiscal year rule tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "years",
		Short: "List the fiscal years with rule tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			for _, year := range registry.Years() {
				rules, err := registry.GetRules(year)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", year, rules.Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Validate a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := config.NewRulesLoader().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s is valid (%d fiscal years)\n", args[0], len(set.FiscalYears))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [fiscal-year]",
		Short: "Print the rule table of a fiscal year as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			year := registry.Latest()
			if len(args) == 1 {
				year = args[0]
			}
			rules, err := registry.GetRules(year)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(rules); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the built-in rule tables as a starting point for a custom rules file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultRulesYAML())
			return err
		},
	})

	return cmd
}
