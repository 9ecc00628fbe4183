package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/compare"
	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taxcalc",
		Short: "Indian income tax regime calculator",
		Long: `Compute income tax under the old and new regimes, pick the cheaper one and
suggest how to use remaining deduction capacity under the old regime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debugMode, _ := cmd.Flags().GetBool("debug")
			setupLogging(cmd.ErrOrStderr(), debugMode)
		},
	}

	rootCmd.PersistentFlags().String("rules", "", "Path to a rules file (yaml, json or toml); built-in tables when empty")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(exploreCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate tax under both regimes",
		Long: `Calculate tax under both regimes for a request file.

Examples:
  taxcalc calculate request.yaml
  taxcalc calculate request.yaml --year 2024-25 --format json
  taxcalc calculate request.yaml --rules custom_rules.toml --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			req, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			year, _ := cmd.Flags().GetString("year")
			if year == "" {
				year = req.FiscalYear
			}
			if year == "" {
				year = registry.Latest()
				log.Info().Str("year", year).Msg("No fiscal year given, using the latest")
			}

			rules, err := registry.GetRules(year)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				engine.SetLogger(zerologLogger{logger: log.Logger})
			}

			profile := req.TaxpayerProfile(config.AgeReferenceDate(rules))
			result, err := compare.NewComparator(registry, engine).Calculate(profile, req.Inputs, year)
			if err != nil {
				return err
			}

			report := compare.NewReport(result)
			report.Taxpayer = req.Profile.Name

			outputFormat, _ := cmd.Flags().GetString("format")
			out, err := formatReport(report, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("year", "", "Fiscal year, e.g. 2023-24 (default: the request's year, else the latest)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, json, csv, html)")
	return cmd
}

func formatReport(report *compare.Report, format string) (string, error) {
	switch format {
	case "table", "console":
		return (&compare.TableFormatter{}).Format(report), nil
	case "compact":
		return (&compare.TableFormatter{}).FormatCompact(report), nil
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(report)
		return out + "\n", err
	case "csv":
		return (&compare.CSVFormatter{}).Format(report)
	case "html":
		return (&compare.HTMLFormatter{}).Format(report)
	}
	return "", fmt.Errorf("unsupported format: %s", format)
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			req, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			if req.FiscalYear != "" {
				registry, err := loadRegistry(cmd)
				if err != nil {
					return err
				}
				if _, err := registry.GetRules(req.FiscalYear); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Request file %s is valid\n", inputFile)
			return nil
		},
	}
}

// loadRegistry builds the rule registry from --rules or the built-in tables
func loadRegistry(cmd *cobra.Command) (*config.Registry, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		return config.NewDefaultRegistry()
	}

	set, err := config.NewRulesLoader().LoadFromFile(rulesFile)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", rulesFile).Int("years", len(set.FiscalYears)).Msg("Loaded rules")
	return config.NewRegistry(set)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
