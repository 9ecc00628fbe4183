package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxpilot/internal/compare"
	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/tui"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [input-file]",
		Short: "Interactively adjust deductions and compare regimes",
		Long: `Open an interactive explorer for a request file. Amounts can be raised or
lowered in steps, optimization suggestions applied and fiscal years switched,
with both regimes recalculated on every change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
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
			}
			if _, err := registry.GetRules(year); err != nil {
				return err
			}

			model := tui.NewModel(req, registry, compare.NewComparator(registry, nil), year)
			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running explorer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("year", "", "Fiscal year to start at (default: the request's year, else the latest)")
	return cmd
}
