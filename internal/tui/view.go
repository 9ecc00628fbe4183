package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxpilot/internal/compare"
	"github.com/rgehrsitz/taxpilot/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// View renders the current state of the explorer
func (m Model) View() string {
	var sb strings.Builder

	title := "Tax Regime Explorer"
	if m.request.Profile.Name != "" {
		title += " · " + m.request.Profile.Name
	}
	sb.WriteString(titleStyle.Render(title) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year %s\n\n", m.FiscalYear()))

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	case !m.calculated:
		sb.WriteString("Calculating...\n\n")
	default:
		sb.WriteString(m.renderComparison() + "\n")
	}

	sb.WriteString(m.renderInputs() + "\n")

	if m.result != nil && len(m.result.OptimizationSuggestions) > 0 {
		sb.WriteString(m.renderSuggestions() + "\n")
	}

	sb.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	return sb.String()
}

func (m Model) renderComparison() string {
	r := m.result
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-16s %16s %16s\n", "", "Old Regime", "New Regime"))
	sb.WriteString(fmt.Sprintf("%-16s %16s %16s\n", "Taxable income",
		compare.FormatRupees(r.OldRegime.TaxableIncome), compare.FormatRupees(r.NewRegime.TaxableIncome)))
	sb.WriteString(fmt.Sprintf("%-16s %16s %16s\n", "Tax",
		compare.FormatRupees(r.OldRegime.Tax), compare.FormatRupees(r.NewRegime.Tax)))

	verdict := fmt.Sprintf("%s saves %s", r.OptimalRegimeName, compare.FormatRupees(r.Savings))
	if r.Savings.IsZero() {
		verdict = "Both regimes are equal; " + r.OptimalRegimeName + " applies"
	}
	sb.WriteString(headerStyle.Render(verdict))

	return boxStyle.Render(sb.String())
}

func (m Model) renderInputs() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Inputs") + "\n")
	for i, f := range fields {
		line := fmt.Sprintf("%-28s %14s", f.label, compare.FormatRupees(*f.amount(&m.inputs)))
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func (m Model) renderSuggestions() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Suggestions (press a to apply)") + "\n")
	for _, code := range domain.KnownSections {
		s, ok := m.result.OptimizationSuggestions[code]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s\n", s.Action))
	}
	if r := m.result.RecalculatedOldRegime; r != nil {
		sb.WriteString(fmt.Sprintf("  Old Regime tax after all suggestions: %s\n", compare.FormatRupees(r.Tax)))
	}
	return sb.String()
}
