package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	optimalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// TableFormatter formats a calculation report as a console table
type TableFormatter struct{}

// Format generates a formatted report comparing both regimes
func (tf *TableFormatter) Format(report *Report) string {
	var sb strings.Builder
	if report == nil || report.Result == nil {
		return ""
	}
	result := report.Result

	// Header
	sb.WriteString(titleStyle.Render("INCOME TAX REGIME COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year: %s\n", result.FiscalYear))
	if report.Taxpayer != "" {
		sb.WriteString(fmt.Sprintf("Taxpayer:    %s\n", report.Taxpayer))
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Report %s generated %s", report.ID, report.GeneratedAt.Format("2006-01-02 15:04 MST"))) + "\n")
	sb.WriteString("\n")

	labelWidth := 28
	numWidth := 20

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Old Regime", numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	rows := []struct {
		label    string
		old, new decimal.Decimal
	}{
		{"Gross Income", result.OldRegime.GrossIncome, result.NewRegime.GrossIncome},
		{"Standard Deduction", result.OldRegime.StandardDeduction, result.NewRegime.StandardDeduction},
		{"Deductions & Exemptions", result.OldRegime.TotalDeductions, result.NewRegime.TotalDeductions},
		{"Taxable Income", result.OldRegime.TaxableIncome, result.NewRegime.TaxableIncome},
		{"Slab Tax", result.OldRegime.SlabTax, result.NewRegime.SlabTax},
		{"Rebate", result.OldRegime.Rebate.Neg(), result.NewRegime.Rebate.Neg()},
		{"Surcharge", result.OldRegime.Surcharge, result.NewRegime.Surcharge},
		{"Health & Education Cess", result.OldRegime.Cess, result.NewRegime.Cess},
	}
	for _, row := range rows {
		sb.WriteString(tf.formatRow(row.label, row.old, row.new, labelWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.formatRow("Total Tax", result.OldRegime.Tax, result.NewRegime.Tax, labelWidth, numWidth))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Marginal Rate",
		numWidth, formatRate(result.OldRegime.MarginalRate),
		numWidth, formatRate(result.NewRegime.MarginalRate)))
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	verdict := fmt.Sprintf("Optimal: %s (saves %s)", result.OptimalRegimeName, FormatRupees(result.Savings))
	if result.Savings.IsZero() {
		verdict = fmt.Sprintf("Optimal: %s (both regimes are equal)", result.OptimalRegimeName)
	}
	sb.WriteString(optimalStyle.Render(verdict) + "\n")

	// Old regime deduction breakdown
	if len(result.OldRegime.DeductionBreakdown) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("OLD REGIME DEDUCTIONS") + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("%-12s %16s %16s %16s %16s\n", "Section", "Used", "Limit", "Remaining", "Saving If Full"))
		for _, code := range domain.KnownSections {
			entry, ok := result.OldRegime.DeductionBreakdown[code]
			if !ok {
				continue
			}
			sb.WriteString(tf.formatBreakdownRow(entry))
		}
	}

	// Suggestions
	if len(result.OptimizationSuggestions) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("OPTIMIZATION SUGGESTIONS") + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, code := range domain.KnownSections {
			suggestion, ok := result.OptimizationSuggestions[code]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s: %s -> %s (save up to %s)\n", code,
				FormatRupees(suggestion.Current), FormatRupees(suggestion.Proposed), FormatRupees(suggestion.EstimatedTaxSaving)))
			sb.WriteString(fmt.Sprintf("  %s\n", suggestion.Action))
		}
		if recalculated := result.RecalculatedOldRegime; recalculated != nil {
			sb.WriteString(fmt.Sprintf("\nOld Regime with all suggestions: taxable %s, tax %s\n",
				FormatRupees(recalculated.TaxableIncome), FormatRupees(recalculated.Tax)))
		}
	}

	// Recommendations
	if len(result.Recommendations) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("RECOMMENDATIONS") + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatCompact generates a one-line summary of the comparison
func (tf *TableFormatter) FormatCompact(report *Report) string {
	if report == nil || report.Result == nil {
		return ""
	}
	result := report.Result
	return fmt.Sprintf("%s | Old: %s | New: %s | Optimal: %s | Savings: %s\n",
		result.FiscalYear,
		FormatRupees(result.OldRegime.Tax),
		FormatRupees(result.NewRegime.Tax),
		result.OptimalRegimeName,
		FormatRupees(result.Savings))
}

func (tf *TableFormatter) formatRow(label string, oldValue, newValue decimal.Decimal, labelWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s\n",
		labelWidth, label,
		numWidth, FormatRupees(oldValue),
		numWidth, FormatRupees(newValue))
}

func (tf *TableFormatter) formatBreakdownRow(entry domain.DeductionBreakdown) string {
	limit, remaining, estimate := notApplicable, notApplicable, notApplicable
	if entry.Limit != nil {
		limit = FormatRupees(*entry.Limit)
		estimate = FormatRupees(entry.EstimatedTaxSavingIfFullyUsed)
	}
	if entry.RemainingCapacity != nil {
		remaining = FormatRupees(*entry.RemainingCapacity)
	}

	line := fmt.Sprintf("%-12s %16s %16s %16s %16s", entry.Section, FormatRupees(entry.Used), limit, remaining, estimate)
	if !entry.Eligible {
		line += " " + mutedStyle.Render("(ineligible: "+entry.IneligibleReason+")")
	}
	return line + "\n"
}

func formatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
