package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

const notApplicable = "N/A"

// CSVFormatter formats the old-regime deduction breakdown and the optimizer's
// suggestions as CSV
type CSVFormatter struct{}

// Format generates CSV output for a report
func (cf *CSVFormatter) Format(report *Report) (string, error) {
	if report == nil || report.Result == nil {
		return "", fmt.Errorf("report has no result")
	}
	result := report.Result

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	rows := [][]string{{
		"Deduction Section",
		"Used Amount",
		"Limit",
		"Remaining Capacity",
		"Estimated Tax Saving (Full Use)",
		"Tax Saved (Used Approx.)",
	}}
	for _, code := range domain.KnownSections {
		entry, ok := result.OldRegime.DeductionBreakdown[code]
		if !ok {
			continue
		}
		rows = append(rows, cf.formatBreakdownRow(entry))
	}

	rows = append(rows,
		[]string{},
		[]string{"Optimization Suggestions"},
		[]string{"Deduction", "Current Investment", "Recommended Investment", "Potential Tax Saving", "Action"},
	)
	for _, code := range domain.KnownSections {
		suggestion, ok := result.OptimizationSuggestions[code]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(code),
			suggestion.Current.StringFixed(2),
			suggestion.Proposed.StringFixed(2),
			suggestion.EstimatedTaxSaving.StringFixed(2),
			suggestion.Action,
		})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatBreakdownRow formats one section as a CSV row
func (cf *CSVFormatter) formatBreakdownRow(entry domain.DeductionBreakdown) []string {
	estimate := entry.EstimatedTaxSavingIfFullyUsed.StringFixed(2)
	if entry.IsUnlimited() {
		estimate = notApplicable
	}
	return []string{
		string(entry.Section),
		entry.Used.StringFixed(2),
		optionalAmount(entry.Limit),
		optionalAmount(entry.RemainingCapacity),
		estimate,
		entry.TaxSavedFromUsedApprox.StringFixed(2),
	}
}

func optionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return notApplicable
	}
	return d.StringFixed(2)
}
