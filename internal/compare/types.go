package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// Report wraps a calculation result with the identifiers used by the formatters
type Report struct {
	ID          string                       `json:"id"`
	GeneratedAt time.Time                    `json:"generatedAt"`
	Taxpayer    string                       `json:"taxpayer,omitempty"`
	Result      *domain.TaxCalculationResult `json:"result"`
}

// NewReport stamps a result with a fresh ID and the current UTC time
func NewReport(result *domain.TaxCalculationResult) *Report {
	return NewReportAt(result, uuid.New().String(), time.Now().UTC())
}

// NewReportAt builds a report with a fixed ID and timestamp
func NewReportAt(result *domain.TaxCalculationResult, id string, generatedAt time.Time) *Report {
	return &Report{
		ID:          id,
		GeneratedAt: generatedAt,
		Result:      result,
	}
}

// GenerateRecommendations creates recommendations based on the regime comparison
// and the optimizer's proposals
func GenerateRecommendations(result *domain.TaxCalculationResult) []string {
	recommendations := []string{}
	if result == nil {
		return recommendations
	}

	if result.Savings.IsZero() {
		recommendations = append(recommendations,
			"Regime: Both regimes produce the same tax of "+FormatRupees(result.NewRegime.Tax)+"; the New Regime is the default")
	} else {
		recommendations = append(recommendations,
			"Regime: "+result.OptimalRegimeName+" saves "+FormatRupees(result.Savings)+" compared to the "+
				otherRegime(result.OptimalRegime).DisplayName())
	}

	if recalculated := result.RecalculatedOldRegime; recalculated != nil {
		gain := result.OldRegime.Tax.Sub(recalculated.Tax)
		if gain.IsPositive() {
			line := "Optimization: Using all suggested deductions lowers Old Regime tax by " + FormatRupees(gain) +
				" to " + FormatRupees(recalculated.Tax)
			if result.OptimalRegime == domain.RegimeNew && recalculated.Tax.LessThan(result.NewRegime.Tax) {
				line += ", which would make the Old Regime cheaper than the New Regime"
			}
			recommendations = append(recommendations, line)
		}
	}

	for _, code := range domain.KnownSections {
		entry, ok := result.OldRegime.DeductionBreakdown[code]
		if !ok || entry.Eligible || !entry.Contributed.IsPositive() {
			continue
		}
		if alt, ok := alternatives[code]; ok {
			if other, ok := result.OldRegime.DeductionBreakdown[alt]; ok && other.Used.IsPositive() {
				continue
			}
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Ineligible: %s claim of %s was not allowed (%s)", code, FormatRupees(entry.Contributed), entry.IneligibleReason))
	}

	return recommendations
}

// alternatives pairs mutually exclusive sections; an ineligible section is
// not worth reporting when its counterpart was used
var alternatives = map[domain.SectionCode]domain.SectionCode{
	domain.Section80GG:  domain.SectionHRA,
	domain.Section80TTA: domain.Section80TTB,
	domain.Section80TTB: domain.Section80TTA,
}

func otherRegime(r domain.Regime) domain.Regime {
	if r == domain.RegimeOld {
		return domain.RegimeNew
	}
	return domain.RegimeOld
}

// FormatRupees renders an amount with the rupee sign and Indian digit grouping
// (lakh and crore). Paise are shown only when non-zero.
func FormatRupees(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	text := amount.StringFixed(2)
	if amount.Equal(amount.Truncate(0)) {
		text = amount.StringFixed(0)
	}

	whole, frac, _ := strings.Cut(text, ".")
	grouped := groupIndian(whole)
	if frac != "" {
		grouped += "." + frac
	}
	return sign + "₹" + grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
