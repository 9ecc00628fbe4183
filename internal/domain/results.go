package domain

import (
	"github.com/shopspring/decimal"
)

// SubCap reports one independently capped component of a section (80D self/parents)
type SubCap struct {
	Contributed       decimal.Decimal `json:"contributed"`
	Used              decimal.Decimal `json:"used"`
	Limit             decimal.Decimal `json:"limit"`
	RemainingCapacity decimal.Decimal `json:"remainingCapacity"`
}

// DeductionBreakdown reports the use of a single section under the old regime.
// Limit and RemainingCapacity are nil for unlimited sections.
type DeductionBreakdown struct {
	Section                       SectionCode                `json:"section"`
	Contributed                   decimal.Decimal            `json:"contributed"`
	Used                          decimal.Decimal            `json:"used"`
	Limit                         *decimal.Decimal           `json:"limit"`
	RemainingCapacity             *decimal.Decimal           `json:"remainingCapacity"`
	EstimatedTaxSavingIfFullyUsed decimal.Decimal            `json:"estimatedTaxSavingIfFullyUsed"`
	TaxSavedFromUsedApprox        decimal.Decimal            `json:"taxSavedFromUsedApprox"`
	Eligible                      bool                       `json:"eligible"`
	IneligibleReason              string                     `json:"ineligibleReason,omitempty"`
	Components                    map[string]decimal.Decimal `json:"components,omitempty"`
	SubCaps                       map[string]SubCap          `json:"subCaps,omitempty"`
}

// IsUnlimited reports whether the section has no statutory cap
func (b DeductionBreakdown) IsUnlimited() bool {
	return b.Limit == nil
}

// RegimeResult is the outcome of running one regime's pipeline
type RegimeResult struct {
	Regime             Regime                             `json:"regime"`
	Category           SlabCategory                       `json:"category"`
	GrossIncome        decimal.Decimal                    `json:"grossIncome"`
	StandardDeduction  decimal.Decimal                    `json:"standardDeduction"`
	TotalDeductions    decimal.Decimal                    `json:"totalDeductions"` // Section deductions and exemptions, old regime only
	TaxableIncome      decimal.Decimal                    `json:"taxableIncome"`
	SlabTax            decimal.Decimal                    `json:"slabTax"`
	Rebate             decimal.Decimal                    `json:"rebate"`
	Surcharge          decimal.Decimal                    `json:"surcharge"`
	Cess               decimal.Decimal                    `json:"cess"`
	Tax                decimal.Decimal                    `json:"tax"`
	MarginalRate       decimal.Decimal                    `json:"marginalRate"`
	DeductionBreakdown map[SectionCode]DeductionBreakdown `json:"deductionBreakdown,omitempty"`
}

// OptimizationSuggestion proposes maxing out an underused section
type OptimizationSuggestion struct {
	Section            SectionCode     `json:"section"`
	Current            decimal.Decimal `json:"current"`
	Proposed           decimal.Decimal `json:"proposed"`
	EstimatedTaxSaving decimal.Decimal `json:"estimatedTaxSaving"`
	Action             string          `json:"action"`
}

// RecalculatedRegime is the old-regime outcome with every suggestion applied
type RecalculatedRegime struct {
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	Tax           decimal.Decimal `json:"tax"`
}

// TaxCalculationResult is the response of a single calculation request
type TaxCalculationResult struct {
	FiscalYear              string                                 `json:"fiscalYear"`
	OptimalRegime           Regime                                 `json:"-"`
	OptimalRegimeName       string                                 `json:"optimalRegime"`
	Savings                 decimal.Decimal                        `json:"savings"` // Tax difference between the two regimes
	OldRegime               RegimeResult                           `json:"oldRegime"`
	NewRegime               RegimeResult                           `json:"newRegime"`
	OptimizationSuggestions map[SectionCode]OptimizationSuggestion `json:"optimizationSuggestions"`
	RecalculatedOldRegime   *RecalculatedRegime                    `json:"recalculatedOldRegime,omitempty"`
	Recommendations         []string                               `json:"recommendations"`
}
