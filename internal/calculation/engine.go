package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// RuleProvider supplies the immutable rule table of a fiscal year
type RuleProvider interface {
	GetRules(year string) (*domain.FiscalYearRules, error)
}

// CalculationEngine runs the per-regime tax pipeline. It holds no state
// besides its logger and is safe for concurrent use.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CalculateRegime computes the tax of a single regime:
// taxable income, slab tax, rebate, surcharge and cess, in that order.
// Section deductions are only considered under the old regime.
func (ce *CalculationEngine) CalculateRegime(rules *domain.FiscalYearRules, profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs, regime domain.Regime) (domain.RegimeResult, error) {
	if rules == nil {
		return domain.RegimeResult{}, fmt.Errorf("no rules supplied: %w", domain.ErrInvalidRuleData)
	}
	if !regime.IsValid() {
		return domain.RegimeResult{}, fmt.Errorf("unknown regime %q: %w", regime, domain.ErrInvalidInput)
	}

	category := SelectCategory(profile.Age, regime)
	slabs, ok := rules.SlabsFor(regime, category)
	if !ok || len(slabs) == 0 {
		return domain.RegimeResult{}, fmt.Errorf("fiscal year %s has no %s slabs for %s: %w",
			rules.Year, category, regime, domain.ErrInvalidRuleData)
	}

	result := domain.RegimeResult{
		Regime:            regime,
		Category:          category,
		GrossIncome:       inputs.GrossIncome,
		StandardDeduction: StandardDeduction(rules, regime, inputs),
		TotalDeductions:   decimal.Zero,
	}

	var deductions DeductionSet
	if regime == domain.RegimeOld {
		deductions = NewDeductionAggregator(rules).Aggregate(profile, inputs)
		result.TotalDeductions = deductions.Total
	}

	result.TaxableIncome = floorZero(inputs.GrossIncome.Sub(result.StandardDeduction).Sub(result.TotalDeductions))
	result.MarginalRate = MarginalRate(result.TaxableIncome, slabs)
	result.SlabTax = ComputeSlabTax(result.TaxableIncome, slabs)

	taxAfterRebate := result.SlabTax
	rebate := rules.RebateFor(regime)
	if profile.Resident || !rebate.ResidentsOnly {
		taxAfterRebate, result.Rebate = ApplyRebate(result.SlabTax, result.TaxableIncome, rebate)
	} else {
		ce.Logger.Debugf("%s: rebate skipped for non-resident", regime)
	}

	// Surcharge tiers are looked up against gross income, not taxable income
	levy := ApplySurchargeAndCess(taxAfterRebate, inputs.GrossIncome, rules.SurchargeTiersFor(regime), rules.CessRate)
	result.Surcharge = levy.Surcharge
	result.Cess = levy.Cess
	result.Tax = levy.Total

	if regime == domain.RegimeOld {
		deductions.ApplyMarginalRate(result.MarginalRate)
		result.DeductionBreakdown = deductions.Breakdown
	}

	roundResult(&result)

	ce.Logger.Debugf("%s (%s): taxable=%s slab=%s rebate=%s surcharge=%s cess=%s tax=%s",
		regime, category, result.TaxableIncome.StringFixed(2), result.SlabTax.StringFixed(2),
		result.Rebate.StringFixed(2), result.Surcharge.StringFixed(2), result.Cess.StringFixed(2),
		result.Tax.StringFixed(2))

	return result, nil
}

// roundResult rounds every money figure of the pipeline to paise
func roundResult(r *domain.RegimeResult) {
	r.GrossIncome = r.GrossIncome.Round(2)
	r.StandardDeduction = r.StandardDeduction.Round(2)
	r.TotalDeductions = r.TotalDeductions.Round(2)
	r.TaxableIncome = r.TaxableIncome.Round(2)
	r.SlabTax = r.SlabTax.Round(2)
	r.Rebate = r.Rebate.Round(2)
	r.Surcharge = r.Surcharge.Round(2)
	r.Cess = r.Cess.Round(2)
	r.Tax = r.Tax.Round(2)
}
