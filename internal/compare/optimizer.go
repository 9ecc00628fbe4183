package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// proposal raises the inputs of one section by its remaining capacity
type proposal func(inputs *domain.IncomeAndDeductionInputs, entry domain.DeductionBreakdown)

var proposals = map[domain.SectionCode]proposal{
	domain.Section80C: func(in *domain.IncomeAndDeductionInputs, entry domain.DeductionBreakdown) {
		in.Section80CInvestments = in.Section80CInvestments.Add(*entry.RemainingCapacity)
	},
	domain.Section80CCD1B: func(in *domain.IncomeAndDeductionInputs, entry domain.DeductionBreakdown) {
		in.NPSAdditional80CCD1B = in.NPSAdditional80CCD1B.Add(*entry.RemainingCapacity)
	},
	domain.Section80D: func(in *domain.IncomeAndDeductionInputs, entry domain.DeductionBreakdown) {
		in.HealthInsuranceSelf = in.HealthInsuranceSelf.Add(entry.SubCaps[calculation.SubCapSelf].RemainingCapacity)
		in.HealthInsuranceParents = in.HealthInsuranceParents.Add(entry.SubCaps[calculation.SubCapParents].RemainingCapacity)
	},
}

// Optimizer proposes maxing out underused old-regime sections
type Optimizer struct {
	CalcEngine *calculation.CalculationEngine
}

// NewOptimizer creates a new optimizer
func NewOptimizer(calcEngine *calculation.CalculationEngine) *Optimizer {
	return &Optimizer{CalcEngine: calcEngine}
}

// Suggest returns a suggestion for every optimizable, eligible section with
// remaining capacity under the old regime
func (o *Optimizer) Suggest(rules *domain.FiscalYearRules, oldResult domain.RegimeResult) map[domain.SectionCode]domain.OptimizationSuggestion {
	suggestions := make(map[domain.SectionCode]domain.OptimizationSuggestion)

	for _, code := range domain.KnownSections {
		limit, ok := rules.Limit(code)
		if !ok || !limit.Optimizable {
			continue
		}
		if _, ok := proposals[code]; !ok {
			o.CalcEngine.Logger.Debugf("section %s is flagged optimizable but has no proposal", code)
			continue
		}
		entry, ok := oldResult.DeductionBreakdown[code]
		if !ok || !entry.Eligible || entry.RemainingCapacity == nil || !entry.RemainingCapacity.IsPositive() {
			continue
		}

		remaining := *entry.RemainingCapacity
		suggestions[code] = domain.OptimizationSuggestion{
			Section:            code,
			Current:            entry.Used,
			Proposed:           entry.Used.Add(remaining),
			EstimatedTaxSaving: entry.EstimatedTaxSavingIfFullyUsed,
			Action:             actionFor(code, remaining, entry.EstimatedTaxSavingIfFullyUsed),
		}
	}

	return suggestions
}

// ApplySuggestions returns a copy of inputs with every suggested section maxed out
func (o *Optimizer) ApplySuggestions(inputs domain.IncomeAndDeductionInputs, oldResult domain.RegimeResult, suggestions map[domain.SectionCode]domain.OptimizationSuggestion) domain.IncomeAndDeductionInputs {
	for code := range suggestions {
		apply, ok := proposals[code]
		if !ok {
			continue
		}
		apply(&inputs, oldResult.DeductionBreakdown[code])
	}
	return inputs
}

// Recalculate re-runs the old regime with all suggestions applied
func (o *Optimizer) Recalculate(rules *domain.FiscalYearRules, profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs, oldResult domain.RegimeResult, suggestions map[domain.SectionCode]domain.OptimizationSuggestion) (*domain.RecalculatedRegime, error) {
	optimized := o.ApplySuggestions(inputs, oldResult, suggestions)

	result, err := o.CalcEngine.CalculateRegime(rules, profile, optimized, domain.RegimeOld)
	if err != nil {
		return nil, err
	}

	return &domain.RecalculatedRegime{
		TaxableIncome: result.TaxableIncome,
		Tax:           result.Tax,
	}, nil
}

func actionFor(code domain.SectionCode, remaining, saving decimal.Decimal) string {
	amount := FormatRupees(remaining)
	switch code {
	case domain.Section80C:
		return fmt.Sprintf("Invest an additional %s in ELSS, PPF or NSC to use the full 80C limit", amount)
	case domain.Section80CCD1B:
		return fmt.Sprintf("Contribute an additional %s to NPS under section 80CCD(1B)", amount)
	case domain.Section80D:
		return fmt.Sprintf("Buy additional health cover for yourself, family or parents to use the remaining %s of the 80D limit and save up to %s",
			amount, FormatRupees(saving))
	}
	return fmt.Sprintf("Use the remaining %s under section %s", amount, code)
}
