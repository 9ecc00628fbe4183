package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// Comparator runs both regimes for a taxpayer, picks the cheaper one and
// proposes old-regime optimizations
type Comparator struct {
	Rules      calculation.RuleProvider
	CalcEngine *calculation.CalculationEngine
	Optimizer  *Optimizer
}

// NewComparator creates a comparator over a rule provider. A nil engine gets
// a default one.
func NewComparator(rules calculation.RuleProvider, calcEngine *calculation.CalculationEngine) *Comparator {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Comparator{
		Rules:      rules,
		CalcEngine: calcEngine,
		Optimizer:  NewOptimizer(calcEngine),
	}
}

// Calculate computes both regimes for the fiscal year, selects the optimal
// one and attaches optimization suggestions and recommendations
func (c *Comparator) Calculate(profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs, fiscalYear string) (*domain.TaxCalculationResult, error) {
	rules, err := c.Rules.GetRules(fiscalYear)
	if err != nil {
		return nil, err
	}

	oldResult, err := c.CalcEngine.CalculateRegime(rules, profile, inputs, domain.RegimeOld)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate old regime: %w", err)
	}
	newResult, err := c.CalcEngine.CalculateRegime(rules, profile, inputs, domain.RegimeNew)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate new regime: %w", err)
	}

	optimal := SelectOptimalRegime(oldResult, newResult)
	result := &domain.TaxCalculationResult{
		FiscalYear:        rules.Year,
		OptimalRegime:     optimal,
		OptimalRegimeName: optimal.DisplayName(),
		Savings:           oldResult.Tax.Sub(newResult.Tax).Abs(),
		OldRegime:         oldResult,
		NewRegime:         newResult,
	}

	result.OptimizationSuggestions = c.Optimizer.Suggest(rules, oldResult)
	if len(result.OptimizationSuggestions) > 0 {
		recalculated, err := c.Optimizer.Recalculate(rules, profile, inputs, oldResult, result.OptimizationSuggestions)
		if err != nil {
			return nil, fmt.Errorf("failed to recalculate old regime: %w", err)
		}
		result.RecalculatedOldRegime = recalculated
	}

	result.Recommendations = GenerateRecommendations(result)

	c.CalcEngine.Logger.Debugf("fiscal year %s: old=%s new=%s optimal=%s",
		rules.Year, oldResult.Tax.StringFixed(2), newResult.Tax.StringFixed(2), optimal)

	return result, nil
}

// SelectOptimalRegime returns the regime with strictly lower tax. Ties go to
// the new regime.
func SelectOptimalRegime(oldResult, newResult domain.RegimeResult) domain.Regime {
	if oldResult.Tax.LessThan(newResult.Tax) {
		return domain.RegimeOld
	}
	return domain.RegimeNew
}
