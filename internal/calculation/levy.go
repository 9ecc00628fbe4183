package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// LevyResult is the breakdown of surcharge and cess applied on top of base tax
type LevyResult struct {
	SurchargeRate decimal.Decimal
	Surcharge     decimal.Decimal
	Cess          decimal.Decimal
	Total         decimal.Decimal // (base + surcharge) * (1 + cess rate)
}

// SurchargeRateFor returns the rate of the highest tier whose threshold the
// income meets or exceeds. Tiers are cliffs against the full income, not
// marginal bands, and carry no marginal relief.
func SurchargeRateFor(totalIncome decimal.Decimal, tiers []domain.SurchargeTier) decimal.Decimal {
	rate := decimal.Zero
	for _, tier := range tiers {
		if totalIncome.GreaterThanOrEqual(tier.IncomeThreshold) {
			rate = tier.Rate
		}
	}
	return rate
}

// ApplySurchargeAndCess adds the tiered surcharge and the flat cess to base tax
func ApplySurchargeAndCess(baseTax, totalIncome decimal.Decimal, tiers []domain.SurchargeTier, cessRate decimal.Decimal) LevyResult {
	rate := SurchargeRateFor(totalIncome, tiers)
	surcharge := baseTax.Mul(rate)
	withSurcharge := baseTax.Add(surcharge)
	cess := withSurcharge.Mul(cessRate)

	return LevyResult{
		SurchargeRate: rate,
		Surcharge:     surcharge,
		Cess:          cess,
		Total:         withSurcharge.Add(cess),
	}
}

// ApplyRebate grants the threshold rebate. At or below the income threshold
// the rebate is min(limit, tax); the resulting tax never drops below zero.
func ApplyRebate(taxBeforeRebate, taxableIncome decimal.Decimal, rebate domain.Rebate) (tax, rebateAmount decimal.Decimal) {
	if taxableIncome.GreaterThan(rebate.IncomeThreshold) {
		return taxBeforeRebate, decimal.Zero
	}
	rebateAmount = decimal.Min(rebate.Limit, taxBeforeRebate)
	if rebateAmount.LessThan(decimal.Zero) {
		rebateAmount = decimal.Zero
	}
	tax = taxBeforeRebate.Sub(rebateAmount)
	if tax.LessThan(decimal.Zero) {
		tax = decimal.Zero
	}
	return tax, rebateAmount
}
