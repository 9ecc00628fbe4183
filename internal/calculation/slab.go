package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeSlabTax applies progressive marginal taxation. Each slab taxes the
// portion of income between the previous slab's upper bound and its own; the
// unbounded last slab absorbs the remainder. Negative income is taxed as zero.
func ComputeSlabTax(taxableIncome decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	tax := decimal.Zero
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return tax
	}

	lower := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(lower) {
			break
		}
		upper := taxableIncome
		if slab.UpperBound != nil {
			upper = decimal.Min(taxableIncome, *slab.UpperBound)
		}
		if portion := upper.Sub(lower); portion.GreaterThan(decimal.Zero) {
			tax = tax.Add(portion.Mul(slab.Rate))
		}
		if slab.UpperBound == nil {
			break
		}
		lower = *slab.UpperBound
	}

	return tax
}

// MarginalRate returns the rate of the bracket the income currently falls in.
// Brackets are (lower, upper]; income at or below zero uses the first bracket.
func MarginalRate(taxableIncome decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	if len(slabs) == 0 {
		return decimal.Zero
	}
	for _, slab := range slabs {
		if slab.UpperBound == nil || taxableIncome.LessThanOrEqual(*slab.UpperBound) {
			return slab.Rate
		}
	}
	return slabs[len(slabs)-1].Rate
}

// SelectCategory maps an age to the slab category of a regime. Only the old
// regime distinguishes by age; the new regime always uses the general set.
func SelectCategory(age int, regime domain.Regime) domain.SlabCategory {
	if regime != domain.RegimeOld {
		return domain.CategoryGeneral
	}
	switch {
	case age >= 80:
		return domain.CategorySuperSenior
	case age >= 60:
		return domain.CategorySenior
	default:
		return domain.CategoryGeneral
	}
}

// IsSenior reports whether the taxpayer gets senior-citizen limits (60+)
func IsSenior(age int) bool {
	return age >= 60
}
