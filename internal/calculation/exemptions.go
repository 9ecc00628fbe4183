package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// HRAExemptionDetail carries the three legs of the HRA exemption minimum
type HRAExemptionDetail struct {
	Actual      decimal.Decimal // HRA received
	RentExcess  decimal.Decimal // rent paid less a fraction of basic salary
	SalaryShare decimal.Decimal // 50% (metro) or 40% (non-metro) of basic salary
	Exemption   decimal.Decimal
}

// HRAExemption computes min(HRA received, rent - 10% of basic, metro/non-metro
// share of basic), floored at zero
func HRAExemption(inputs domain.IncomeAndDeductionInputs, city domain.CityType, rules domain.HRARules) HRAExemptionDetail {
	fraction := rules.NonMetroSalaryFraction
	if city == domain.CityMetro {
		fraction = rules.MetroSalaryFraction
	}

	d := HRAExemptionDetail{
		Actual:      inputs.HRAReceived,
		RentExcess:  floorZero(inputs.RentPaid.Sub(inputs.BasicSalary.Mul(rules.RentExcessSalaryFraction))),
		SalaryShare: inputs.BasicSalary.Mul(fraction),
	}
	d.Exemption = floorZero(decimal.Min(d.Actual, d.RentExcess, d.SalaryShare))
	return d
}

// Section80GGAllowance computes the rent deduction for taxpayers without HRA:
// min(limit, income share, rent - 10% of income), floored at zero
func Section80GGAllowance(inputs domain.IncomeAndDeductionInputs, limit domain.DeductionLimit, rentExcessFraction decimal.Decimal) decimal.Decimal {
	allowance := floorZero(inputs.RentPaid.Sub(inputs.GrossIncome.Mul(rentExcessFraction)))
	if limit.IncomeFraction != nil {
		allowance = decimal.Min(allowance, inputs.GrossIncome.Mul(*limit.IncomeFraction))
	}
	if limit.Limit != nil {
		allowance = decimal.Min(allowance, *limit.Limit)
	}
	return floorZero(allowance)
}

// StandardDeduction applies to salaried taxpayers only and never exceeds gross income
func StandardDeduction(rules *domain.FiscalYearRules, regime domain.Regime, inputs domain.IncomeAndDeductionInputs) decimal.Decimal {
	if inputs.BasicSalary.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return floorZero(decimal.Min(rules.StandardDeductionFor(regime), inputs.GrossIncome))
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
