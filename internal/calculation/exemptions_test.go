package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHRAExemption(t *testing.T) {
	rules := testRules().HRA

	tests := []struct {
		name     string
		inputs   domain.IncomeAndDeductionInputs
		city     domain.CityType
		expected int64
	}{
		{
			name:     "salary share binds in metro",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(350000), RentPaid: d(400000)},
			city:     domain.CityMetro,
			expected: 300000,
		},
		{
			name:     "salary share binds in non-metro",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(350000), RentPaid: d(400000)},
			city:     domain.CityNonMetro,
			expected: 240000,
		},
		{
			name:     "rent excess binds",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(300000), RentPaid: d(240000)},
			city:     domain.CityMetro,
			expected: 180000,
		},
		{
			name:     "HRA received binds",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(100000), RentPaid: d(400000)},
			city:     domain.CityMetro,
			expected: 100000,
		},
		{
			name:     "rent below 10% of basic gives nothing",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(100000), RentPaid: d(50000)},
			city:     domain.CityMetro,
			expected: 0,
		},
		{
			name:     "zero rent",
			inputs:   domain.IncomeAndDeductionInputs{BasicSalary: d(600000), HRAReceived: d(100000)},
			city:     domain.CityNonMetro,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := HRAExemption(tt.inputs, tt.city, rules)
			assert.True(t, detail.Exemption.Equal(d(tt.expected)), "exemption %s, expected %d", detail.Exemption, tt.expected)
			assert.False(t, detail.RentExcess.IsNegative())
		})
	}
}

func TestSection80GGAllowance(t *testing.T) {
	limit, _ := testRules().Limit(domain.Section80GG)
	fraction := rate("0.1")

	tests := []struct {
		name     string
		gross    int64
		rent     int64
		expected int64
	}{
		{"statutory limit binds", 600000, 180000, 60000},
		{"rent excess binds", 600000, 90000, 30000},
		{"income share binds", 100000, 200000, 25000},
		{"rent under 10% of income", 600000, 50000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := domain.IncomeAndDeductionInputs{GrossIncome: d(tt.gross), RentPaid: d(tt.rent)}
			result := Section80GGAllowance(inputs, limit, fraction)
			assert.True(t, result.Equal(d(tt.expected)), "allowance %s, expected %d", result, tt.expected)
		})
	}
}

func TestStandardDeduction(t *testing.T) {
	rules := testRules()

	salaried := domain.IncomeAndDeductionInputs{GrossIncome: d(900000), BasicSalary: d(400000)}

	assert.True(t, StandardDeduction(rules, domain.RegimeOld, salaried).Equal(d(50000)))
	assert.True(t, StandardDeduction(rules, domain.RegimeOld, domain.IncomeAndDeductionInputs{GrossIncome: d(20000), BasicSalary: d(20000)}).Equal(d(20000)))
	assert.True(t, StandardDeduction(rules, domain.RegimeOld, domain.IncomeAndDeductionInputs{GrossIncome: d(900000)}).IsZero(), "non-salaried")

	rules.NewRegime.StandardDeduction = ptr(75000)
	assert.True(t, StandardDeduction(rules, domain.RegimeNew, salaried).Equal(d(75000)), "regime override")
	assert.True(t, StandardDeduction(rules, domain.RegimeOld, salaried).Equal(d(50000)))
}
