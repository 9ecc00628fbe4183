package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSlabTax(t *testing.T) {
	general := testRules().OldRegime.Slabs[domain.CategoryGeneral]

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", d(0), d(0)},
		{"negative income treated as zero", d(-1000), d(0)},
		{"inside exempt slab", d(200000), d(0)},
		{"exactly at first boundary", d(250000), d(0)},
		{"second slab", d(480000), d(11500)},
		{"exactly at second boundary", d(500000), d(12500)},
		{"third slab", d(600000), d(32500)},
		{"unbounded slab absorbs remainder", d(1500000), d(262500)},
		{"fractional income", rate("250000.50"), rate("0.025")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeSlabTax(tt.income, general)
			assert.True(t, result.Equal(tt.expected), "ComputeSlabTax(%s) = %s, expected %s", tt.income, result, tt.expected)
		})
	}
}

func TestComputeSlabTax_NonDecreasingAndContinuous(t *testing.T) {
	rules := testRules()
	sets := map[string][]domain.Slab{}
	for category, slabs := range rules.OldRegime.Slabs {
		sets["old/"+string(category)] = slabs
	}
	sets["new/general"] = rules.NewRegime.Slabs[domain.CategoryGeneral]

	step := decimal.NewFromInt(10000)
	limit := decimal.NewFromInt(6000000)
	paisa := rate("0.01")

	for name, slabs := range sets {
		t.Run(name, func(t *testing.T) {
			prev := ComputeSlabTax(decimal.Zero, slabs)
			for income := step; income.LessThanOrEqual(limit); income = income.Add(step) {
				tax := ComputeSlabTax(income, slabs)
				require.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at %s", income)
				prev = tax
			}

			// Crossing each boundary by one paisa adds exactly the next bracket's rate
			for i, s := range slabs {
				if s.UpperBound == nil {
					continue
				}
				below := ComputeSlabTax(*s.UpperBound, slabs)
				above := ComputeSlabTax(s.UpperBound.Add(paisa), slabs)
				expected := paisa.Mul(slabs[i+1].Rate)
				assert.True(t, above.Sub(below).Equal(expected), "boundary %s: delta %s, expected %s", s.UpperBound, above.Sub(below), expected)

				justBelow := ComputeSlabTax(s.UpperBound.Sub(paisa), slabs)
				assert.True(t, below.Sub(justBelow).Equal(paisa.Mul(s.Rate)), "boundary %s approached from below", s.UpperBound)
			}
		})
	}
}

func TestMarginalRate(t *testing.T) {
	general := testRules().OldRegime.Slabs[domain.CategoryGeneral]

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero uses first bracket", d(0), rate("0")},
		{"upper bound belongs to its own bracket", d(500000), rate("0.05")},
		{"just above bound moves up", rate("500000.01"), rate("0.20")},
		{"unbounded bracket", d(2500000), rate("0.30")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, MarginalRate(tt.income, general).Equal(tt.expected))
		})
	}

	assert.True(t, MarginalRate(d(100), nil).IsZero())
}

func TestSelectCategory(t *testing.T) {
	tests := []struct {
		age      int
		regime   domain.Regime
		expected domain.SlabCategory
	}{
		{30, domain.RegimeOld, domain.CategoryGeneral},
		{59, domain.RegimeOld, domain.CategoryGeneral},
		{60, domain.RegimeOld, domain.CategorySenior},
		{79, domain.RegimeOld, domain.CategorySenior},
		{80, domain.RegimeOld, domain.CategorySuperSenior},
		{95, domain.RegimeOld, domain.CategorySuperSenior},
		{30, domain.RegimeNew, domain.CategoryGeneral},
		{65, domain.RegimeNew, domain.CategoryGeneral},
		{82, domain.RegimeNew, domain.CategoryGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SelectCategory(tt.age, tt.regime), "age %d, %s", tt.age, tt.regime)
	}
}
