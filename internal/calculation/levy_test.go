package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSurchargeRateFor(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name     string
		income   decimal.Decimal
		regime   domain.Regime
		expected decimal.Decimal
	}{
		{"below first tier", rate("4999999.99"), domain.RegimeOld, rate("0")},
		{"exactly at first tier", d(5000000), domain.RegimeOld, rate("0.10")},
		{"second tier", d(12000000), domain.RegimeOld, rate("0.15")},
		{"top tier old regime", d(60000000), domain.RegimeOld, rate("0.37")},
		{"new regime capped at 25%", d(60000000), domain.RegimeNew, rate("0.25")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SurchargeRateFor(tt.income, rules.SurchargeTiersFor(tt.regime))
			assert.True(t, result.Equal(tt.expected), "rate %s, expected %s", result, tt.expected)
		})
	}
}

func TestApplySurchargeAndCess(t *testing.T) {
	tiers := testRules().SurchargeTiers

	t.Run("cess only", func(t *testing.T) {
		result := ApplySurchargeAndCess(d(32500), d(600000), tiers, rate("0.04"))
		assert.True(t, result.Surcharge.IsZero())
		assert.True(t, result.Cess.Equal(d(1300)))
		assert.True(t, result.Total.Equal(d(33800)))
	})

	t.Run("cliff surcharge on whole base tax", func(t *testing.T) {
		result := ApplySurchargeAndCess(d(1000000), d(5000000), tiers, rate("0.04"))
		assert.True(t, result.SurchargeRate.Equal(rate("0.10")))
		assert.True(t, result.Surcharge.Equal(d(100000)))
		// (1000000 + 100000) * 1.04
		assert.True(t, result.Total.Equal(d(1144000)))
	})

	t.Run("no tiers", func(t *testing.T) {
		result := ApplySurchargeAndCess(d(100), d(100000000), nil, rate("0.04"))
		assert.True(t, result.Surcharge.IsZero())
		assert.True(t, result.Total.Equal(d(104)))
	})
}

func TestApplyRebate(t *testing.T) {
	rebate := domain.Rebate{Limit: d(12500), IncomeThreshold: d(500000)}

	tests := []struct {
		name       string
		tax        decimal.Decimal
		income     decimal.Decimal
		wantTax    decimal.Decimal
		wantRebate decimal.Decimal
	}{
		{"tax below limit is cleared", d(11500), d(480000), d(0), d(11500)},
		{"at threshold", d(12500), d(500000), d(0), d(12500)},
		{"above threshold no rebate", d(32500), d(600000), d(32500), d(0)},
		{"limit smaller than tax", d(20000), d(500000), d(7500), d(12500)},
		{"zero tax", d(0), d(100000), d(0), d(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, amount := ApplyRebate(tt.tax, tt.income, rebate)
			assert.True(t, tax.Equal(tt.wantTax), "tax %s, expected %s", tax, tt.wantTax)
			assert.True(t, amount.Equal(tt.wantRebate), "rebate %s, expected %s", amount, tt.wantRebate)
			assert.False(t, tax.IsNegative())
		})
	}
}
