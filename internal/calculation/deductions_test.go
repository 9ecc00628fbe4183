package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregate(profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs) DeductionSet {
	return NewDeductionAggregator(testRules()).Aggregate(profile, inputs)
}

func assertDec(t *testing.T, expected, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, actual.Equal(expected), "%s: got %s, expected %s", msg, actual, expected)
}

func TestAggregate_80CCombinedCap(t *testing.T) {
	set := aggregate(resident(35), domain.IncomeAndDeductionInputs{
		GrossIncome:           d(1200000),
		Section80CInvestments: d(120000),
		HomeLoanPrincipal:     d(60000),
	})
	set.ApplyMarginalRate(rate("0.20"))

	c80 := set.Breakdown[domain.Section80C]
	assertDec(t, d(180000), c80.Contributed, "contributed")
	assertDec(t, d(150000), c80.Used, "used")
	require.NotNil(t, c80.RemainingCapacity)
	assertDec(t, d(0), *c80.RemainingCapacity, "remaining")
	assertDec(t, d(0), c80.EstimatedTaxSavingIfFullyUsed, "estimated saving")
	assertDec(t, d(30000), c80.TaxSavedFromUsedApprox, "saved from used")
	assertDec(t, d(60000), c80.Components[Component80CHomeLoanPrincip], "principal component")
}

func TestAggregate_80CGroupNeverExceedsLimit(t *testing.T) {
	for _, each := range []int64{0, 10000, 50000, 75000, 149999, 150000, 400000} {
		set := aggregate(resident(35), domain.IncomeAndDeductionInputs{
			Section80CInvestments: d(each),
			PensionFund80CCC:      d(each),
			NPSEmployee80CCD1:     d(each),
			HomeLoanPrincipal:     d(each),
		})
		c80 := set.Breakdown[domain.Section80C]
		assert.True(t, c80.Used.LessThanOrEqual(*c80.Limit), "each=%d used=%s", each, c80.Used)
		assert.False(t, c80.RemainingCapacity.IsNegative())
	}
}

func TestAggregate_80DSubCaps(t *testing.T) {
	tests := []struct {
		name          string
		age           int
		self          int64
		parents       int64
		parentsSenior bool
		wantSelf      domain.SubCap
		wantParents   domain.SubCap
	}{
		{
			name:          "young taxpayer, senior parents, both over cap",
			age:           35,
			self:          30000,
			parents:       60000,
			parentsSenior: true,
			wantSelf:      domain.SubCap{Contributed: d(30000), Used: d(25000), Limit: d(25000), RemainingCapacity: d(0)},
			wantParents:   domain.SubCap{Contributed: d(60000), Used: d(50000), Limit: d(50000), RemainingCapacity: d(0)},
		},
		{
			name:          "senior taxpayer, non-senior parents",
			age:           65,
			self:          20000,
			parents:       0,
			parentsSenior: false,
			wantSelf:      domain.SubCap{Contributed: d(20000), Used: d(20000), Limit: d(50000), RemainingCapacity: d(30000)},
			wantParents:   domain.SubCap{Contributed: d(0), Used: d(0), Limit: d(25000), RemainingCapacity: d(25000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := aggregate(resident(tt.age), domain.IncomeAndDeductionInputs{
				HealthInsuranceSelf:    d(tt.self),
				HealthInsuranceParents: d(tt.parents),
				ParentsSenior:          tt.parentsSenior,
			})
			entry := set.Breakdown[domain.Section80D]
			self := entry.SubCaps[SubCapSelf]
			parents := entry.SubCaps[SubCapParents]

			assertDec(t, tt.wantSelf.Used, self.Used, "self used")
			assertDec(t, tt.wantSelf.Limit, self.Limit, "self limit")
			assertDec(t, tt.wantSelf.RemainingCapacity, self.RemainingCapacity, "self remaining")
			assertDec(t, tt.wantParents.Used, parents.Used, "parents used")
			assertDec(t, tt.wantParents.Limit, parents.Limit, "parents limit")
			assertDec(t, tt.wantParents.RemainingCapacity, parents.RemainingCapacity, "parents remaining")

			assertDec(t, self.Used.Add(parents.Used), entry.Used, "section used")
			assertDec(t, self.Limit.Add(parents.Limit), *entry.Limit, "section limit")
			assertDec(t, self.RemainingCapacity.Add(parents.RemainingCapacity), *entry.RemainingCapacity, "section remaining")
		})
	}
}

func TestAggregate_80EEAConditional(t *testing.T) {
	t.Run("first-time buyer gets interest beyond 24B cap", func(t *testing.T) {
		set := aggregate(resident(35), domain.IncomeAndDeductionInputs{
			HomeLoanInterestSelfOccupied: d(300000),
			FirstTimeHomeBuyer:           true,
		})
		assertDec(t, d(200000), set.Breakdown[domain.Section24B].Used, "24B used")

		eea := set.Breakdown[domain.Section80EEA]
		assert.True(t, eea.Eligible)
		assertDec(t, d(100000), eea.Used, "80EEA used")
		assertDec(t, d(50000), *eea.RemainingCapacity, "80EEA remaining")
	})

	t.Run("not a first-time buyer is reported ineligible", func(t *testing.T) {
		set := aggregate(resident(35), domain.IncomeAndDeductionInputs{
			HomeLoanInterestSelfOccupied: d(300000),
		})
		eea := set.Breakdown[domain.Section80EEA]
		assert.False(t, eea.Eligible)
		assert.Contains(t, eea.IneligibleReason, "first_time_home_buyer")
		assertDec(t, d(0), eea.Used, "80EEA used")
		require.NotNil(t, eea.Limit)
		assertDec(t, d(150000), *eea.Limit, "limit unchanged")
		assertDec(t, d(150000), *eea.RemainingCapacity, "remaining is full limit")
	})
}

func TestAggregate_InterestSectionsGatedByAge(t *testing.T) {
	inputs := domain.IncomeAndDeductionInputs{SavingsInterest: d(15000), DepositInterest: d(40000)}

	young := aggregate(resident(30), inputs)
	assert.True(t, young.Breakdown[domain.Section80TTA].Eligible)
	assertDec(t, d(10000), young.Breakdown[domain.Section80TTA].Used, "80TTA used")
	assert.False(t, young.Breakdown[domain.Section80TTB].Eligible)
	assertDec(t, d(0), young.Breakdown[domain.Section80TTB].Used, "80TTB used")

	senior := aggregate(resident(62), inputs)
	assert.False(t, senior.Breakdown[domain.Section80TTA].Eligible)
	assert.True(t, senior.Breakdown[domain.Section80TTB].Eligible)
	assertDec(t, d(50000), senior.Breakdown[domain.Section80TTB].Used, "80TTB used")
}

func TestAggregate_FixedAndUnlimitedSections(t *testing.T) {
	set := aggregate(resident(40), domain.IncomeAndDeductionInputs{
		GrossIncome:            d(900000),
		BasicSalary:            d(500000),
		NPSEmployer80CCD2:      d(80000),
		DependentDisability:    domain.DisabilitySevere,
		SelfDisability:         domain.DisabilityStandard,
		CriticalIllnessExpense: d(60000),
		StudentLoanInterest:    d(120000),
		Donations100Percent:    d(10000),
		Donations50Percent:     d(20000),
		HomeLoanInterestLetOut: d(250000),
	})

	ccd2 := set.Breakdown[domain.Section80CCD2]
	assertDec(t, d(50000), ccd2.Used, "80CCD(2) capped at 10% of basic")
	assertDec(t, d(50000), *ccd2.Limit, "80CCD(2) limit")

	dd := set.Breakdown[domain.Section80DD]
	assertDec(t, d(125000), dd.Used, "80DD severe")
	assertDec(t, d(0), *dd.RemainingCapacity, "80DD remaining")

	assertDec(t, d(75000), set.Breakdown[domain.Section80U].Used, "80U standard")
	assertDec(t, d(40000), set.Breakdown[domain.Section80DDB].Used, "80DDB non-senior")

	e := set.Breakdown[domain.Section80E]
	assert.True(t, e.IsUnlimited())
	assert.Nil(t, e.RemainingCapacity)
	assertDec(t, d(120000), e.Used, "80E")

	assertDec(t, d(20000), set.Breakdown[domain.Section80G].Used, "80G half of 50% donations")
	assertDec(t, d(250000), set.Breakdown[domain.Section24BLetOut].Used, "let-out interest")

	set.ApplyMarginalRate(rate("0.20"))
	assertDec(t, d(0), set.Breakdown[domain.Section80E].EstimatedTaxSavingIfFullyUsed, "unlimited saving")
}

func TestAggregate_NoDisabilityClaimed(t *testing.T) {
	set := aggregate(resident(40), domain.IncomeAndDeductionInputs{DependentDisability: domain.DisabilityNone})
	dd := set.Breakdown[domain.Section80DD]
	assertDec(t, d(0), dd.Used, "80DD used")
	assertDec(t, d(75000), *dd.RemainingCapacity, "80DD remaining")
}

func TestAggregate_HRAAndRentAllowance(t *testing.T) {
	t.Run("metro HRA", func(t *testing.T) {
		profile := domain.TaxpayerProfile{Age: 30, City: "mumbai", Resident: true}
		set := aggregate(profile, domain.IncomeAndDeductionInputs{
			GrossIncome: d(1200000),
			BasicSalary: d(600000),
			HRAReceived: d(350000),
			RentPaid:    d(400000),
		})
		hra := set.Breakdown[domain.SectionHRA]
		assertDec(t, d(300000), hra.Used, "metro exemption")
		assertDec(t, d(350000), *hra.Limit, "limit is HRA received")
		assertDec(t, d(340000), hra.Components[ComponentHRARentExcess], "rent excess")

		gg := set.Breakdown[domain.Section80GG]
		assert.False(t, gg.Eligible, "80GG is only for taxpayers without HRA")
		assertDec(t, d(0), gg.Used, "80GG used")
	})

	t.Run("non-metro HRA", func(t *testing.T) {
		set := aggregate(resident(30), domain.IncomeAndDeductionInputs{
			GrossIncome: d(1200000),
			BasicSalary: d(600000),
			HRAReceived: d(350000),
			RentPaid:    d(400000),
		})
		assertDec(t, d(240000), set.Breakdown[domain.SectionHRA].Used, "non-metro exemption")
	})

	t.Run("80GG without HRA", func(t *testing.T) {
		set := aggregate(resident(30), domain.IncomeAndDeductionInputs{
			GrossIncome: d(600000),
			RentPaid:    d(180000),
		})
		gg := set.Breakdown[domain.Section80GG]
		assert.True(t, gg.Eligible)
		assertDec(t, d(60000), gg.Used, "80GG capped at limit")
	})
}

func TestAggregate_TotalIsSumOfUsed(t *testing.T) {
	set := aggregate(resident(45), domain.IncomeAndDeductionInputs{
		GrossIncome:           d(2000000),
		BasicSalary:           d(1000000),
		HRAReceived:           d(200000),
		RentPaid:              d(300000),
		Section80CInvestments: d(150000),
		NPSAdditional80CCD1B:  d(50000),
		HealthInsuranceSelf:   d(25000),
		SavingsInterest:       d(8000),
	})

	sum := decimal.Zero
	for _, code := range domain.KnownSections {
		entry, ok := set.Breakdown[code]
		require.True(t, ok, "section %s missing", code)
		assert.Equal(t, code, entry.Section)
		sum = sum.Add(entry.Used)
	}
	assertDec(t, sum, set.Total, "total")
}

func TestAggregate_SkipsSectionsAbsentFromRules(t *testing.T) {
	rules := testRules()
	delete(rules.DeductionLimits, domain.Section80G)

	set := NewDeductionAggregator(rules).Aggregate(resident(30), domain.IncomeAndDeductionInputs{Donations100Percent: d(5000)})
	_, ok := set.Breakdown[domain.Section80G]
	assert.False(t, ok)
	assert.True(t, set.Total.IsZero())
}
