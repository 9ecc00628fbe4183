package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func ratePtr(s string) *decimal.Decimal {
	x := decimal.RequireFromString(s)
	return &x
}

func slab(upper int64, r string) domain.Slab {
	if upper < 0 {
		return domain.Slab{Rate: rate(r)}
	}
	return domain.Slab{UpperBound: ptr(upper), Rate: rate(r)}
}

// testRules mirrors the 2023-24 table shipped with the config package
func testRules() *domain.FiscalYearRules {
	return &domain.FiscalYearRules{
		Year:              "2023-24",
		StandardDeduction: d(50000),
		Rebate:            domain.Rebate{Limit: d(12500), IncomeThreshold: d(500000), ResidentsOnly: true},
		CessRate:          rate("0.04"),
		SurchargeTiers: []domain.SurchargeTier{
			{IncomeThreshold: d(5000000), Rate: rate("0.10")},
			{IncomeThreshold: d(10000000), Rate: rate("0.15")},
			{IncomeThreshold: d(20000000), Rate: rate("0.25")},
			{IncomeThreshold: d(50000000), Rate: rate("0.37")},
		},
		OldRegime: domain.RegimeRules{
			Slabs: map[domain.SlabCategory][]domain.Slab{
				domain.CategoryGeneral:     {slab(250000, "0"), slab(500000, "0.05"), slab(1000000, "0.20"), slab(-1, "0.30")},
				domain.CategorySenior:      {slab(300000, "0"), slab(500000, "0.05"), slab(1000000, "0.20"), slab(-1, "0.30")},
				domain.CategorySuperSenior: {slab(500000, "0"), slab(1000000, "0.20"), slab(-1, "0.30")},
			},
		},
		NewRegime: domain.RegimeRules{
			Slabs: map[domain.SlabCategory][]domain.Slab{
				domain.CategoryGeneral: {
					slab(300000, "0"), slab(600000, "0.05"), slab(900000, "0.10"),
					slab(1200000, "0.15"), slab(1500000, "0.20"), slab(-1, "0.30"),
				},
			},
			Rebate: &domain.Rebate{Limit: d(25000), IncomeThreshold: d(700000), ResidentsOnly: true},
			SurchargeTiers: []domain.SurchargeTier{
				{IncomeThreshold: d(5000000), Rate: rate("0.10")},
				{IncomeThreshold: d(10000000), Rate: rate("0.15")},
				{IncomeThreshold: d(20000000), Rate: rate("0.25")},
			},
		},
		CityClassification: domain.CityClassification{
			Metro:    []string{"Mumbai", "Delhi", "Kolkata", "Chennai"},
			NonMetro: []string{"Pune", "Bengaluru"},
		},
		HRA: domain.HRARules{
			MetroSalaryFraction:      rate("0.5"),
			NonMetroSalaryFraction:   rate("0.4"),
			RentExcessSalaryFraction: rate("0.1"),
		},
		DeductionLimits: map[domain.SectionCode]domain.DeductionLimit{
			domain.SectionHRA:       {},
			domain.Section80C:       {Limit: ptr(150000), Optimizable: true},
			domain.Section80CCD1B:   {Limit: ptr(50000), Optimizable: true},
			domain.Section80CCD2:    {SalaryFraction: ratePtr("0.10")},
			domain.Section80D:       {Optimizable: true},
			domain.Section80DD:      {Limit: ptr(75000), SevereLimit: ptr(125000)},
			domain.Section80DDB:     {Limit: ptr(40000), SeniorLimit: ptr(100000)},
			domain.Section80E:       {},
			domain.Section24B:       {Limit: ptr(200000)},
			domain.Section24BLetOut: {},
			domain.Section80EEA: {
				Limit: ptr(150000),
				Conditions: []domain.Condition{
					{Field: domain.FieldFirstTimeHomeBuyer, Operator: domain.OpEqual, Value: "true"},
				},
			},
			domain.Section80G: {},
			domain.Section80GG: {
				Limit:          ptr(60000),
				IncomeFraction: ratePtr("0.25"),
				Conditions: []domain.Condition{
					{Field: domain.FieldHRAReceived, Operator: domain.OpEqual, Value: "0"},
				},
			},
			domain.Section80TTA: {
				Limit:      ptr(10000),
				Conditions: []domain.Condition{{Field: domain.FieldAge, Operator: domain.OpLess, Value: "60"}},
			},
			domain.Section80TTB: {
				Limit:      ptr(50000),
				Conditions: []domain.Condition{{Field: domain.FieldAge, Operator: domain.OpGreaterEqual, Value: "60"}},
			},
			domain.Section80U: {Limit: ptr(75000), SevereLimit: ptr(125000)},
		},
		Section80DLimits: map[domain.SlabCategory]domain.Section80DCaps{
			domain.CategoryGeneral: {Self: d(25000), Parents: d(25000)},
			domain.CategorySenior:  {Self: d(50000), Parents: d(50000)},
		},
	}
}

func resident(age int) domain.TaxpayerProfile {
	return domain.TaxpayerProfile{Age: age, City: "Pune", Resident: true}
}

// TestLogger records formatted messages
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
