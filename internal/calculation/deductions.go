package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// Component and sub-cap keys reported in a DeductionBreakdown
const (
	Component80CInstruments     = "instruments"
	Component80CPension80CCC    = "pension_80ccc"
	Component80CNPS80CCD1       = "nps_80ccd1"
	Component80CHomeLoanPrincip = "home_loan_principal"
	ComponentDonations100       = "donations_100_percent"
	ComponentDonations50        = "donations_50_percent"
	ComponentHRARentExcess      = "rent_excess_over_basic"
	ComponentHRASalaryShare     = "basic_salary_share"
	SubCapSelf                  = "self"
	SubCapParents               = "parents"
)

// DeductionSet is the per-section outcome of aggregation plus the total
// amount deducted from gross income
type DeductionSet struct {
	Breakdown map[domain.SectionCode]domain.DeductionBreakdown
	Total     decimal.Decimal
}

// DeductionAggregator computes used amounts and remaining capacity per
// section under the old regime, enforcing combined and conditional caps
type DeductionAggregator struct {
	Rules *domain.FiscalYearRules
}

// NewDeductionAggregator creates an aggregator bound to a year's rules
func NewDeductionAggregator(rules *domain.FiscalYearRules) *DeductionAggregator {
	return &DeductionAggregator{Rules: rules}
}

// sectionInput is what a section calculator sees
type sectionInput struct {
	code    domain.SectionCode
	limit   domain.DeductionLimit
	profile domain.TaxpayerProfile
	inputs  domain.IncomeAndDeductionInputs
	city    domain.CityType
	used    map[domain.SectionCode]decimal.Decimal // sections computed so far
}

type sectionCalculator func(da *DeductionAggregator, in sectionInput) domain.DeductionBreakdown

var sectionCalculators = map[domain.SectionCode]sectionCalculator{
	domain.SectionHRA:       (*DeductionAggregator).hra,
	domain.Section80C:       (*DeductionAggregator).section80C,
	domain.Section80CCD1B:   simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.NPSAdditional80CCD1B }),
	domain.Section80CCD2:    (*DeductionAggregator).section80CCD2,
	domain.Section80D:       (*DeductionAggregator).section80D,
	domain.Section80DD:      disabilitySection(func(in domain.IncomeAndDeductionInputs) domain.DisabilityStatus { return in.DependentDisability }),
	domain.Section80DDB:     (*DeductionAggregator).section80DDB,
	domain.Section80E:       simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.StudentLoanInterest }),
	domain.Section24B:       simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.HomeLoanInterestSelfOccupied }),
	domain.Section24BLetOut: simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.HomeLoanInterestLetOut }),
	domain.Section80EEA:     (*DeductionAggregator).section80EEA,
	domain.Section80G:       (*DeductionAggregator).section80G,
	domain.Section80GG:      (*DeductionAggregator).section80GG,
	domain.Section80TTA:     simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.SavingsInterest }),
	domain.Section80TTB:     simpleSection(func(in domain.IncomeAndDeductionInputs) decimal.Decimal { return in.SavingsInterest.Add(in.DepositInterest) }),
	domain.Section80U:       disabilitySection(func(in domain.IncomeAndDeductionInputs) domain.DisabilityStatus { return in.SelfDisability }),
}

// Aggregate computes every section configured for the year. Sections are
// evaluated in domain.KnownSections order so dependent sections (80EEA after
// 24B) see their predecessors.
func (da *DeductionAggregator) Aggregate(profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs) DeductionSet {
	set := DeductionSet{
		Breakdown: make(map[domain.SectionCode]domain.DeductionBreakdown, len(da.Rules.DeductionLimits)),
		Total:     decimal.Zero,
	}
	city := da.Rules.CityClassification.Classify(profile.City)
	used := make(map[domain.SectionCode]decimal.Decimal, len(da.Rules.DeductionLimits))

	for _, code := range domain.KnownSections {
		limit, ok := da.Rules.Limit(code)
		if !ok {
			continue
		}
		calc, ok := sectionCalculators[code]
		if !ok {
			continue
		}

		in := sectionInput{code: code, limit: limit, profile: profile, inputs: inputs, city: city, used: used}
		entry := calc(da, in)
		entry.Section = code
		entry.Eligible = true

		if eligible, reason := EvaluateConditions(limit.Conditions, profile, inputs); !eligible {
			entry = ineligible(entry, reason)
		}

		used[code] = entry.Used
		set.Breakdown[code] = entry
		set.Total = set.Total.Add(entry.Used)
	}

	return set
}

// ApplyMarginalRate fills the tax-saving estimates of every section using the
// old-regime marginal rate at the current taxable income
func (set DeductionSet) ApplyMarginalRate(rate decimal.Decimal) {
	for code, entry := range set.Breakdown {
		entry.TaxSavedFromUsedApprox = entry.Used.Mul(rate).Round(2)
		if entry.RemainingCapacity != nil {
			entry.EstimatedTaxSavingIfFullyUsed = entry.RemainingCapacity.Mul(rate).Round(2)
		} else {
			entry.EstimatedTaxSavingIfFullyUsed = decimal.Zero
		}
		set.Breakdown[code] = entry
	}
}

// capped builds a breakdown for a contribution against an optional cap
func capped(contributed decimal.Decimal, limit *decimal.Decimal) domain.DeductionBreakdown {
	contributed = floorZero(contributed)
	entry := domain.DeductionBreakdown{Contributed: contributed, Used: contributed}
	if limit == nil {
		return entry
	}
	l := *limit
	entry.Used = decimal.Min(contributed, l)
	remaining := floorZero(l.Sub(entry.Used))
	entry.Limit = &l
	entry.RemainingCapacity = &remaining
	return entry
}

// ineligible zeroes the used amount but keeps the limit visible
func ineligible(entry domain.DeductionBreakdown, reason string) domain.DeductionBreakdown {
	entry.Used = decimal.Zero
	entry.Eligible = false
	entry.IneligibleReason = reason
	entry.Components = nil
	entry.SubCaps = nil
	if entry.Limit != nil {
		remaining := *entry.Limit
		entry.RemainingCapacity = &remaining
	}
	return entry
}

func simpleSection(amount func(domain.IncomeAndDeductionInputs) decimal.Decimal) sectionCalculator {
	return func(_ *DeductionAggregator, in sectionInput) domain.DeductionBreakdown {
		return capped(amount(in.inputs), in.limit.Limit)
	}
}

// disabilitySection grants the full limit (severe limit for severe cases) as
// a fixed deduction when the status is claimed
func disabilitySection(status func(domain.IncomeAndDeductionInputs) domain.DisabilityStatus) sectionCalculator {
	return func(_ *DeductionAggregator, in sectionInput) domain.DeductionBreakdown {
		s := status(in.inputs)
		limit := in.limit.Limit
		if s == domain.DisabilitySevere && in.limit.SevereLimit != nil {
			limit = in.limit.SevereLimit
		}
		if !s.Claimed() || limit == nil {
			return capped(decimal.Zero, limit)
		}
		return capped(*limit, limit)
	}
}

func (da *DeductionAggregator) hra(in sectionInput) domain.DeductionBreakdown {
	detail := HRAExemption(in.inputs, in.city, da.Rules.HRA)
	received := in.inputs.HRAReceived
	entry := capped(detail.Exemption, &received)
	entry.Contributed = received
	entry.Components = map[string]decimal.Decimal{
		ComponentHRARentExcess:  detail.RentExcess,
		ComponentHRASalaryShare: detail.SalaryShare,
	}
	return entry
}

// section80C sums every instrument sharing the combined cap before capping
func (da *DeductionAggregator) section80C(in sectionInput) domain.DeductionBreakdown {
	components := map[string]decimal.Decimal{
		Component80CInstruments:     in.inputs.Section80CInvestments,
		Component80CPension80CCC:    in.inputs.PensionFund80CCC,
		Component80CNPS80CCD1:       in.inputs.NPSEmployee80CCD1,
		Component80CHomeLoanPrincip: in.inputs.HomeLoanPrincipal,
	}
	total := decimal.Zero
	for _, v := range components {
		total = total.Add(floorZero(v))
	}
	entry := capped(total, in.limit.Limit)
	entry.Components = components
	return entry
}

// section80CCD2 caps employer NPS at a fraction of basic salary
func (da *DeductionAggregator) section80CCD2(in sectionInput) domain.DeductionBreakdown {
	limit := in.limit.Limit
	if in.limit.SalaryFraction != nil {
		salaryCap := in.inputs.BasicSalary.Mul(*in.limit.SalaryFraction)
		if limit != nil {
			salaryCap = decimal.Min(salaryCap, *limit)
		}
		limit = &salaryCap
	}
	return capped(in.inputs.NPSEmployer80CCD2, limit)
}

// section80D tracks the self and parents sub-caps independently
func (da *DeductionAggregator) section80D(in sectionInput) domain.DeductionBreakdown {
	selfCaps := da.caps80D(IsSenior(in.profile.Age))
	parentCaps := da.caps80D(in.inputs.ParentsSenior)

	self := subCap(in.inputs.HealthInsuranceSelf, selfCaps.Self)
	parents := subCap(in.inputs.HealthInsuranceParents, parentCaps.Parents)

	limit := self.Limit.Add(parents.Limit)
	remaining := self.RemainingCapacity.Add(parents.RemainingCapacity)
	return domain.DeductionBreakdown{
		Contributed:       self.Contributed.Add(parents.Contributed),
		Used:              self.Used.Add(parents.Used),
		Limit:             &limit,
		RemainingCapacity: &remaining,
		SubCaps: map[string]domain.SubCap{
			SubCapSelf:    self,
			SubCapParents: parents,
		},
	}
}

func (da *DeductionAggregator) caps80D(senior bool) domain.Section80DCaps {
	if senior {
		if caps, ok := da.Rules.Section80DLimits[domain.CategorySenior]; ok {
			return caps
		}
	}
	return da.Rules.Section80DLimits[domain.CategoryGeneral]
}

func subCap(contributed, limit decimal.Decimal) domain.SubCap {
	contributed = floorZero(contributed)
	used := decimal.Min(contributed, limit)
	return domain.SubCap{
		Contributed:       contributed,
		Used:              used,
		Limit:             limit,
		RemainingCapacity: floorZero(limit.Sub(used)),
	}
}

// section80DDB uses the senior limit for taxpayers aged 60+
func (da *DeductionAggregator) section80DDB(in sectionInput) domain.DeductionBreakdown {
	limit := in.limit.Limit
	if IsSenior(in.profile.Age) && in.limit.SeniorLimit != nil {
		limit = in.limit.SeniorLimit
	}
	return capped(in.inputs.CriticalIllnessExpense, limit)
}

// section80EEA allows interest beyond what 24B already absorbed
func (da *DeductionAggregator) section80EEA(in sectionInput) domain.DeductionBreakdown {
	excess := in.inputs.HomeLoanInterestSelfOccupied.Sub(in.used[domain.Section24B])
	return capped(excess, in.limit.Limit)
}

func (da *DeductionAggregator) section80G(in sectionInput) domain.DeductionBreakdown {
	half := in.inputs.Donations50Percent.Mul(decimal.NewFromFloat(0.5))
	entry := capped(in.inputs.Donations100Percent.Add(half), in.limit.Limit)
	entry.Components = map[string]decimal.Decimal{
		ComponentDonations100: in.inputs.Donations100Percent,
		ComponentDonations50:  in.inputs.Donations50Percent,
	}
	return entry
}

func (da *DeductionAggregator) section80GG(in sectionInput) domain.DeductionBreakdown {
	allowance := Section80GGAllowance(in.inputs, in.limit, da.Rules.HRA.RentExcessSalaryFraction)
	entry := capped(allowance, in.limit.Limit)
	entry.Contributed = in.inputs.RentPaid
	return entry
}
