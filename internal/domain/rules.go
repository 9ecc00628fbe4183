package domain

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RuleSet is a complete rule table keyed by fiscal year ("2023-24").
// It is loaded once, validated, and never mutated afterwards.
type RuleSet struct {
	FiscalYears map[string]*FiscalYearRules `yaml:"fiscal_years" json:"fiscal_years" toml:"fiscal_years"`
}

// FiscalYearRules contains every statutory parameter for one fiscal year.
// Values are shared read-only between concurrent calculations.
type FiscalYearRules struct {
	Year               string                          `yaml:"year" json:"year" toml:"year"`
	Description        string                          `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	AgeReferenceDate   time.Time                       `yaml:"age_reference_date,omitempty" json:"age_reference_date,omitempty" toml:"age_reference_date"` // Age snapshot, usually the last day of the year
	StandardDeduction  decimal.Decimal                 `yaml:"standard_deduction" json:"standard_deduction" toml:"standard_deduction"`
	Rebate             Rebate                          `yaml:"rebate" json:"rebate" toml:"rebate"`
	CessRate           decimal.Decimal                 `yaml:"cess_rate" json:"cess_rate" toml:"cess_rate"`
	SurchargeTiers     []SurchargeTier                 `yaml:"surcharge_tiers" json:"surcharge_tiers" toml:"surcharge_tiers"`
	OldRegime          RegimeRules                     `yaml:"old_regime" json:"old_regime" toml:"old_regime"`
	NewRegime          RegimeRules                     `yaml:"new_regime" json:"new_regime" toml:"new_regime"`
	CityClassification CityClassification              `yaml:"city_classification" json:"city_classification" toml:"city_classification"`
	HRA                HRARules                        `yaml:"hra" json:"hra" toml:"hra"`
	DeductionLimits    map[SectionCode]DeductionLimit  `yaml:"deduction_limits" json:"deduction_limits" toml:"deduction_limits"`
	Section80DLimits   map[SlabCategory]Section80DCaps `yaml:"section_80d_limits" json:"section_80d_limits" toml:"section_80d_limits"`
}

// Slab is one marginal bracket. A nil UpperBound means unbounded and is only
// valid on the last slab of a set.
type Slab struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound" json:"upper_bound" toml:"upper_bound"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate" toml:"rate"`
}

// Rebate is the section 87A style credit for low taxable incomes
type Rebate struct {
	Limit           decimal.Decimal `yaml:"limit" json:"limit" toml:"limit"`
	IncomeThreshold decimal.Decimal `yaml:"income_threshold" json:"income_threshold" toml:"income_threshold"`
	ResidentsOnly   bool            `yaml:"residents_only" json:"residents_only" toml:"residents_only"`
}

// SurchargeTier applies Rate to the whole base tax once income reaches IncomeThreshold
type SurchargeTier struct {
	IncomeThreshold decimal.Decimal `yaml:"income_threshold" json:"income_threshold" toml:"income_threshold"`
	Rate            decimal.Decimal `yaml:"rate" json:"rate" toml:"rate"`
}

// RegimeRules holds the slab sets of a regime plus optional overrides of the
// year-level standard deduction, rebate and surcharge schedule.
type RegimeRules struct {
	Slabs             map[SlabCategory][]Slab `yaml:"slabs" json:"slabs" toml:"slabs"`
	StandardDeduction *decimal.Decimal        `yaml:"standard_deduction,omitempty" json:"standard_deduction,omitempty" toml:"standard_deduction"`
	Rebate            *Rebate                 `yaml:"rebate,omitempty" json:"rebate,omitempty" toml:"rebate"`
	SurchargeTiers    []SurchargeTier         `yaml:"surcharge_tiers,omitempty" json:"surcharge_tiers,omitempty" toml:"surcharge_tiers"`
}

// CityClassification lists the cities treated as metro and non-metro for HRA
type CityClassification struct {
	Metro    []string `yaml:"metro" json:"metro" toml:"metro"`
	NonMetro []string `yaml:"non_metro" json:"non_metro" toml:"non_metro"`
}

// HRARules are the salary fractions of the three-way HRA exemption minimum
type HRARules struct {
	MetroSalaryFraction      decimal.Decimal `yaml:"metro_salary_fraction" json:"metro_salary_fraction" toml:"metro_salary_fraction"`
	NonMetroSalaryFraction   decimal.Decimal `yaml:"non_metro_salary_fraction" json:"non_metro_salary_fraction" toml:"non_metro_salary_fraction"`
	RentExcessSalaryFraction decimal.Decimal `yaml:"rent_excess_salary_fraction" json:"rent_excess_salary_fraction" toml:"rent_excess_salary_fraction"`
}

// DeductionLimit describes the statutory cap of a section. A nil Limit is unlimited.
type DeductionLimit struct {
	Limit          *decimal.Decimal `yaml:"limit" json:"limit" toml:"limit"`
	SeniorLimit    *decimal.Decimal `yaml:"senior_limit,omitempty" json:"senior_limit,omitempty" toml:"senior_limit"`       // Replaces Limit for taxpayers aged 60+
	SevereLimit    *decimal.Decimal `yaml:"severe_limit,omitempty" json:"severe_limit,omitempty" toml:"severe_limit"`       // Replaces Limit for severe disability
	SalaryFraction *decimal.Decimal `yaml:"salary_fraction,omitempty" json:"salary_fraction,omitempty" toml:"salary_fraction"` // Cap as a fraction of basic salary
	IncomeFraction *decimal.Decimal `yaml:"income_fraction,omitempty" json:"income_fraction,omitempty" toml:"income_fraction"` // Cap as a fraction of gross income
	Optimizable    bool             `yaml:"optimizable,omitempty" json:"optimizable,omitempty" toml:"optimizable"`
	Conditions     []Condition      `yaml:"conditions,omitempty" json:"conditions,omitempty" toml:"conditions"`
}

// Condition is a typed predicate over a closed set of profile and input fields
type Condition struct {
	Field    ConditionField    `yaml:"field" json:"field" toml:"field"`
	Operator ConditionOperator `yaml:"operator" json:"operator" toml:"operator"`
	Value    ConditionValue    `yaml:"value" json:"value" toml:"value"`
}

// ConditionValue holds the raw operand of a condition. It accepts any scalar
// so that rule files may write `value: true` or `value: 60` unquoted.
type ConditionValue string

// UnmarshalText implements encoding.TextUnmarshaler
func (v *ConditionValue) UnmarshalText(text []byte) error {
	*v = ConditionValue(strings.TrimSpace(string(text)))
	return nil
}

// Section80DCaps are the independent self/family and parents sub-caps of 80D
type Section80DCaps struct {
	Self    decimal.Decimal `yaml:"self" json:"self" toml:"self"`
	Parents decimal.Decimal `yaml:"parents" json:"parents" toml:"parents"`
}

// Regime returns the rules of the given regime
func (r *FiscalYearRules) Regime(regime Regime) *RegimeRules {
	if regime == RegimeNew {
		return &r.NewRegime
	}
	return &r.OldRegime
}

// StandardDeductionFor returns the regime override when present, otherwise
// the year standard deduction
func (r *FiscalYearRules) StandardDeductionFor(regime Regime) decimal.Decimal {
	if rr := r.Regime(regime); rr.StandardDeduction != nil {
		return *rr.StandardDeduction
	}
	return r.StandardDeduction
}

// RebateFor returns the regime override when present, otherwise the year rebate
func (r *FiscalYearRules) RebateFor(regime Regime) Rebate {
	if rr := r.Regime(regime); rr.Rebate != nil {
		return *rr.Rebate
	}
	return r.Rebate
}

// SurchargeTiersFor returns the regime override when present, otherwise the year tiers
func (r *FiscalYearRules) SurchargeTiersFor(regime Regime) []SurchargeTier {
	if rr := r.Regime(regime); len(rr.SurchargeTiers) > 0 {
		return rr.SurchargeTiers
	}
	return r.SurchargeTiers
}

// SlabsFor returns the slab set for a regime and category
func (r *FiscalYearRules) SlabsFor(regime Regime, category SlabCategory) ([]Slab, bool) {
	slabs, ok := r.Regime(regime).Slabs[category]
	return slabs, ok
}

// Limit returns the deduction limit configured for a section
func (r *FiscalYearRules) Limit(section SectionCode) (DeductionLimit, bool) {
	l, ok := r.DeductionLimits[section]
	return l, ok
}

// Classify normalizes a city name to metro or non-metro. Matching is
// case-insensitive; the literal "metro" is accepted, and any city not in
// the metro list is non-metro.
func (c CityClassification) Classify(city string) CityType {
	name := strings.ToLower(strings.TrimSpace(city))
	if name == string(CityMetro) {
		return CityMetro
	}
	for _, m := range c.Metro {
		if strings.ToLower(strings.TrimSpace(m)) == name {
			return CityMetro
		}
	}
	return CityNonMetro
}

// Clone returns a deep copy of the rule set
func (s *RuleSet) Clone() *RuleSet {
	if s == nil {
		return nil
	}
	out := &RuleSet{FiscalYears: make(map[string]*FiscalYearRules, len(s.FiscalYears))}
	for year, rules := range s.FiscalYears {
		out.FiscalYears[year] = rules.Clone()
	}
	return out
}

// Clone returns a deep copy of the rules. Decimal values are copied by value;
// only pointers, slices and maps need fresh backing storage.
func (r *FiscalYearRules) Clone() *FiscalYearRules {
	if r == nil {
		return nil
	}
	out := *r
	out.SurchargeTiers = slices.Clone(r.SurchargeTiers)
	out.OldRegime = r.OldRegime.clone()
	out.NewRegime = r.NewRegime.clone()
	out.CityClassification = CityClassification{
		Metro:    slices.Clone(r.CityClassification.Metro),
		NonMetro: slices.Clone(r.CityClassification.NonMetro),
	}
	if r.DeductionLimits != nil {
		out.DeductionLimits = make(map[SectionCode]DeductionLimit, len(r.DeductionLimits))
		for code, l := range r.DeductionLimits {
			out.DeductionLimits[code] = l.clone()
		}
	}
	out.Section80DLimits = maps.Clone(r.Section80DLimits)
	return &out
}

func (rr RegimeRules) clone() RegimeRules {
	out := rr
	if rr.Slabs != nil {
		out.Slabs = make(map[SlabCategory][]Slab, len(rr.Slabs))
		for category, slabs := range rr.Slabs {
			copied := make([]Slab, len(slabs))
			for i, sl := range slabs {
				copied[i] = Slab{UpperBound: cloneDecimal(sl.UpperBound), Rate: sl.Rate}
			}
			out.Slabs[category] = copied
		}
	}
	out.StandardDeduction = cloneDecimal(rr.StandardDeduction)
	if rr.Rebate != nil {
		rebate := *rr.Rebate
		out.Rebate = &rebate
	}
	out.SurchargeTiers = slices.Clone(rr.SurchargeTiers)
	return out
}

func (l DeductionLimit) clone() DeductionLimit {
	out := l
	out.Limit = cloneDecimal(l.Limit)
	out.SeniorLimit = cloneDecimal(l.SeniorLimit)
	out.SevereLimit = cloneDecimal(l.SevereLimit)
	out.SalaryFraction = cloneDecimal(l.SalaryFraction)
	out.IncomeFraction = cloneDecimal(l.IncomeFraction)
	out.Conditions = slices.Clone(l.Conditions)
	return out
}

func cloneDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
