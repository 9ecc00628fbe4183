package domain

import "strings"

// Regime identifies one of the two alternative statutory tax regimes
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// DisplayName returns the name shown to taxpayers ("Old Regime" / "New Regime")
func (r Regime) DisplayName() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return string(r)
	}
}

// IsValid reports whether r is a known regime
func (r Regime) IsValid() bool {
	return r == RegimeOld || r == RegimeNew
}

// SlabCategory selects which slab set of a regime applies to a taxpayer
type SlabCategory string

const (
	CategoryGeneral     SlabCategory = "general"
	CategorySenior      SlabCategory = "senior"
	CategorySuperSenior SlabCategory = "super_senior"
)

// IsValid reports whether c is a known slab category
func (c SlabCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategorySenior, CategorySuperSenior:
		return true
	}
	return false
}

// CityType is the HRA city classification of the taxpayer's residence
type CityType string

const (
	CityMetro    CityType = "metro"
	CityNonMetro CityType = "non_metro"
)

// Gender is retained for reporting only; no computation reads it
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
)

// ParseGender normalizes free-form gender input. Unknown values return false.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return GenderUnspecified, true
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	case "other":
		return GenderOther, true
	}
	return GenderUnspecified, false
}

// DisabilityStatus drives the fixed-amount disability deductions (80DD, 80U)
type DisabilityStatus string

const (
	DisabilityNone     DisabilityStatus = "none"
	DisabilityStandard DisabilityStatus = "standard" // 40% or more
	DisabilitySevere   DisabilityStatus = "severe"   // 80% or more
)

// IsValid reports whether d is a known disability status. The empty value
// is treated as none.
func (d DisabilityStatus) IsValid() bool {
	switch d {
	case "", DisabilityNone, DisabilityStandard, DisabilitySevere:
		return true
	}
	return false
}

// Claimed reports whether the status entitles the taxpayer to a deduction
func (d DisabilityStatus) Claimed() bool {
	return d == DisabilityStandard || d == DisabilitySevere
}

// SectionCode identifies a statutory deduction or exemption category
type SectionCode string

const (
	Section80C       SectionCode = "80C"
	Section80CCD1B   SectionCode = "80CCD(1B)"
	Section80CCD2    SectionCode = "80CCD(2)"
	Section80D       SectionCode = "80D"
	Section80DD      SectionCode = "80DD"
	Section80DDB     SectionCode = "80DDB"
	Section80E       SectionCode = "80E"
	Section80EEA     SectionCode = "80EEA"
	Section80G       SectionCode = "80G"
	Section80GG      SectionCode = "80GG"
	Section80TTA     SectionCode = "80TTA"
	Section80TTB     SectionCode = "80TTB"
	Section80U       SectionCode = "80U"
	Section24B       SectionCode = "24B"
	Section24BLetOut SectionCode = "24B-LETOUT"
	SectionHRA       SectionCode = "HRA"
)

// KnownSections lists every section the deduction aggregator can compute,
// in reporting order.
var KnownSections = []SectionCode{
	SectionHRA,
	Section80C,
	Section80CCD1B,
	Section80CCD2,
	Section80D,
	Section80DD,
	Section80DDB,
	Section80E,
	Section24B,
	Section24BLetOut,
	Section80EEA,
	Section80G,
	Section80GG,
	Section80TTA,
	Section80TTB,
	Section80U,
}

// IsKnown reports whether s is computable by the aggregator
func (s SectionCode) IsKnown() bool {
	for _, k := range KnownSections {
		if k == s {
			return true
		}
	}
	return false
}

// ConditionField names a profile or input attribute a rule condition may test
type ConditionField string

const (
	FieldAge                  ConditionField = "age"
	FieldResident             ConditionField = "resident"
	FieldFirstTimeHomeBuyer   ConditionField = "first_time_home_buyer"
	FieldPropertySelfOccupied ConditionField = "property_self_occupied"
	FieldHRAReceived          ConditionField = "hra_received"
	FieldRentPaid             ConditionField = "rent_paid"
	FieldBasicSalary          ConditionField = "basic_salary"
)

// IsBoolean reports whether the field holds a flag rather than an amount
func (f ConditionField) IsBoolean() bool {
	switch f {
	case FieldResident, FieldFirstTimeHomeBuyer, FieldPropertySelfOccupied:
		return true
	}
	return false
}

// IsValid reports whether f is a known condition field
func (f ConditionField) IsValid() bool {
	switch f {
	case FieldAge, FieldResident, FieldFirstTimeHomeBuyer, FieldPropertySelfOccupied,
		FieldHRAReceived, FieldRentPaid, FieldBasicSalary:
		return true
	}
	return false
}

// ConditionOperator is the comparison a rule condition applies
type ConditionOperator string

const (
	OpEqual        ConditionOperator = "eq"
	OpNotEqual     ConditionOperator = "ne"
	OpLess         ConditionOperator = "lt"
	OpLessEqual    ConditionOperator = "lte"
	OpGreater      ConditionOperator = "gt"
	OpGreaterEqual ConditionOperator = "gte"
)

// IsValid reports whether o is a known operator
func (o ConditionOperator) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// IsOrdering reports whether o needs an ordered (numeric) operand
func (o ConditionOperator) IsOrdering() bool {
	return o != OpEqual && o != OpNotEqual
}
