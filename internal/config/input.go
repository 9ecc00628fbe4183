package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CalculationRequest is a single calculation as read from a request file
type CalculationRequest struct {
	FiscalYear string                           `yaml:"fiscal_year" json:"fiscal_year"`
	Profile    ProfileInput                     `yaml:"profile" json:"profile"`
	Inputs     domain.IncomeAndDeductionInputs `yaml:"inputs" json:"inputs"`
}

// ProfileInput is the taxpayer as written by the caller. Either Age or
// BirthDate is required; BirthDate wins when both are given.
type ProfileInput struct {
	Name      string     `yaml:"name,omitempty" json:"name,omitempty"`
	Age       *int       `yaml:"age,omitempty" json:"age,omitempty"`
	BirthDate *time.Time `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	Gender    string     `yaml:"gender,omitempty" json:"gender,omitempty"`
	City      string     `yaml:"city" json:"city"`
	Resident  *bool      `yaml:"resident,omitempty" json:"resident,omitempty"` // Defaults to true
}

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a calculation request
func (ip *InputParser) Parse(data []byte) (*CalculationRequest, error) {
	var req CalculationRequest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v: %w", err, domain.ErrInvalidInput)
	}

	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	return &req, nil
}

// ValidateRequest performs the boundary validation the engine relies on:
// a usable profile and non-negative amounts. Failures wrap domain.ErrInvalidInput.
func (ip *InputParser) ValidateRequest(req *CalculationRequest) error {
	if err := ip.validateProfile(&req.Profile); err != nil {
		return fmt.Errorf("profile: %v: %w", err, domain.ErrInvalidInput)
	}
	if err := ip.validateInputs(&req.Inputs); err != nil {
		return fmt.Errorf("inputs: %v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}

func (ip *InputParser) validateProfile(p *ProfileInput) error {
	if p.Age == nil && p.BirthDate == nil {
		return fmt.Errorf("age or birth date is required")
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 120) {
		return fmt.Errorf("age must be between 0 and 120, got %d", *p.Age)
	}
	if p.BirthDate != nil && p.BirthDate.IsZero() {
		return fmt.Errorf("birth date is invalid")
	}
	if _, ok := domain.ParseGender(p.Gender); !ok {
		return fmt.Errorf("unknown gender %q", p.Gender)
	}
	return nil
}

func (ip *InputParser) validateInputs(in *domain.IncomeAndDeductionInputs) error {
	for _, a := range amounts(in) {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}
	if in.BasicSalary.GreaterThan(in.GrossIncome) {
		return fmt.Errorf("basic salary cannot exceed gross income")
	}
	if in.HRAReceived.GreaterThan(in.GrossIncome) {
		return fmt.Errorf("HRA received cannot exceed gross income")
	}
	if !in.DependentDisability.IsValid() {
		return fmt.Errorf("unknown dependent disability %q", in.DependentDisability)
	}
	if !in.SelfDisability.IsValid() {
		return fmt.Errorf("unknown self disability %q", in.SelfDisability)
	}
	return nil
}

type namedAmount struct {
	name  string
	value decimal.Decimal
}

func amounts(in *domain.IncomeAndDeductionInputs) []namedAmount {
	return []namedAmount{
		{"gross income", in.GrossIncome},
		{"basic salary", in.BasicSalary},
		{"HRA received", in.HRAReceived},
		{"rent paid", in.RentPaid},
		{"self-occupied home loan interest", in.HomeLoanInterestSelfOccupied},
		{"let-out home loan interest", in.HomeLoanInterestLetOut},
		{"home loan principal", in.HomeLoanPrincipal},
		{"80C investments", in.Section80CInvestments},
		{"80CCC pension fund", in.PensionFund80CCC},
		{"80CCD(1) NPS employee contribution", in.NPSEmployee80CCD1},
		{"80CCD(1B) NPS additional contribution", in.NPSAdditional80CCD1B},
		{"80CCD(2) NPS employer contribution", in.NPSEmployer80CCD2},
		{"self health insurance", in.HealthInsuranceSelf},
		{"parents health insurance", in.HealthInsuranceParents},
		{"critical illness expense", in.CriticalIllnessExpense},
		{"student loan interest", in.StudentLoanInterest},
		{"100% donations", in.Donations100Percent},
		{"50% donations", in.Donations50Percent},
		{"savings interest", in.SavingsInterest},
		{"deposit interest", in.DepositInterest},
	}
}

// TaxpayerProfile resolves the request profile. Age is taken from the birth
// date at the reference date when one is given.
func (r *CalculationRequest) TaxpayerProfile(referenceDate time.Time) domain.TaxpayerProfile {
	gender, _ := domain.ParseGender(r.Profile.Gender)
	profile := domain.TaxpayerProfile{
		Gender:   gender,
		City:     r.Profile.City,
		Resident: r.Profile.Resident == nil || *r.Profile.Resident,
	}
	switch {
	case r.Profile.BirthDate != nil:
		profile.Age = domain.AgeOn(*r.Profile.BirthDate, referenceDate)
	case r.Profile.Age != nil:
		profile.Age = *r.Profile.Age
	}
	return profile
}

// AgeReferenceDate is the date ages are computed at for a fiscal year: the
// configured date, otherwise 31 March of the year's closing calendar year.
func AgeReferenceDate(rules *domain.FiscalYearRules) time.Time {
	if !rules.AgeReferenceDate.IsZero() {
		return rules.AgeReferenceDate
	}
	start, _, ok := strings.Cut(rules.Year, "-")
	if !ok {
		return time.Time{}
	}
	y, err := strconv.Atoi(start)
	if err != nil {
		return time.Time{}
	}
	return time.Date(y+1, time.March, 31, 0, 0, 0, 0, time.UTC)
}
