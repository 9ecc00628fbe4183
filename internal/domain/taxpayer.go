package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxpayerProfile describes the person being assessed
type TaxpayerProfile struct {
	Age      int    `yaml:"age" json:"age"`
	Gender   Gender `yaml:"gender,omitempty" json:"gender,omitempty"` // Reporting only
	City     string `yaml:"city" json:"city"`
	Resident bool   `yaml:"resident" json:"resident"`
}

// AgeOn returns completed years of age at the given date
func AgeOn(birthDate, at time.Time) int {
	if at.Before(birthDate) {
		return 0
	}
	age := at.Year() - birthDate.Year()
	if at.Month() < birthDate.Month() || (at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// IncomeAndDeductionInputs carries annual income figures and per-section
// contributions. All amounts are non-negative; validation happens upstream.
type IncomeAndDeductionInputs struct {
	// Income
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"gross_income"` // Total annual income including HRA
	BasicSalary decimal.Decimal `yaml:"basic_salary" json:"basic_salary"` // Basic pay; zero for non-salaried taxpayers
	HRAReceived decimal.Decimal `yaml:"hra_received" json:"hra_received"`
	RentPaid    decimal.Decimal `yaml:"rent_paid" json:"rent_paid"` // Annual rent

	// Housing loan
	HomeLoanInterestSelfOccupied decimal.Decimal `yaml:"home_loan_interest_self_occupied" json:"home_loan_interest_self_occupied"`
	HomeLoanInterestLetOut       decimal.Decimal `yaml:"home_loan_interest_let_out" json:"home_loan_interest_let_out"`
	HomeLoanPrincipal            decimal.Decimal `yaml:"home_loan_principal" json:"home_loan_principal"`
	FirstTimeHomeBuyer           bool            `yaml:"first_time_home_buyer" json:"first_time_home_buyer"`

	// 80C family and pension
	Section80CInvestments decimal.Decimal `yaml:"section_80c_investments" json:"section_80c_investments"` // PPF, ELSS, life insurance, tuition ...
	PensionFund80CCC      decimal.Decimal `yaml:"pension_fund_80ccc" json:"pension_fund_80ccc"`
	NPSEmployee80CCD1     decimal.Decimal `yaml:"nps_employee_80ccd1" json:"nps_employee_80ccd1"`
	NPSAdditional80CCD1B  decimal.Decimal `yaml:"nps_additional_80ccd1b" json:"nps_additional_80ccd1b"`
	NPSEmployer80CCD2     decimal.Decimal `yaml:"nps_employer_80ccd2" json:"nps_employer_80ccd2"`

	// Health
	HealthInsuranceSelf    decimal.Decimal  `yaml:"health_insurance_self" json:"health_insurance_self"`
	HealthInsuranceParents decimal.Decimal  `yaml:"health_insurance_parents" json:"health_insurance_parents"`
	ParentsSenior          bool             `yaml:"parents_senior" json:"parents_senior"`
	DependentDisability    DisabilityStatus `yaml:"dependent_disability,omitempty" json:"dependent_disability,omitempty"`
	SelfDisability         DisabilityStatus `yaml:"self_disability,omitempty" json:"self_disability,omitempty"`
	CriticalIllnessExpense decimal.Decimal  `yaml:"critical_illness_expense" json:"critical_illness_expense"`

	// Other
	StudentLoanInterest decimal.Decimal `yaml:"student_loan_interest" json:"student_loan_interest"`
	Donations100Percent decimal.Decimal `yaml:"donations_100_percent" json:"donations_100_percent"`
	Donations50Percent  decimal.Decimal `yaml:"donations_50_percent" json:"donations_50_percent"`
	SavingsInterest     decimal.Decimal `yaml:"savings_interest" json:"savings_interest"`
	DepositInterest     decimal.Decimal `yaml:"deposit_interest" json:"deposit_interest"`
}

// PropertySelfOccupied reports whether interest is paid on a self-occupied property
func (in IncomeAndDeductionInputs) PropertySelfOccupied() bool {
	return in.HomeLoanInterestSelfOccupied.GreaterThan(decimal.Zero)
}
