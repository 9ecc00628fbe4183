package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/compare"
	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// RuleSource is a rule provider that can list its fiscal years
type RuleSource interface {
	calculation.RuleProvider
	Years() []string
}

// field is an input amount the explorer lets the user adjust
type field struct {
	label  string
	amount func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal
}

var fields = []field{
	{"Gross income", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.GrossIncome }},
	{"80C investments", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.Section80CInvestments }},
	{"NPS 80CCD(1B)", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.NPSAdditional80CCD1B }},
	{"Health insurance (self)", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.HealthInsuranceSelf }},
	{"Health insurance (parents)", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.HealthInsuranceParents }},
	{"Home loan interest", func(in *domain.IncomeAndDeductionInputs) *decimal.Decimal { return &in.HomeLoanInterestSelfOccupied }},
}

// Step is the amount one key press adds to or removes from a field
var Step = decimal.NewFromInt(10000)

// Model is a what-if explorer over a single calculation request
type Model struct {
	request    *config.CalculationRequest
	inputs     domain.IncomeAndDeductionInputs
	rules      RuleSource
	comparator *compare.Comparator

	years     []string
	yearIndex int
	cursor    int
	seq       int // latest calculation request; older results are dropped

	result     *domain.TaxCalculationResult
	err        error
	calculated bool

	help   help.Model
	width  int
	height int
}

// NewModel creates an explorer for the request, starting at the given fiscal year
func NewModel(request *config.CalculationRequest, rules RuleSource, comparator *compare.Comparator, year string) Model {
	years := rules.Years()
	index := 0
	for i, y := range years {
		if y == year {
			index = i
		}
	}

	return Model{
		request:    request,
		inputs:     request.Inputs,
		rules:      rules,
		comparator: comparator,
		years:      years,
		yearIndex:  index,
		help:       help.New(),
		width:      80,
		height:     24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.calculateCmd()
}

// FiscalYear returns the year currently shown
func (m Model) FiscalYear() string {
	if len(m.years) == 0 {
		return ""
	}
	return m.years[m.yearIndex]
}

// Inputs returns the adjusted inputs
func (m Model) Inputs() domain.IncomeAndDeductionInputs {
	return m.inputs
}

// Result returns the latest calculation result, nil before the first one
func (m Model) Result() *domain.TaxCalculationResult {
	return m.result
}

// calculateCmd returns a command that runs both regimes for the current
// state, tagged with the current sequence number
func (m Model) calculateCmd() tea.Cmd {
	seq := m.seq
	year := m.FiscalYear()
	inputs := m.inputs
	request := m.request
	rules := m.rules
	comparator := m.comparator

	return func() tea.Msg {
		fyRules, err := rules.GetRules(year)
		if err != nil {
			return CalculationCompleteMsg{Seq: seq, FiscalYear: year, Err: err}
		}
		profile := request.TaxpayerProfile(config.AgeReferenceDate(fyRules))
		result, err := comparator.Calculate(profile, inputs, year)
		return CalculationCompleteMsg{Seq: seq, FiscalYear: year, Result: result, Err: err}
	}
}
