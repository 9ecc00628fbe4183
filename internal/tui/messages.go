package tui

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// CalculationCompleteMsg carries the outcome of a recalculation. Seq
// identifies the request that produced it.
type CalculationCompleteMsg struct {
	Seq        int
	FiscalYear string
	Result     *domain.TaxCalculationResult
	Err        error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
