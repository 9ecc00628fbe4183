package domain

import "errors"

var (
	// ErrUnknownFiscalYear is returned when a requested year has no rule table
	ErrUnknownFiscalYear = errors.New("unknown fiscal year")

	// ErrInvalidRuleData is returned when a rule table fails validation at load
	ErrInvalidRuleData = errors.New("invalid rule data")

	// ErrInvalidInput is returned by boundary validation of request data
	ErrInvalidInput = errors.New("invalid input")
)
