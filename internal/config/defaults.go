package config

import (
	_ "embed"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

//go:embed fiscal_years.yaml
var defaultRulesYAML []byte

// DefaultRulesYAML returns a copy of the embedded rule table
func DefaultRulesYAML() []byte {
	out := make([]byte, len(defaultRulesYAML))
	copy(out, defaultRulesYAML)
	return out
}

// LoadDefaultRules parses and validates the embedded rule table
func LoadDefaultRules() (*domain.RuleSet, error) {
	return NewRulesLoader().LoadFromBytes(defaultRulesYAML, FormatYAML)
}
