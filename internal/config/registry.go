package config

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// Registry serves validated rule tables to concurrent calculations. The
// table is swapped as a whole, so readers see either the old or the new
// set and never a mix.
type Registry struct {
	current atomic.Pointer[domain.RuleSet]
}

// NewRegistry validates set and wraps it in a registry
func NewRegistry(set *domain.RuleSet) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(set); err != nil {
		return nil, err
	}
	return r, nil
}

// NewDefaultRegistry builds a registry over the embedded rule table
func NewDefaultRegistry() (*Registry, error) {
	set, err := LoadDefaultRules()
	if err != nil {
		return nil, err
	}
	return NewRegistry(set)
}

// GetRules returns the rules of a fiscal year. The returned rules are
// shared with every other caller and must not be modified.
func (r *Registry) GetRules(year string) (*domain.FiscalYearRules, error) {
	set := r.current.Load()
	if set != nil {
		if rules, ok := set.FiscalYears[year]; ok {
			return rules, nil
		}
	}
	return nil, fmt.Errorf("fiscal year %q (available: %v): %w", year, r.Years(), domain.ErrUnknownFiscalYear)
}

// Years lists the configured fiscal years in ascending order
func (r *Registry) Years() []string {
	set := r.current.Load()
	if set == nil {
		return nil
	}
	years := make([]string, 0, len(set.FiscalYears))
	for year := range set.FiscalYears {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

// Latest returns the most recent configured fiscal year
func (r *Registry) Latest() string {
	years := r.Years()
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

// Replace validates set and installs a private copy of it atomically, so
// later changes to set by the caller are not seen by readers. On error the
// current table stays in place.
func (r *Registry) Replace(set *domain.RuleSet) error {
	if err := NewRulesLoader().ValidateRules(set); err != nil {
		return err
	}
	r.current.Store(set.Clone())
	return nil
}

// ReloadFromFile loads a rule file and swaps it in
func (r *Registry) ReloadFromFile(filename string) error {
	set, err := NewRulesLoader().LoadFromFile(filename)
	if err != nil {
		return err
	}
	r.current.Store(set)
	return nil
}
