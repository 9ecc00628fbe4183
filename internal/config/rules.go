package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a rule table file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported rule file extension %q (want .yaml, .yml, .json or .toml)", filepath.Ext(path))
}

// RulesLoader reads and validates fiscal-year rule tables
type RulesLoader struct{}

// NewRulesLoader creates a new rules loader
func NewRulesLoader() *RulesLoader {
	return &RulesLoader{}
}

// LoadFromFile loads a rule table from a YAML, JSON or TOML file
func (rl *RulesLoader) LoadFromFile(filename string) (*domain.RuleSet, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return rl.LoadFromBytes(data, format)
}

// LoadFromBytes parses and validates a rule table. JSON is decoded with the
// YAML decoder, which accepts it as a subset.
func (rl *RulesLoader) LoadFromBytes(data []byte, format Format) (*domain.RuleSet, error) {
	var set domain.RuleSet

	switch format {
	case FormatYAML, FormatJSON:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return nil, fmt.Errorf("failed to parse %s rules: %v: %w", format, err, domain.ErrInvalidRuleData)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &set)
		if err != nil {
			return nil, fmt.Errorf("failed to parse toml rules: %v: %w", err, domain.ErrInvalidRuleData)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in toml rules: %v: %w", undecoded, domain.ErrInvalidRuleData)
		}
	default:
		return nil, fmt.Errorf("unsupported rule format %q", format)
	}

	// Year may be left out of a table and defaults to its key
	for key, rules := range set.FiscalYears {
		if rules != nil && rules.Year == "" {
			rules.Year = key
		}
	}

	if err := rl.ValidateRules(&set); err != nil {
		return nil, err
	}

	return &set, nil
}

// ValidateRules checks the structural invariants of every fiscal year.
// Any failure wraps domain.ErrInvalidRuleData.
func (rl *RulesLoader) ValidateRules(set *domain.RuleSet) error {
	if set == nil || len(set.FiscalYears) == 0 {
		return fmt.Errorf("no fiscal years defined: %w", domain.ErrInvalidRuleData)
	}

	years := make([]string, 0, len(set.FiscalYears))
	for year := range set.FiscalYears {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		if err := rl.validateFiscalYear(year, set.FiscalYears[year]); err != nil {
			return fmt.Errorf("fiscal year %s: %v: %w", year, err, domain.ErrInvalidRuleData)
		}
	}
	return nil
}

func (rl *RulesLoader) validateFiscalYear(key string, rules *domain.FiscalYearRules) error {
	if rules == nil {
		return fmt.Errorf("rules are empty")
	}
	if rules.Year != key {
		return fmt.Errorf("year field %q does not match key", rules.Year)
	}

	if err := nonNegative("standard deduction", rules.StandardDeduction); err != nil {
		return err
	}
	if err := validateRebate("rebate", rules.Rebate); err != nil {
		return err
	}
	if err := fraction("cess rate", rules.CessRate); err != nil {
		return err
	}
	if err := validateSurchargeTiers("surcharge tiers", rules.SurchargeTiers); err != nil {
		return err
	}

	if err := validateRegime(domain.RegimeOld, &rules.OldRegime,
		[]domain.SlabCategory{domain.CategoryGeneral, domain.CategorySenior, domain.CategorySuperSenior}); err != nil {
		return err
	}
	if err := validateRegime(domain.RegimeNew, &rules.NewRegime,
		[]domain.SlabCategory{domain.CategoryGeneral}); err != nil {
		return err
	}

	if err := fraction("hra metro salary fraction", rules.HRA.MetroSalaryFraction); err != nil {
		return err
	}
	if err := fraction("hra non-metro salary fraction", rules.HRA.NonMetroSalaryFraction); err != nil {
		return err
	}
	if err := fraction("hra rent excess salary fraction", rules.HRA.RentExcessSalaryFraction); err != nil {
		return err
	}

	for code, limit := range rules.DeductionLimits {
		if !code.IsKnown() {
			return fmt.Errorf("unknown deduction section %q", code)
		}
		if err := validateDeductionLimit(code, limit); err != nil {
			return err
		}
	}

	if _, ok := rules.DeductionLimits[domain.Section80D]; ok {
		for _, category := range []domain.SlabCategory{domain.CategoryGeneral, domain.CategorySenior} {
			caps, ok := rules.Section80DLimits[category]
			if !ok {
				return fmt.Errorf("section 80D requires %s limits", category)
			}
			if err := nonNegative("80D self limit", caps.Self); err != nil {
				return err
			}
			if err := nonNegative("80D parents limit", caps.Parents); err != nil {
				return err
			}
		}
	}
	for category := range rules.Section80DLimits {
		if !category.IsValid() {
			return fmt.Errorf("unknown 80D category %q", category)
		}
	}

	return nil
}

func validateRegime(regime domain.Regime, rr *domain.RegimeRules, categories []domain.SlabCategory) error {
	allowed := make(map[domain.SlabCategory]bool, len(categories))
	for _, category := range categories {
		allowed[category] = true
		slabs, ok := rr.Slabs[category]
		if !ok {
			return fmt.Errorf("%s regime is missing %s slabs", regime, category)
		}
		if err := validateSlabs(slabs); err != nil {
			return fmt.Errorf("%s regime %s slabs: %w", regime, category, err)
		}
	}
	for category := range rr.Slabs {
		if !allowed[category] {
			return fmt.Errorf("%s regime does not support %q slabs", regime, category)
		}
	}

	if rr.StandardDeduction != nil {
		if err := nonNegative(string(regime)+" regime standard deduction", *rr.StandardDeduction); err != nil {
			return err
		}
	}
	if rr.Rebate != nil {
		if err := validateRebate(string(regime)+" regime rebate", *rr.Rebate); err != nil {
			return err
		}
	}
	return validateSurchargeTiers(string(regime)+" regime surcharge tiers", rr.SurchargeTiers)
}

// validateSlabs requires strictly increasing positive bounds with only the
// last slab unbounded
func validateSlabs(slabs []domain.Slab) error {
	if len(slabs) == 0 {
		return fmt.Errorf("at least one slab is required")
	}

	lower := decimal.Zero
	for i, s := range slabs {
		if err := fraction(fmt.Sprintf("slab %d rate", i), s.Rate); err != nil {
			return err
		}
		last := i == len(slabs)-1
		if s.UpperBound == nil {
			if !last {
				return fmt.Errorf("slab %d is unbounded but is not the last slab", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("last slab must be unbounded, got upper bound %s", s.UpperBound)
		}
		if !s.UpperBound.GreaterThan(lower) {
			return fmt.Errorf("slab %d upper bound %s must be greater than %s", i, s.UpperBound, lower)
		}
		lower = *s.UpperBound
	}
	return nil
}

func validateRebate(name string, r domain.Rebate) error {
	if err := nonNegative(name+" limit", r.Limit); err != nil {
		return err
	}
	return nonNegative(name+" income threshold", r.IncomeThreshold)
}

func validateSurchargeTiers(name string, tiers []domain.SurchargeTier) error {
	for i, tier := range tiers {
		if err := nonNegative(fmt.Sprintf("%s[%d] threshold", name, i), tier.IncomeThreshold); err != nil {
			return err
		}
		if err := fraction(fmt.Sprintf("%s[%d] rate", name, i), tier.Rate); err != nil {
			return err
		}
		if i > 0 && !tier.IncomeThreshold.GreaterThan(tiers[i-1].IncomeThreshold) {
			return fmt.Errorf("%s must have strictly increasing thresholds", name)
		}
	}
	return nil
}

func validateDeductionLimit(code domain.SectionCode, l domain.DeductionLimit) error {
	for name, v := range map[string]*decimal.Decimal{
		"limit":        l.Limit,
		"senior limit": l.SeniorLimit,
		"severe limit": l.SevereLimit,
	} {
		if v == nil {
			continue
		}
		if err := nonNegative(fmt.Sprintf("%s %s", code, name), *v); err != nil {
			return err
		}
	}
	for name, v := range map[string]*decimal.Decimal{
		"salary fraction": l.SalaryFraction,
		"income fraction": l.IncomeFraction,
	} {
		if v == nil {
			continue
		}
		if err := fraction(fmt.Sprintf("%s %s", code, name), *v); err != nil {
			return err
		}
	}
	for i, c := range l.Conditions {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s condition %d: %w", code, i, err)
		}
	}
	return nil
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%s cannot be negative, got %s", name, v)
	}
	return nil
}

func fraction(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, v)
	}
	return nil
}
