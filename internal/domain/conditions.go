package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Validate checks that the field and operator are known and that the value
// parses for the field's kind
func (c Condition) Validate() error {
	if !c.Field.IsValid() {
		return fmt.Errorf("unknown condition field %q", c.Field)
	}
	if !c.Operator.IsValid() {
		return fmt.Errorf("unknown condition operator %q", c.Operator)
	}
	if c.Field.IsBoolean() {
		if c.Operator.IsOrdering() {
			return fmt.Errorf("operator %s cannot be applied to flag %s", c.Operator, c.Field)
		}
		if _, err := c.BoolValue(); err != nil {
			return err
		}
		return nil
	}
	if _, err := c.DecimalValue(); err != nil {
		return err
	}
	return nil
}

// BoolValue parses the operand of a flag condition
func (c Condition) BoolValue() (bool, error) {
	b, err := strconv.ParseBool(string(c.Value))
	if err != nil {
		return false, fmt.Errorf("condition %s: value %q is not a boolean", c.Field, c.Value)
	}
	return b, nil
}

// DecimalValue parses the operand of a numeric condition
func (c Condition) DecimalValue() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(c.Value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("condition %s: value %q is not a number", c.Field, c.Value)
	}
	return d, nil
}

// String renders the condition as "field op value"
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Operator, c.Value)
}
