package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateConditions checks every condition of a section against the profile
// and inputs. It returns false and the first failing condition as the reason.
func EvaluateConditions(conditions []domain.Condition, profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs) (bool, string) {
	for _, c := range conditions {
		ok, err := evaluateCondition(c, profile, inputs)
		if err != nil {
			return false, err.Error()
		}
		if !ok {
			return false, fmt.Sprintf("condition not met: %s", c)
		}
	}
	return true, ""
}

func evaluateCondition(c domain.Condition, profile domain.TaxpayerProfile, inputs domain.IncomeAndDeductionInputs) (bool, error) {
	if c.Field.IsBoolean() {
		want, err := c.BoolValue()
		if err != nil {
			return false, err
		}
		var have bool
		switch c.Field {
		case domain.FieldResident:
			have = profile.Resident
		case domain.FieldFirstTimeHomeBuyer:
			have = inputs.FirstTimeHomeBuyer
		case domain.FieldPropertySelfOccupied:
			have = inputs.PropertySelfOccupied()
		}
		switch c.Operator {
		case domain.OpEqual:
			return have == want, nil
		case domain.OpNotEqual:
			return have != want, nil
		}
		return false, fmt.Errorf("operator %s cannot be applied to flag %s", c.Operator, c.Field)
	}

	want, err := c.DecimalValue()
	if err != nil {
		return false, err
	}
	var have decimal.Decimal
	switch c.Field {
	case domain.FieldAge:
		have = decimal.NewFromInt(int64(profile.Age))
	case domain.FieldHRAReceived:
		have = inputs.HRAReceived
	case domain.FieldRentPaid:
		have = inputs.RentPaid
	case domain.FieldBasicSalary:
		have = inputs.BasicSalary
	default:
		return false, fmt.Errorf("unknown condition field %q", c.Field)
	}

	switch c.Operator {
	case domain.OpEqual:
		return have.Equal(want), nil
	case domain.OpNotEqual:
		return !have.Equal(want), nil
	case domain.OpLess:
		return have.LessThan(want), nil
	case domain.OpLessEqual:
		return have.LessThanOrEqual(want), nil
	case domain.OpGreater:
		return have.GreaterThan(want), nil
	case domain.OpGreaterEqual:
		return have.GreaterThanOrEqual(want), nil
	}
	return false, fmt.Errorf("unknown condition operator %q", c.Operator)
}
