package pager

import "fmt"

// Operator defines a comparison operator for filtering by column.
// Used in keyset filtering conditions.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// unary reports whether the operator takes no value.
func (o Operator) unary() bool {
	return o == operatorIsNull || o == operatorIsNotNull
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// The operators below are private because we use them ONLY while
	// building filtering conditions.
	operatorEq        Operator = "="
	operatorIsNull    Operator = "IS NULL"
	operatorIsNotNull Operator = "IS NOT NULL"
)
