package pager

import "testing"

func Test_Operator_Valid_And_ForOrdering(t *testing.T) {
	tests := []struct {
		name     string
		in       Operator
		valid    bool
		ordering Direction
	}{
		{"GT valid maps to ASC", OperatorGT, true, DirectionASC},
		{"LT valid maps to DESC", OperatorLT, true, DirectionDESC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.valid {
				t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
			}
			if got := tt.in.ForOrdering(); got != tt.ordering {
				t.Errorf("%s: ForOrdering=%v want %v", tt.name, got, tt.ordering)
			}
		})
	}
}

func Test_Operator_private(t *testing.T) {
	tests := []struct {
		in    Operator
		unary bool
	}{
		{operatorEq, false},
		{operatorIsNull, true},
		{operatorIsNotNull, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if tt.in.Valid() {
				t.Errorf("%s must not be a cursor operator", tt.in)
			}
			if got := tt.in.unary(); got != tt.unary {
				t.Errorf("%s: unary=%v want %v", tt.in, got, tt.unary)
			}
		})
	}
}

func Test_Operator_ForOrdering_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unmappable operator")
		}
	}()

	operatorEq.ForOrdering()
}
