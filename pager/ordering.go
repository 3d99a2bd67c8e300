package pager

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

func (o Direction) ForOperator() Operator {
	switch o {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", o))
	}
}

// Reverse returns the opposite direction.
func (o Direction) Reverse() Direction {
	return lo.Ternary(o == DirectionASC, DirectionDESC, DirectionASC)
}

// Nulls defines where NULL values of a nullable column are placed.
// NullsDefault means the column is treated as NOT NULL.
type Nulls string

const (
	NullsDefault Nulls = ""
	NullsFirst   Nulls = "FIRST"
	NullsLast    Nulls = "LAST"
)

func (n Nulls) Valid() bool {
	return n == NullsDefault || n == NullsFirst || n == NullsLast
}

// Reverse returns the opposite placement. NullsDefault stays as is.
func (n Nulls) Reverse() Nulls {
	switch n {
	case NullsFirst:
		return NullsLast
	case NullsLast:
		return NullsFirst
	default:
		return n
	}
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
		Nulls     Nulls
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	if !o.Nulls.Valid() {
		return fmt.Errorf("invalid nulls placement '%s'", o.Nulls)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if o.Column == "" || !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// Reverse flips both the direction and the nulls placement, so that walking
// the reversed ordering visits rows in exactly the opposite sequence.
func (o OrderBy) Reverse() OrderBy {
	return OrderBy{
		Column:    o.Column,
		Direction: o.Direction.Reverse(),
		Nulls:     o.Nulls.Reverse(),
	}
}

// toSQLSlice renders the ordering. Nulls placement is emulated with an
// "IS NULL" key because MySQL has no NULLS FIRST/LAST syntax.
//
// Example: {"move_in", "ASC", "FIRST"} returns ["move_in IS NULL DESC", "move_in ASC"].
func (o OrderBy) toSQLSlice() []string {
	plain := fmt.Sprintf("%s %s", o.Column, o.Direction)

	switch o.Nulls {
	case NullsFirst:
		return []string{fmt.Sprintf("%s IS NULL DESC", o.Column), plain}
	case NullsLast:
		return []string{fmt.Sprintf("%s IS NULL ASC", o.Column), plain}
	default:
		return []string{plain}
	}
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"a", "ASC"}, {"b", "DESC"}] returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, ordering.toSQLSlice()...)
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>"
// suitable for embedding into an SQL query.
// Example: for [{"a", "ASC"}, {"b", "DESC"}] returns "a ASC, b DESC".
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.ToSQL())
}

// Reverse returns the orderings with every element reversed.
func (o Orderings) Reverse() Orderings {
	return lo.Map(o, func(item OrderBy, _ int) OrderBy {
		return item.Reverse()
	})
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc [nulls first|last]". Column aliases are resolved via
// ColumnMapping. Returns an error if an alias is not found in the mapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 && len(cutStringOrdering) != 4 {
			return nil, fmt.Errorf("%w: invalid ordering string format '%s'", ErrInvalidSortConfiguration, stringOrdering)
		}

		columnAlias := cutStringOrdering[0]
		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		columnName := columnMapping[columnAlias]
		if columnName == "" {
			return nil, fmt.Errorf("%w: invalid column alias. closest: '%s'", ErrInvalidSortConfiguration, closestAlias(columnAlias, aliases))
		}

		nulls := NullsDefault
		if len(cutStringOrdering) == 4 {
			if !strings.EqualFold(cutStringOrdering[2], "nulls") {
				return nil, fmt.Errorf("%w: invalid ordering string format '%s'", ErrInvalidSortConfiguration, stringOrdering)
			}
			nulls = Nulls(strings.ToUpper(cutStringOrdering[3]))
		}

		orderBy := OrderBy{
			Column:    columnName,
			Direction: direction,
			Nulls:     nulls,
		}
		if err := orderBy.validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSortConfiguration, err)
		}

		ret = append(ret, orderBy)
	}

	return ret, nil
}

// ParseSortField builds a single ordering from a grid-style sort request:
// sortOrder == 1 sorts ascending, any other value sorts descending.
// An empty field means no ordering was requested and returns nil.
func ParseSortField(sortField string, sortOrder int, columnMapping ColumnMapping) (*OrderBy, error) {
	if sortField == "" {
		return nil, nil
	}

	columnName := columnMapping[sortField]
	if columnName == "" {
		return nil, fmt.Errorf("%w: invalid column alias. closest: '%s'", ErrInvalidSortConfiguration, closestAlias(sortField, lo.Keys(columnMapping)))
	}

	return &OrderBy{
		Column:    columnName,
		Direction: lo.Ternary(sortOrder == 1, DirectionASC, DirectionDESC),
	}, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
