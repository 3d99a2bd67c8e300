package pager

import (
	"fmt"

	"github.com/samber/lo"
)

// SortBy selects which column and direction a list is ordered by.
type SortBy string

const (
	SortByDateAsc        SortBy = "date_asc"
	SortByDateDesc       SortBy = "date_desc"
	SortByNameAsc        SortBy = "a_z_asc"
	SortByNameDesc       SortBy = "a_z_desc"
	SortByActionRequired SortBy = "action_required"
	SortByMoveInAsc      SortBy = "move_in_asc"
	SortByMoveInDesc     SortBy = "move_in_desc"
)

var _sortModes = []SortBy{
	SortByDateAsc,
	SortByDateDesc,
	SortByNameAsc,
	SortByNameDesc,
	SortByActionRequired,
	SortByMoveInAsc,
	SortByMoveInDesc,
}

func (s SortBy) Valid() bool {
	return lo.Contains(_sortModes, s)
}

// ParseSortBy converts a raw query value into SortBy. An empty string is a
// valid "no explicit ordering" request.
func ParseSortBy(raw string) (SortBy, error) {
	s := SortBy(raw)
	if raw != "" && !s.Valid() {
		return "", fmt.Errorf("%w: unknown sort mode '%s'", ErrInvalidSortConfiguration, raw)
	}

	return s, nil
}

// SortColumns are the candidate columns a SortBy resolves against.
// MoveIn is optional and may be left empty.
type SortColumns struct {
	Date   string
	Name   string
	MoveIn string
}

type sortResolver func(cols SortColumns) (OrderBy, error)

var _sortResolvers = map[SortBy]sortResolver{
	SortByDateAsc:    plainSort(func(c SortColumns) string { return c.Date }, DirectionASC),
	SortByDateDesc:   plainSort(func(c SortColumns) string { return c.Date }, DirectionDESC),
	SortByNameAsc:    plainSort(func(c SortColumns) string { return c.Name }, DirectionASC),
	SortByNameDesc:   plainSort(func(c SortColumns) string { return c.Name }, DirectionDESC),
	SortByMoveInAsc:  moveInSort(DirectionASC, NullsFirst),
	SortByMoveInDesc: moveInSort(DirectionDESC, NullsLast),
}

func plainSort(column func(SortColumns) string, direction Direction) sortResolver {
	return func(cols SortColumns) (OrderBy, error) {
		return OrderBy{Column: column(cols), Direction: direction}, nil
	}
}

func moveInSort(direction Direction, nulls Nulls) sortResolver {
	return func(cols SortColumns) (OrderBy, error) {
		if cols.MoveIn == "" {
			return OrderBy{}, fmt.Errorf("%w: move-in sort requested without a move-in column", ErrInvalidSortConfiguration)
		}

		return OrderBy{Column: cols.MoveIn, Direction: direction, Nulls: nulls}, nil
	}
}

// ResolveSort maps a sort mode to an ordering over cols. A nil ordering with
// a nil error means the mode requests no ordering override and the query's
// default order applies.
func ResolveSort(cols SortColumns, mode SortBy) (*OrderBy, error) {
	resolve, ok := _sortResolvers[mode]
	if !ok {
		return nil, nil
	}

	orderBy, err := resolve(cols)
	if err != nil {
		return nil, err
	}

	return &orderBy, nil
}
