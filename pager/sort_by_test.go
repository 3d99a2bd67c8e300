package pager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ResolveSort(t *testing.T) {
	cols := SortColumns{Date: "created_date", Name: "name", MoveIn: "move_in_date"}

	tests := []struct {
		name string
		mode SortBy
		want *OrderBy
	}{
		{"date ascending", SortByDateAsc, &OrderBy{Column: "created_date", Direction: DirectionASC}},
		{"date descending", SortByDateDesc, &OrderBy{Column: "created_date", Direction: DirectionDESC}},
		{"name ascending", SortByNameAsc, &OrderBy{Column: "name", Direction: DirectionASC}},
		{"name descending", SortByNameDesc, &OrderBy{Column: "name", Direction: DirectionDESC}},
		{
			"move-in ascending puts nulls first",
			SortByMoveInAsc,
			&OrderBy{Column: "move_in_date", Direction: DirectionASC, Nulls: NullsFirst},
		},
		{
			"move-in descending puts nulls last",
			SortByMoveInDesc,
			&OrderBy{Column: "move_in_date", Direction: DirectionDESC, Nulls: NullsLast},
		},
		{"action required has no ordering", SortByActionRequired, nil},
		{"no mode has no ordering", "", nil},
		{"unknown mode has no ordering", "z_a_sideways", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSort(cols, tt.mode)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_ResolveSort_MissingMoveInColumn(t *testing.T) {
	cols := SortColumns{Date: "created_date", Name: "name"}

	for _, mode := range []SortBy{SortByMoveInAsc, SortByMoveInDesc} {
		t.Run(string(mode), func(t *testing.T) {
			got, err := ResolveSort(cols, mode)
			require.ErrorIs(t, err, ErrInvalidSortConfiguration)
			require.Nil(t, got)
		})
	}

	got, err := ResolveSort(cols, SortByNameAsc)
	require.NoError(t, err)
	require.Equal(t, &OrderBy{Column: "name", Direction: DirectionASC}, got)
}

func Test_ParseSortBy(t *testing.T) {
	tests := []struct {
		in   string
		want SortBy
		ok   bool
	}{
		{"", "", true},
		{"date_desc", SortByDateDesc, true},
		{"move_in_asc", SortByMoveInAsc, true},
		{"action_required", SortByActionRequired, true},
		{"newest", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortBy(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidSortConfiguration)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
