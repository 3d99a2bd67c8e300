package pager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchMode selects how a Filter value is compared with its column.
type MatchMode string

const (
	MatchContains    MatchMode = "contains"
	MatchNotContains MatchMode = "notContains"
	MatchEquals      MatchMode = "equals"
	MatchNotEquals   MatchMode = "notEquals"
	MatchStartsWith  MatchMode = "startsWith"
	MatchEndsWith    MatchMode = "endsWith"
)

// Filter is a single column filter as sent by data-grid clients.
// A nil Value disables the filter.
type Filter struct {
	Value     *string   `json:"value"`
	MatchMode MatchMode `json:"matchMode"`
}

// Filters maps column aliases to their filters.
type Filters map[ColumnAlias]Filter

// "!" is used as the LIKE escape character: a backslash literal is parsed
// differently by MySQL and PostgreSQL.
var _likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// Apply adds a WHERE condition per active filter. Aliases missing from
// columnMapping are ignored.
func (f Filters) Apply(db *gorm.DB, columnMapping ColumnMapping) (*gorm.DB, error) {
	exprs, err := f.expressions(columnMapping)
	if err != nil {
		return nil, err
	}

	for _, exp := range exprs {
		db = db.Where(exp)
	}

	return db, nil
}

func (f Filters) expressions(columnMapping ColumnMapping) ([]clause.Expression, error) {
	aliases := lo.Keys(f)
	// Stable SQL for identical requests.
	sort.Strings(aliases)

	ret := make([]clause.Expression, 0, len(aliases))
	for _, alias := range aliases {
		filter := f[alias]
		if filter.Value == nil {
			continue
		}

		column, ok := columnMapping[alias]
		if !ok {
			continue
		}

		exp, err := filter.expression(column)
		if err != nil {
			return nil, err
		}

		ret = append(ret, exp)
	}

	return ret, nil
}

func (f Filter) expression(column string) (clause.Expression, error) {
	value := *f.Value
	escaped := _likeEscaper.Replace(value)

	switch f.MatchMode {
	case MatchContains:
		return clause.Expr{SQL: fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '!'`, column), Vars: []any{"%" + escaped + "%"}}, nil
	case MatchNotContains:
		return clause.Expr{SQL: fmt.Sprintf(`LOWER(%s) NOT LIKE LOWER(?) ESCAPE '!'`, column), Vars: []any{"%" + escaped + "%"}}, nil
	case MatchStartsWith:
		return clause.Expr{SQL: fmt.Sprintf(`%s LIKE ? ESCAPE '!'`, column), Vars: []any{escaped + "%"}}, nil
	case MatchEndsWith:
		return clause.Expr{SQL: fmt.Sprintf(`%s LIKE ? ESCAPE '!'`, column), Vars: []any{"%" + escaped}}, nil
	case MatchEquals:
		return clause.Eq{Column: clause.Column{Name: column, Raw: true}, Value: value}, nil
	case MatchNotEquals:
		return clause.Neq{Column: clause.Column{Name: column, Raw: true}, Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown match mode '%s' for column '%s'", ErrInvalidFilter, f.MatchMode, column)
	}
}
