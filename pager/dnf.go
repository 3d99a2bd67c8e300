package pager

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	// tConjunct is a single comparison of an ordered column against its
	// anchor value, e.g. "created_date < ?" or "move_in IS NULL". Value is
	// ignored for IS [NOT] NULL.
	tConjunct struct {
		Column   string
		Value    any
		Operator Operator
	}

	// tDisjunct is one branch of a keyset condition: equality on every
	// column before the deciding one, then the deciding comparison. Its
	// conjuncts are joined by AND.
	tDisjunct []tConjunct

	// tDNF is a keyset condition. Each branch selects the rows that first
	// differ from the anchor on one column, and branches are joined by OR.
	// For ordering "move_in ASC NULLS LAST, id ASC" and anchor ('2024-05', 9):
	//
	//	(move_in > '2024-05')
	//	OR (move_in IS NULL)
	//	OR (move_in = '2024-05' AND id > 9)
	tDNF []tDisjunct
)

// toGORMExpression renders the comparison as a clause.Expr bound with "?".
func (c tConjunct) toGORMExpression() clause.Expression {
	sql, args := c.toSQLClause()

	return clause.Expr{
		SQL:  sql,
		Vars: lo.Map(args, func(arg driver.Value, _ int) any { return arg }),
	}
}

// toSQLClause renders the comparison, e.g. ("name < ?", ["Bravo"]) or
// ("move_in IS NOT NULL", nil). The value is bound as given: cursor values
// are already cast to the column's type by the time they get here.
func (c tConjunct) toSQLClause() (string, []driver.Value) {
	if c.Operator.unary() {
		return c.Column + " " + string(c.Operator), nil
	}

	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{c.Value}
}

// toGORMExpression joins the branch with AND. A branch of one comparison is
// returned unwrapped and an empty branch yields nil.
func (d tDisjunct) toGORMExpression() clause.Expression {
	switch len(d) {
	case 0:
		return nil
	case 1:
		return d[0].toGORMExpression()
	}

	return clause.And(lo.Map(d, func(c tConjunct, _ int) clause.Expression {
		return c.toGORMExpression()
	})...)
}

// toSQLClause renders the branch in parentheses:
//
//	(move_in = ? AND id > ?), ["2024-05", 9]
func (d tDisjunct) toSQLClause() (string, []driver.Value) {
	if len(d) == 0 {
		return "", nil
	}

	parts := make([]string, len(d))
	var args []driver.Value

	for i, conjunct := range d {
		sql, values := conjunct.toSQLClause()
		parts[i] = sql
		args = append(args, values...)
	}

	return "(" + strings.Join(parts, " AND ") + ")", args
}

// toGORMExpression joins the non-empty branches with OR. A condition of one
// branch is returned unwrapped so gorm does not prefix it with OR, and a
// condition with no branches yields nil.
func (d tDNF) toGORMExpression() clause.Expression {
	branches := lo.FilterMap(d, func(disjunct tDisjunct, _ int) (clause.Expression, bool) {
		exp := disjunct.toGORMExpression()
		return exp, exp != nil
	})

	switch len(branches) {
	case 0:
		return nil
	case 1:
		return branches[0]
	}

	return clause.Or(branches...)
}

// toSQLClause renders the whole condition for raw SQL callers, e.g. a
// descending name page after ("Bravo", 7):
//
//	((name < ?) OR (name = ? AND id < ?)), ["Bravo", "Bravo", 7]
//
// A condition with no branches matches every row and renders as TRUE.
func (d tDNF) toSQLClause() (string, []driver.Value) {
	var (
		branches []string
		args     []driver.Value
	)

	for _, disjunct := range d {
		sql, values := disjunct.toSQLClause()
		if sql == "" {
			continue
		}

		branches = append(branches, sql)
		args = append(args, values...)
	}

	if len(branches) == 0 {
		return "TRUE", nil
	}

	return "(" + strings.Join(branches, " OR ") + ")", args
}
