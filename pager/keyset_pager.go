package pager

import (
	"database/sql/driver"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// DefaultTieBreakColumn is the unique column appended last to every ordering.
const DefaultTieBreakColumn = "id"

// RawKeysetPager is intended for API payloads and query strings. Either Token
// or the CursorColumn/CursorID pair may be supplied, not both.
type RawKeysetPager struct {
	// PerPage - maximum number of records to return in the response.
	PerPage int `json:"per_page" query:"per_page"`
	// CursorColumn - primary sort value of the anchor row.
	CursorColumn string `json:"cursor_column" query:"cursor_column"`
	// CursorID - tie-break id of the anchor row.
	CursorID string `json:"cursor_id" query:"cursor_id"`
	// Previous - travel backward from the anchor.
	Previous bool `json:"previous" query:"previous"`
	// Token - opaque cursor obtained via Cursor.String().
	Token string `json:"token" query:"token"`
}

// Decode converts RawKeysetPager into *KeysetPager, normalizing PerPage
// against maxLimit and validating the cursor.
func (p RawKeysetPager) Decode(maxLimit int, orderBy ...OrderBy) (*KeysetPager, error) {
	var (
		cursor *Cursor
		err    error
	)

	switch {
	case p.Token != "" && (p.CursorColumn != "" || p.CursorID != ""):
		return nil, fmt.Errorf("%w: token and cursor fields are mutually exclusive", ErrInvalidCursor)
	case p.Token != "":
		cursor, err = DecodeCursor(p.Token)
	default:
		cursor, err = NewCursorFromParams(p.CursorColumn, p.CursorID, &p.Previous)
	}
	if err != nil {
		return nil, err
	}

	return NewKeysetPager().
		WithCursor(cursor).
		WithLimitMax(p.PerPage, maxLimit).
		WithSubstitutedSort(orderBy...), nil
}

// KeysetPager applies keyset pagination to a GORM query. It is stateless
// across requests and should be built fresh for each one.
//
// The orderings must be [primary, tie-break] or [tie-break], where the
// tie-break column is unique and NOT NULL.
type KeysetPager struct {
	limit    int
	cursor   *Cursor
	sort     Orderings
	tieBreak string
}

func NewKeysetPager() *KeysetPager {
	return new(KeysetPager)
}

// DecodeKeysetPager builds a *KeysetPager from separately supplied cursor
// parameters.
func DecodeKeysetPager(column, id any, previous *bool, limit int, orderBy ...OrderBy) (*KeysetPager, error) {
	cursor, err := NewCursorFromParams(column, id, previous)
	if err != nil {
		return nil, err
	}

	return NewKeysetPager().
		WithCursor(cursor).
		WithLimit(limit).
		WithSubstitutedSort(orderBy...), nil
}

// KeysetOrder builds the orderings KeysetPager expects: the resolved primary
// ordering (or fallback when nil) followed by the tie-break ordering.
func KeysetOrder(primary *OrderBy, fallback OrderBy, tieBreak OrderBy) Orderings {
	first := lo.FromPtrOr(primary, fallback)
	if first.Column == tieBreak.Column {
		return Orderings{tieBreak}
	}

	return Orderings{first, tieBreak}
}

// WithLimit sets the page size. NormalizeLimit is applied.
func (c *KeysetPager) WithLimit(limit int) *KeysetPager {
	return c.WithLimitMax(limit, MaxLimit)
}

// WithLimitMax sets the page size, clamped to maxLimit.
func (c *KeysetPager) WithLimitMax(limit int, maxLimit int) *KeysetPager {
	if c == nil {
		c = new(KeysetPager)
	}

	c.limit = NormalizeLimitMax(limit, maxLimit)

	return c
}

// WithCursor sets the cursor explicitly. A nil cursor requests the first page.
func (c *KeysetPager) WithCursor(cursor *Cursor) *KeysetPager {
	if c == nil {
		c = new(KeysetPager)
	}

	c.cursor = cursor

	return c
}

func (c *KeysetPager) clone() *KeysetPager {
	cp := *c
	cp.sort = slices.Clone(c.sort)

	return &cp
}

// WithTieBreak overrides DefaultTieBreakColumn.
func (c *KeysetPager) WithTieBreak(column string) *KeysetPager {
	if c == nil {
		c = new(KeysetPager)
	}

	c.tieBreak = column

	return c
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (c *KeysetPager) WithSubstitutedSort(orderBy ...OrderBy) *KeysetPager {
	if c == nil {
		c = new(KeysetPager)
	}

	c.sort = nil

	return c.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (c *KeysetPager) WithSort(orderBy ...OrderBy) *KeysetPager {
	if c == nil {
		c = new(KeysetPager)
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(c.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			c.sort = slices.Delete(c.sort, idx, idx+1)
		}

		c.sort = append(c.sort, o)
	}

	return c
}

// Paginate applies ordering, the keyset condition and the lookahead limit to
// the dataset. When the cursor points backward the ordering is reversed, so
// the rows come back nearest-to-anchor first.
//
// IMPORTANT:
// db must not carry its own ORDER BY.
func (c *KeysetPager) Paginate(db *gorm.DB) (*gorm.DB, error) {
	err := c.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	travel := c.travelOrder()
	db = travel.Apply(db)

	if !c.cursor.IsEmpty() {
		if exp := keysetDNF(travel, c.cursor.values(c.sort)).toGORMExpression(); exp != nil {
			db = db.Clauses(exp)
		}
	}

	// Fetch one extra record to determine if there is a further page.
	return db.Limit(c.GetDatasetLimit()), nil
}

// WhereSQL returns the keyset condition as raw SQL with "?" placeholders.
//
// Usage:
//
//	where, args, err := p.WhereSQL()
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s ORDER BY %s", where, p.TravelOrder().ToSQL())
func (c *KeysetPager) WhereSQL() (string, []driver.Value, error) {
	err := c.validate()
	if err != nil {
		return "", nil, fmt.Errorf("cannot build keyset condition: %w", err)
	}

	if c.cursor.IsEmpty() {
		return "TRUE", nil, nil
	}

	where, args := keysetDNF(c.travelOrder(), c.cursor.values(c.sort)).toSQLClause()

	return where, args, nil
}

// TravelOrder returns the orderings in the direction rows are fetched.
func (c *KeysetPager) TravelOrder() Orderings {
	if c == nil {
		return nil
	}

	return c.travelOrder()
}

func (c *KeysetPager) travelOrder() Orderings {
	return lo.Ternary(c.IsBackward(), c.sort.Reverse(), c.sort)
}

// GetSort returns orderings in their declared direction.
func (c *KeysetPager) GetSort() Orderings {
	if c == nil {
		return nil
	}

	return c.sort
}

// GetLimit returns the page size. An unset limit yields DefaultLimit.
func (c *KeysetPager) GetLimit() int {
	if c == nil || c.limit <= 0 {
		return DefaultLimit
	}

	return c.limit
}

// GetDatasetLimit returns the page size plus the lookahead record.
func (c *KeysetPager) GetDatasetLimit() int {
	return c.GetLimit() + 1
}

// GetCursor returns the cursor stored in KeysetPager as-is.
func (c *KeysetPager) GetCursor() *Cursor {
	if c == nil {
		return nil
	}

	return c.cursor
}

// GetTieBreak returns the tie-break column name.
func (c *KeysetPager) GetTieBreak() string {
	if c == nil || c.tieBreak == "" {
		return DefaultTieBreakColumn
	}

	return c.tieBreak
}

// IsBackward returns true if the cursor requests the page before the anchor.
func (c *KeysetPager) IsBackward() bool {
	return c != nil && !c.cursor.IsEmpty() && c.cursor.Previous
}

// IsAnchored returns true if a cursor is set.
func (c *KeysetPager) IsAnchored() bool {
	return c != nil && !c.cursor.IsEmpty()
}

func (c *KeysetPager) validate() error {
	if c == nil {
		return fmt.Errorf("keyset pager is nil")
	}

	err := c.sort.validate()
	if err != nil {
		return err
	}

	if len(c.sort) > 2 {
		return fmt.Errorf("%w: expected [primary, tie-break] orderings, got %d", ErrNonDeterministicOrdering, len(c.sort))
	}

	last := c.sort[len(c.sort)-1]
	if last.Column != c.GetTieBreak() {
		return fmt.Errorf("%w: ordering must end with tie-break column '%s', got '%s'",
			ErrNonDeterministicOrdering, c.GetTieBreak(), last.Column)
	}

	if last.Nulls != NullsDefault {
		return fmt.Errorf("%w: tie-break column '%s' cannot be nullable", ErrNonDeterministicOrdering, last.Column)
	}

	return c.cursor.validate(c.sort)
}

// keysetDNF builds the condition selecting rows strictly after values in
// the given ordering:
//
//	(C1 after V1) OR (C1 = V1 AND C2 after V2) ... OR (C1 = V1 ... AND Cn after Vn)
//
// "after" depends on direction and nulls placement, see after.
func keysetDNF(orderings Orderings, values []any) tDNF {
	dnf := make(tDNF, 0, len(orderings))

	for i, orderBy := range orderings {
		prefix := make([]tConjunct, 0, i)
		for j := range orderings[:i] {
			prefix = append(prefix, equalTo(orderings[j].Column, values[j]))
		}

		for _, conjunct := range after(orderBy, values[i]) {
			disjunct := make(tDisjunct, 0, len(prefix)+1)
			disjunct = append(disjunct, prefix...)
			disjunct = append(disjunct, conjunct)

			dnf = append(dnf, disjunct)
		}
	}

	return dnf
}

// after returns the alternatives for "column is strictly after value".
//
//	nulls first, value NULL     -> column IS NOT NULL
//	nulls last,  value NULL     -> nothing
//	nulls last,  value not NULL -> column op value OR column IS NULL
//	otherwise                   -> column op value
func after(orderBy OrderBy, value any) []tConjunct {
	op := orderBy.Direction.ForOperator()

	if value == nil {
		if orderBy.Nulls == NullsFirst {
			return []tConjunct{{Column: orderBy.Column, Operator: operatorIsNotNull}}
		}

		return nil
	}

	ret := []tConjunct{{Column: orderBy.Column, Value: value, Operator: op}}
	if orderBy.Nulls == NullsLast {
		ret = append(ret, tConjunct{Column: orderBy.Column, Operator: operatorIsNull})
	}

	return ret
}

func equalTo(column string, value any) tConjunct {
	if value == nil {
		return tConjunct{Column: column, Operator: operatorIsNull}
	}

	return tConjunct{Column: column, Value: value, Operator: operatorEq}
}
