package pager

import (
	"context"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Page is a keyset page of results.
//
// Next is set only if a row exists after the last result; Previous is set
// only if a row exists before the first result.
type Page[T any] struct {
	Next     *Cursor `json:"next"`
	Previous *Cursor `json:"previous"`
	Results  []T     `json:"results"`
}

// Getters - map of value getters for a model, keyed by column name. Must
// cover every column the pagination is ordered by.
// Example:
//
//	pager.Getters[models.Chapter]{
//		"id":           func(c models.Chapter) any { return c.ID },
//		"created_date": func(c models.Chapter) any { return c.CreatedDate },
//	}
type Getters[T any] map[string]func(T) any

// Converter builds the output representation of a fetched row.
type Converter[M any, D any] func(M) (D, error)

// Run fetches one page of db with p and converts every row with convert.
//
// db must be filtered but not ordered. Rows are fetched in p's declared
// order regardless of travel direction. An empty dataset yields an empty
// page with no cursors.
//
// Under concurrent inserts or deletes in the traversed range, page
// boundaries may shift between calls. Rows are never repeated or skipped
// relative to the ordering itself.
func Run[M any, D any](
	ctx context.Context,
	db *gorm.DB,
	p *KeysetPager,
	getters Getters[M],
	convert Converter[M, D],
) (*Page[D], error) {
	err := p.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	for _, orderBy := range p.sort {
		if _, ok := getters[orderBy.Column]; !ok {
			return nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}
	}

	cursor, err := castCursor(p.cursor, p.sort, getters)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}
	p = p.clone().WithCursor(cursor)

	// WithContext starts a new session, so the base query can be reused for
	// the edge probe below.
	base := db.WithContext(ctx)

	paged, err := p.Paginate(base)
	if err != nil {
		return nil, err
	}

	var rows []M
	if err = paged.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cannot fetch page: %w", err)
	}

	hasFurther := len(rows) > p.GetLimit()
	if hasFurther {
		rows = rows[:p.GetLimit()]
	}

	var hasNext, hasPrevious bool
	if p.IsBackward() {
		slices.Reverse(rows)
		hasPrevious = hasFurther
	} else {
		hasNext = hasFurther
	}

	// The edge opposite to travel is only open when anchored: check it with
	// a one-row probe so the cursor is set iff a row really exists there.
	if p.IsAnchored() && len(rows) > 0 {
		if p.IsBackward() {
			hasNext, err = existsAfter[M](base, p.sort, keyValues(p.sort, getters, rows[len(rows)-1]))
		} else {
			hasPrevious, err = existsAfter[M](base, p.sort.Reverse(), keyValues(p.sort, getters, rows[0]))
		}
		if err != nil {
			return nil, err
		}
	}

	page := &Page[D]{
		Results: make([]D, 0, len(rows)),
	}

	if hasNext {
		page.Next = edgeCursor(false, p, getters, rows[len(rows)-1])
	}
	if hasPrevious {
		page.Previous = edgeCursor(true, p, getters, rows[0])
	}

	for _, row := range rows {
		item, err := convert(row)
		if err != nil {
			return nil, fmt.Errorf("cannot convert row: %w", err)
		}

		page.Results = append(page.Results, item)
	}

	slog.DebugContext(ctx, "keyset page fetched",
		slog.Int("size", len(page.Results)),
		slog.Bool("backward", p.IsBackward()),
		slog.Bool("has_next", hasNext),
		slog.Bool("has_previous", hasPrevious),
	)

	return page, nil
}

func existsAfter[M any](db *gorm.DB, orderings Orderings, values []any) (bool, error) {
	var found []M

	query := db.Limit(1)
	if exp := keysetDNF(orderings, values).toGORMExpression(); exp != nil {
		query = query.Clauses(exp)
	}

	if err := query.Find(&found).Error; err != nil {
		return false, fmt.Errorf("cannot probe page edge: %w", err)
	}

	return len(found) > 0, nil
}

func keyValues[M any](orderings Orderings, getters Getters[M], row M) []any {
	return lo.Map(orderings, func(orderBy OrderBy, _ int) any {
		return nullable(getters[orderBy.Column](row))
	})
}

// nullable turns nil pointers and NULL valuers into an untyped nil, which is
// how the keyset condition recognises NULL.
func nullable(v any) any {
	if valuer, ok := v.(driver.Valuer); ok {
		rv := reflect.ValueOf(valuer)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}

		value, err := valuer.Value()
		if err == nil && value == nil {
			return nil
		}

		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}

		return rv.Elem().Interface()
	}

	return v
}

func edgeCursor[M any](previous bool, p *KeysetPager, getters Getters[M], row M) *Cursor {
	values := keyValues(p.sort, getters, row)

	// A single tie-break ordering carries the same value in both fields.
	return NewCursor(previous, values[0], values[len(values)-1])
}
