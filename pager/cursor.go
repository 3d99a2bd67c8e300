package pager

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// Cursor is the anchor of a keyset page: the sort-column value and the
// tie-break id of the boundary row, and the direction to travel from it.
//
// A Cursor holds no server-side state. It is produced by one page fetch and
// consumed by the next one.
type Cursor struct {
	// Previous requests the page strictly before the anchor.
	Previous bool `json:"previous"`
	// Column is the value of the primary sort column of the anchor row.
	// It may be nil for nullable columns.
	Column any `json:"cursor_column"`
	// ID is the tie-break value of the anchor row.
	ID any `json:"cursor_id"`
}

// NewCursor builds a cursor anchored at (column, id).
func NewCursor(previous bool, column, id any) *Cursor {
	return &Cursor{
		Previous: previous,
		Column:   column,
		ID:       id,
	}
}

// NewCursorFromParams builds a cursor from separately supplied request
// parameters. Both values absent means the first page and returns nil.
// Exactly one value present is rejected with ErrInvalidCursor. A nil
// previous flag means forward travel.
func NewCursorFromParams(column, id any, previous *bool) (*Cursor, error) {
	columnAbsent, idAbsent := isAbsent(column), isAbsent(id)

	switch {
	case columnAbsent && idAbsent:
		return nil, nil
	case columnAbsent:
		return nil, fmt.Errorf("%w: cursor_id given without cursor_column", ErrInvalidCursor)
	case idAbsent:
		return nil, fmt.Errorf("%w: cursor_column given without cursor_id", ErrInvalidCursor)
	}

	return NewCursor(previous != nil && *previous, column, id), nil
}

func isAbsent(v any) bool {
	switch vt := v.(type) {
	case nil:
		return true
	case string:
		return vt == ""
	case *string:
		return vt == nil || *vt == ""
	default:
		return false
	}
}

// DecodeCursor parses a token produced by Cursor.String. An empty token
// returns nil, meaning the first page. Numbers are kept as json.Number so
// large integer ids survive the round trip.
func DecodeCursor(b64String string) (*Cursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded cursor: %v", ErrInvalidCursor, err)
	}

	var c Cursor

	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err = decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json encoded cursor: %v", ErrInvalidCursor, err)
	}

	if isAbsent(c.ID) {
		return nil, fmt.Errorf("%w: cursor has no tie-break id", ErrInvalidCursor)
	}

	return &c, nil
}

// String - implements fmt.Stringer. Returns an opaque, URL-safe token.
func (c *Cursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(c)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

func (c *Cursor) IsEmpty() bool {
	return c == nil || isAbsent(c.ID)
}

// values returns the anchor values aligned with orderings.
func (c *Cursor) values(orderings Orderings) []any {
	if len(orderings) == 1 {
		return []any{c.ID}
	}

	return []any{c.Column, c.ID}
}

func (c *Cursor) validate(orderings Orderings) error {
	if c == nil {
		return nil
	}

	if isAbsent(c.ID) {
		return fmt.Errorf("%w: cursor has no tie-break id", ErrInvalidCursor)
	}

	if len(orderings) > 1 && c.Column == nil && orderings[0].Nulls == NullsDefault {
		return fmt.Errorf("%w: null cursor value for non-nullable column '%s'", ErrInvalidCursor, orderings[0].Column)
	}

	return nil
}

var _ fmt.Stringer = (*Cursor)(nil)
