package pager

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// castCursor returns a copy of c whose anchor values have the Go types the
// getters yield for the ordered columns. Cursors arrive as query-string text
// or as JSON, so a timestamp is a string and a number may be a json.Number
// until it is cast. A string column stays a string whatever it looks like.
//
// Getters must be safe to call on the zero value of M.
func castCursor[M any](c *Cursor, orderings Orderings, getters Getters[M]) (*Cursor, error) {
	if c.IsEmpty() {
		return c, nil
	}

	var zero M

	cast := *c

	id, err := castValue(c.ID, columnType(getters[orderings[len(orderings)-1].Column], zero))
	if err != nil {
		return nil, fmt.Errorf("%w: cursor_id: %w", ErrInvalidCursor, err)
	}
	cast.ID = id

	if len(orderings) > 1 {
		column, err := castValue(c.Column, columnType(getters[orderings[0].Column], zero))
		if err != nil {
			return nil, fmt.Errorf("%w: cursor_column: %w", ErrInvalidCursor, err)
		}
		cast.Column = column
	}

	return &cast, nil
}

// columnType reports the value type behind a getter, dereferencing pointers.
// It is nil when the getter yields an untyped nil.
func columnType[M any](getter func(M) any, zero M) reflect.Type {
	if getter == nil {
		return nil
	}

	typ := reflect.TypeOf(getter(zero))
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ
}

var _textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

func castValue(v any, typ reflect.Type) (any, error) {
	if v == nil || typ == nil {
		return v, nil
	}

	var text string
	switch vt := v.(type) {
	case string:
		text = vt
	case json.Number:
		text = vt.String()
	default:
		return v, nil
	}

	switch {
	case typ.Kind() == reflect.String:
		return text, nil
	case reflect.PointerTo(typ).Implements(_textUnmarshaler):
		dst := reflect.New(typ)
		if err := dst.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return nil, err
		}

		return dst.Elem().Interface(), nil
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, typ.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(typ).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, typ.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(typ).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, typ.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(f).Convert(typ).Interface(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, err
		}

		return b, nil
	default:
		return text, nil
	}
}
