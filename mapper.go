package sheetio

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

/* =========================================================
 *  Header Sanitization
 * ========================================================= */

// sanitizeIdentifier reduces a free-text header cell to an
// identifier-like token: letters, digits and underscores survive,
// every other character is substituted with replacement (empty
// replacement removes them). Idempotent for identifier-safe
// replacements.
func sanitizeIdentifier(s, replacement string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteString(replacement)
		}
	}
	return b.String()
}

// headerNames derives property names from the header row and trims the
// trailing run of empty names. Interior empty names are preserved; a
// data value under one is a mapping error.
func headerNames(row []any, replacement string) []string {
	names := make([]string, len(row))
	for i, c := range row {
		names[i] = sanitizeIdentifier(cellString(c), replacement)
	}
	end := len(names)
	for end > 0 && names[end-1] == "" {
		end--
	}
	return names[:end]
}

/* =========================================================
 *  Type Metadata
 * ========================================================= */

// fieldMeta stores mapping info for a single struct field.
type fieldMeta struct {
	Index  []int
	Name   string
	Column string // explicit source column from `excel:"..."`; empty = match by field name
	Type   reflect.Type
}

// typeMeta stores the ordered mapping table for a struct type.
type typeMeta struct {
	Fields []*fieldMeta // declaration order
}

var metaCache sync.Map // map[reflect.Type]*typeMeta

// getTypeMeta builds and caches the mapping table for a struct type.
func getTypeMeta(t reflect.Type) (*typeMeta, error) {
	if v, ok := metaCache.Load(t); ok {
		return v.(*typeMeta), nil
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("sheetio: type %s is not a struct", t)
	}

	m := &typeMeta{}
	numField := t.NumField()
	for i := 0; i < numField; i++ {
		f := t.Field(i)
		// Skip unexported fields.
		if f.PkgPath != "" {
			continue
		}
		m.Fields = append(m.Fields, &fieldMeta{
			Index:  f.Index,
			Name:   f.Name,
			Column: strings.TrimSpace(f.Tag.Get("excel")),
			Type:   f.Type,
		})
	}

	metaCache.Store(t, m)
	return m, nil
}

// match resolves a header name to a field. An explicit `excel` tag
// match wins over a bare field-name match; within each criterion the
// first field in declaration order is used. Both are case-insensitive.
func (m *typeMeta) match(header string) *fieldMeta {
	for _, fm := range m.Fields {
		if fm.Column != "" && strings.EqualFold(fm.Column, header) {
			return fm
		}
	}
	for _, fm := range m.Fields {
		if strings.EqualFold(fm.Name, header) {
			return fm
		}
	}
	return nil
}

/* =========================================================
 *  Object Mapping
 * ========================================================= */

// mapGrid treats grid[0] as a header row and builds one T per
// subsequent row. Mapping failures abort unless o.IgnoreMappingErrors
// is set, in which case the offending assignment is skipped and
// mapping continues best-effort.
func mapGrid[T any](grid [][]any, o *Options, legacyDates bool) ([]T, error) {
	if len(grid) == 0 {
		return nil, nil
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	meta, err := getTypeMeta(t)
	if err != nil {
		return nil, err
	}

	headers := headerNames(grid[0], o.HeaderReplacement)
	fields := make([]*fieldMeta, len(headers))
	for i, h := range headers {
		if h != "" {
			fields[i] = meta.match(h)
		}
	}

	out := make([]T, 0, len(grid)-1)
	for ri, row := range grid[1:] {
		v := reflect.New(t).Elem()
		for ci := 0; ci < len(headers) && ci < len(row); ci++ {
			if headers[ci] == "" {
				if row[ci] == nil || o.IgnoreMappingErrors {
					continue
				}
				return nil, &MappingError{
					Row: ri + 2, Col: ci + 1, Value: row[ci],
					Err: errors.New("column has an empty header"),
				}
			}
			fm := fields[ci]
			if fm == nil {
				if o.IgnoreMappingErrors {
					continue
				}
				return nil, &MappingError{
					Row: ri + 2, Col: ci + 1, Header: headers[ci], Value: row[ci],
					Err: fmt.Errorf("no field of %s matches header %q", t, headers[ci]),
				}
			}
			if row[ci] == nil {
				continue
			}
			val, err := castCell(row[ci], fm.Type, legacyDates)
			if err != nil {
				if o.IgnoreMappingErrors {
					continue
				}
				return nil, &MappingError{
					Row: ri + 2, Col: ci + 1, Header: headers[ci], Field: fm.Name, Value: row[ci],
					Err: err,
				}
			}
			v.FieldByIndex(fm.Index).Set(val)
		}

		obj := v.Interface().(T)

		// Struct-level validation (if configured). Validation failures
		// are not mapping errors and always surface.
		if o.GoValidator != nil {
			if err := o.GoValidator.Struct(obj); err != nil {
				return nil, fmt.Errorf("sheetio: row %d: %w", ri+2, err)
			}
		}

		out = append(out, obj)
	}
	return out, nil
}
