// Package excel reads and writes the xlsx files consumed and produced
// by the import/export pipeline. Row ↔ entity mapping is explicit: each
// entity declares its columns as name + getter + setter, so the column
// set is a compile-time artifact instead of a reflection walk.
package excel

import (
	"strconv"
	"strings"
	"time"
)

// Column binds one spreadsheet header to one entity field.
type Column[T any] struct {
	Name string
	Get  func(*T) string
	Set  func(*T, string)
}

// Codec is the ordered column set of an entity type. Order matters only
// for template/export generation; header matching is by name,
// case-insensitive.
type Codec[T any] struct {
	columns []Column[T]
}

func NewCodec[T any](columns ...Column[T]) *Codec[T] {
	return &Codec[T]{columns: columns}
}

// Names returns the expected headers in template order.
func (c *Codec[T]) Names() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name
	}
	return names
}

// Decode maps one data row onto a fresh entity. Headers are matched
// case-insensitively; cells beyond the row's length and unparseable
// cells leave the field at its zero value.
func (c *Codec[T]) Decode(headers []string, row []string) T {
	var entity T
	for i, header := range headers {
		col := c.lookup(header)
		if col == nil {
			continue
		}
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		col.Set(&entity, cell)
	}
	return entity
}

// Encode renders the entity as one row in column order.
func (c *Codec[T]) Encode(entity *T) []string {
	row := make([]string, len(c.columns))
	for i, col := range c.columns {
		row[i] = col.Get(entity)
	}
	return row
}

func (c *Codec[T]) lookup(header string) *Column[T] {
	for i := range c.columns {
		if strings.EqualFold(c.columns[i].Name, strings.TrimSpace(header)) {
			return &c.columns[i]
		}
	}
	return nil
}

// ── Column constructors ──────────────────────────────────────────────────────

// String binds a text column. Cells are stored verbatim.
func String[T any](name string, field func(*T) *string) Column[T] {
	return Column[T]{
		Name: name,
		Get:  func(e *T) string { return *field(e) },
		Set:  func(e *T, cell string) { *field(e) = cell },
	}
}

// Int binds a numeric column. Empty or unparseable cells map to 0, the
// type's default, matching how non-nullable numeric fields behave on
// import.
func Int[T any](name string, field func(*T) *int) Column[T] {
	return Column[T]{
		Name: name,
		Get:  func(e *T) string { return strconv.Itoa(*field(e)) },
		Set: func(e *T, cell string) {
			n, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return
			}
			*field(e) = n
		},
	}
}

// timeLayouts are tried in order when parsing date cells. Excel
// applications and exports disagree on formats, so be liberal.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Time binds a nullable date column. Empty or unparseable cells map to
// nil.
func Time[T any](name string, field func(*T) **time.Time) Column[T] {
	return Column[T]{
		Name: name,
		Get: func(e *T) string {
			t := *field(e)
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02 15:04:05")
		},
		Set: func(e *T, cell string) {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				return
			}
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, cell); err == nil {
					*field(e) = &t
					return
				}
			}
		},
	}
}
