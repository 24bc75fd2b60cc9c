// Package table holds the in-memory tabular model shared by the pipeline
// stages. A Table is a fully materialized, row-major grid of typed cells;
// stages derive new tables from old ones and never mutate a table they
// received.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates cell contents.
type Kind int

const (
	// Missing marks an absent value. Arithmetic over a Missing operand
	// stays missing; it is never coerced to zero.
	Missing Kind = iota
	// String is a categorical/text value.
	String
	// Number is a parsed numeric value. Raw keeps the source text.
	Number
)

// Cell is one value in a table.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
}

// Str returns a string cell.
func Str(s string) Cell { return Cell{Kind: String, Str: s} }

// Num returns a numeric cell.
func Num(f float64) Cell { return Cell{Kind: Number, Num: f} }

// None returns a missing cell.
func None() Cell { return Cell{} }

// Table is an ordered set of named columns over row-major cells.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Cell
}

// New creates an empty table with the given column order.
// Duplicate column names are rejected.
func New(cols []string) (*Table, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	return &Table{cols: append([]string(nil), cols...), index: index}, nil
}

// FromRecords builds a table from a header and raw string rows, the shape
// produced by the ingest readers. Empty strings become Missing cells;
// values that parse as floats become Number cells with the raw text kept.
// Short rows are padded with Missing.
func FromRecords(header []string, records [][]string) (*Table, error) {
	t, err := New(header)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := make([]Cell, len(header))
		for j := range header {
			var v string
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			if v == "" {
				continue // stays Missing
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				row[j] = Cell{Kind: Number, Str: v, Num: f}
			} else {
				row[j] = Str(v)
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in order. The slice is a copy.
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

// HasColumn reports whether name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Clone returns a deep copy. Derived stages clone before writing so the
// caller's table is never touched.
func (t *Table) Clone() *Table {
	cp := &Table{
		cols:  append([]string(nil), t.cols...),
		index: make(map[string]int, len(t.index)),
		rows:  make([][]Cell, len(t.rows)),
	}
	for k, v := range t.index {
		cp.index[k] = v
	}
	for i, r := range t.rows {
		cp.rows[i] = append([]Cell(nil), r...)
	}
	return cp
}

// Cell returns the cell at row i, column name. A missing column or an
// out-of-range row reads as a Missing cell.
func (t *Table) Cell(i int, name string) Cell {
	j, ok := t.index[name]
	if !ok || i < 0 || i >= len(t.rows) {
		return None()
	}
	return t.rows[i][j]
}

// SetCell overwrites the cell at row i, column name.
func (t *Table) SetCell(i int, name string, c Cell) error {
	j, ok := t.index[name]
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d out of range", i)
	}
	t.rows[i][j] = c
	return nil
}

// Float reads a numeric cell. ok is false for Missing or String cells.
func (t *Table) Float(i int, name string) (float64, bool) {
	c := t.Cell(i, name)
	if c.Kind != Number {
		return 0, false
	}
	return c.Num, true
}

// StringAt reads a cell as text. Number cells render their raw source
// text; ok is false only for Missing cells.
func (t *Table) StringAt(i int, name string) (string, bool) {
	c := t.Cell(i, name)
	switch c.Kind {
	case String:
		return c.Str, true
	case Number:
		if c.Str != "" {
			return c.Str, true
		}
		return strconv.FormatFloat(c.Num, 'g', -1, 64), true
	default:
		return "", false
	}
}

// AddColumn appends a column of cells. len(cells) must equal Len.
func (t *Table) AddColumn(name string, cells []Cell) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(cells) != len(t.rows) {
		return fmt.Errorf("column %q has %d cells, table has %d rows", name, len(cells), len(t.rows))
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], cells[i])
	}
	return nil
}

// RenameColumns applies fn to every column name. Renames that collide are
// an error since cells would become unaddressable.
func (t *Table) RenameColumns(fn func(string) string) error {
	cols := make([]string, len(t.cols))
	index := make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		n := fn(c)
		if _, dup := index[n]; dup {
			return fmt.Errorf("column rename collision on %q", n)
		}
		cols[i] = n
		index[n] = i
	}
	t.cols = cols
	t.index = index
	return nil
}
