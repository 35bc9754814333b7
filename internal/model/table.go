package model

import (
	"fmt"
	"strings"
)

// DateLayout is the yyyymmdd layout used by the provider and every persisted table.
const DateLayout = "20060102"

// Table is a row-oriented table of string cells.
// Dùng chung cho provider (raw rows), saver và các codec typed bên dưới.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Column returns every value of column. Missing cells are "".
func (t *Table) Column(column string) ([]string, error) {
	idx := t.Index(column)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = cell(row, idx)
	}
	return out, nil
}

// AddRow appends a row; short rows are padded, long rows rejected.
func (t *Table) AddRow(values ...string) error {
	if len(values) > len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.Columns))
	}
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// Append copies the rows of other into t, aligning by column name.
// An empty t adopts the columns of other. Columns of other unknown to t are dropped.
func (t *Table) Append(other *Table) {
	if other == nil || len(other.Columns) == 0 {
		return
	}
	if len(t.Columns) == 0 {
		t.Columns = append([]string(nil), other.Columns...)
	}
	pos := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		pos[i] = other.Index(c)
	}
	for _, src := range other.Rows {
		row := make([]string, len(t.Columns))
		for i, p := range pos {
			if p >= 0 {
				row[i] = cell(src, p)
			}
		}
		t.Rows = append(t.Rows, row)
	}
}

// Dedup returns a copy of t without repeated rows. The first occurrence wins.
func (t *Table) Dedup() *Table {
	out := NewTable(t.Columns...)
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		k := strings.Join(row, "\x1f")
		if seen[k] {
			continue
		}
		seen[k] = true
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
