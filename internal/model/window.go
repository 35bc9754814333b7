package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ColRate is the close-to-close return column.
const ColRate = "rate"

// WindowRow is one security's close-to-close change over the window.
type WindowRow struct {
	Code       string
	CloseStart decimal.Decimal
	CloseEnd   decimal.Decimal
	Rate       decimal.Decimal // CloseEnd/CloseStart - 1
}

// CloseColumn names the close column of a snapshot taken on date, e.g. close_20240228.
func CloseColumn(date time.Time) string {
	return ColClose + "_" + FormatDate(date)
}

// WindowColumns returns the result header for the given window.
func WindowColumns(start, end time.Time) []string {
	return []string{ColCode, CloseColumn(start), CloseColumn(end), ColRate}
}

// WindowRowsToTable encodes rows with the date-stamped close columns.
func WindowRowsToTable(rows []WindowRow, start, end time.Time) *Table {
	t := NewTable(WindowColumns(start, end)...)
	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Code, r.CloseStart.String(), r.CloseEnd.String(), r.Rate.String()})
	}
	return t
}

// WindowRowsFromTable decodes a table written by WindowRowsToTable. Nothing in the
// run reads results back; it exists so a saved result_df can be decoded and checked
// against what was computed.
func WindowRowsFromTable(t *Table, start, end time.Time) ([]WindowRow, error) {
	cols := WindowColumns(start, end)
	idx := make([]int, len(cols))
	for i, c := range cols {
		if idx[i] = t.Index(c); idx[i] < 0 {
			return nil, fmt.Errorf("window: column %q not found in %v", c, t.Columns)
		}
	}
	out := make([]WindowRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		var vals [3]decimal.Decimal
		for j := 0; j < 3; j++ {
			v, err := decimal.NewFromString(cell(row, idx[j+1]))
			if err != nil {
				return nil, fmt.Errorf("window row %d: %s: %w", i, cols[j+1], err)
			}
			vals[j] = v
		}
		out = append(out, WindowRow{Code: cell(row, idx[0]), CloseStart: vals[0], CloseEnd: vals[1], Rate: vals[2]})
	}
	return out, nil
}
