package window

import (
	"sort"

	"github.com/shopspring/decimal"

	"cn-data/internal/model"
)

// DefaultThreshold keeps securities that lost at least 20%.
var DefaultThreshold = decimal.RequireFromString("-0.2")

var one = decimal.NewFromInt(1)

// Join inner-joins the start and end closes on code and computes end/start - 1.
// Output follows the order of start. Codes missing on either side are dropped,
// as are starts with a zero close. Repeated codes keep their first occurrence.
func Join(start, end []model.ClosePrice) []model.WindowRow {
	endByCode := make(map[string]decimal.Decimal, len(end))
	for _, e := range end {
		if _, dup := endByCode[e.Code]; !dup {
			endByCode[e.Code] = e.Close
		}
	}
	seen := make(map[string]bool, len(start))
	rows := make([]model.WindowRow, 0, len(start))
	for _, s := range start {
		if seen[s.Code] {
			continue
		}
		seen[s.Code] = true
		ec, ok := endByCode[s.Code]
		if !ok || s.Close.IsZero() {
			continue
		}
		rows = append(rows, model.WindowRow{
			Code:       s.Code,
			CloseStart: s.Close,
			CloseEnd:   ec,
			Rate:       ec.Div(s.Close).Sub(one),
		})
	}
	return rows
}

// Filter keeps rows with rate <= threshold, sorted by rate ascending (stable).
// The result is a new slice.
func Filter(rows []model.WindowRow, threshold decimal.Decimal) []model.WindowRow {
	out := make([]model.WindowRow, 0)
	for _, r := range rows {
		if r.Rate.LessThanOrEqual(threshold) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate.LessThan(out[j].Rate) })
	return out
}
