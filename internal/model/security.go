package model

import "fmt"

// Columns of the stock_basic dataset.
const (
	ColCode     = "ts_code"
	ColSymbol   = "symbol"
	ColName     = "name"
	ColArea     = "area"
	ColIndustry = "industry"
	ColListDate = "list_date"
)

// StockBasicColumns is the field list requested from stock_basic.
var StockBasicColumns = []string{ColCode, ColSymbol, ColName, ColArea, ColIndustry, ColListDate}

// Security is one listed stock.
type Security struct {
	Code     string
	Symbol   string
	Name     string
	Area     string
	Industry string
	ListDate string
}

// SecuritiesFromTable decodes stock_basic rows. Only ts_code is mandatory.
func SecuritiesFromTable(t *Table) ([]Security, error) {
	codeIdx := t.Index(ColCode)
	if codeIdx < 0 {
		return nil, fmt.Errorf("stock_basic: column %s not found in %v", ColCode, t.Columns)
	}
	sym, name, area, ind, list := t.Index(ColSymbol), t.Index(ColName), t.Index(ColArea), t.Index(ColIndustry), t.Index(ColListDate)

	out := make([]Security, 0, len(t.Rows))
	for i, row := range t.Rows {
		code := cell(row, codeIdx)
		if code == "" {
			return nil, fmt.Errorf("stock_basic row %d: empty %s", i, ColCode)
		}
		out = append(out, Security{
			Code:     code,
			Symbol:   cell(row, sym),
			Name:     cell(row, name),
			Area:     cell(row, area),
			Industry: cell(row, ind),
			ListDate: cell(row, list),
		})
	}
	return out, nil
}

// Codes returns the security codes in order, skipping repeats.
func Codes(secs []Security) []string {
	seen := make(map[string]bool, len(secs))
	out := make([]string, 0, len(secs))
	for _, s := range secs {
		if seen[s.Code] {
			continue
		}
		seen[s.Code] = true
		out = append(out, s.Code)
	}
	return out
}
