package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Columns of the daily dataset.
const (
	ColTradeDate = "trade_date"
	ColOpen      = "open"
	ColHigh      = "high"
	ColLow       = "low"
	ColClose     = "close"
	ColPreClose  = "pre_close"
	ColChange    = "change"
	ColPctChg    = "pct_chg"
	ColVol       = "vol"
	ColAmount    = "amount"
)

// DailyColumns is the column set of a daily snapshot.
var DailyColumns = []string{
	ColCode, ColTradeDate, ColOpen, ColHigh, ColLow, ColClose,
	ColPreClose, ColChange, ColPctChg, ColVol, ColAmount,
}

// DailyPrice is one security's daily bar on one trade date.
type DailyPrice struct {
	Code      string
	TradeDate time.Time // zero when the snapshot has no trade_date column
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	PreClose  decimal.Decimal
	Change    decimal.Decimal
	PctChg    decimal.Decimal
	Vol       decimal.Decimal
	Amount    decimal.Decimal
}

// ClosePrice is the {ts_code, close} projection of a snapshot row.
type ClosePrice struct {
	Code  string
	Close decimal.Decimal
}

// ClosesFromTable projects a daily snapshot to code and close.
// Rows rejected by DailyPricesFromTable are skipped and counted.
func ClosesFromTable(t *Table) (closes []ClosePrice, skipped int, err error) {
	prices, skipped, err := DailyPricesFromTable(t)
	if err != nil {
		return nil, 0, err
	}
	if prices == nil {
		return nil, skipped, nil
	}
	closes = make([]ClosePrice, len(prices))
	for i, p := range prices {
		closes[i] = ClosePrice{Code: p.Code, Close: p.Close}
	}
	return closes, skipped, nil
}

// DailyPricesFromTable decodes every known column of a daily snapshot.
// A row needs a code and a close; rows missing either, or holding an unparsable
// trade_date or number, are skipped and counted. Other empty numeric cells decode to zero.
func DailyPricesFromTable(t *Table) (prices []DailyPrice, skipped int, err error) {
	codeIdx, closeIdx := t.Index(ColCode), t.Index(ColClose)
	if codeIdx < 0 || closeIdx < 0 {
		// An empty fallback snapshot has no columns at all.
		if len(t.Rows) == 0 {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("daily: need columns %s, %s, got %v", ColCode, ColClose, t.Columns)
	}
	dateIdx := t.Index(ColTradeDate)
	prices = make([]DailyPrice, 0, len(t.Rows))
	for _, row := range t.Rows {
		p, ok := decodeDaily(t, row, codeIdx, closeIdx, dateIdx)
		if !ok {
			skipped++
			continue
		}
		prices = append(prices, p)
	}
	return prices, skipped, nil
}

func decodeDaily(t *Table, row []string, codeIdx, closeIdx, dateIdx int) (DailyPrice, bool) {
	p := DailyPrice{Code: cell(row, codeIdx)}
	if p.Code == "" || cell(row, closeIdx) == "" {
		return p, false
	}
	if s := cell(row, dateIdx); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			return p, false
		}
		p.TradeDate = d
	}
	fields := []struct {
		col string
		dst *decimal.Decimal
	}{
		{ColOpen, &p.Open}, {ColHigh, &p.High}, {ColLow, &p.Low}, {ColClose, &p.Close},
		{ColPreClose, &p.PreClose}, {ColChange, &p.Change}, {ColPctChg, &p.PctChg},
		{ColVol, &p.Vol}, {ColAmount, &p.Amount},
	}
	for _, f := range fields {
		s := cell(row, t.Index(f.col))
		if s == "" {
			continue
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return p, false
		}
		*f.dst = v
	}
	return p, true
}
