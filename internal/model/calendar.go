package model

import (
	"fmt"
	"time"
)

// Columns of the trade_cal dataset.
const (
	ColExchange     = "exchange"
	ColCalDate      = "cal_date"
	ColIsOpen       = "is_open"
	ColPretradeDate = "pretrade_date"
)

// TradeCalColumns is the field list requested from trade_cal.
var TradeCalColumns = []string{ColExchange, ColCalDate, ColIsOpen, ColPretradeDate}

// TradeDay is one row of the exchange trading calendar.
type TradeDay struct {
	Exchange      string
	Date          time.Time
	IsOpen        bool
	PrevTradeDate time.Time // zero when the provider left it empty
}

// TradeDaysFromTable decodes trade_cal rows.
func TradeDaysFromTable(t *Table) ([]TradeDay, error) {
	dateIdx, openIdx, prevIdx := t.Index(ColCalDate), t.Index(ColIsOpen), t.Index(ColPretradeDate)
	if dateIdx < 0 || openIdx < 0 || prevIdx < 0 {
		return nil, fmt.Errorf("trade_cal: need columns %s, %s, %s, got %v", ColCalDate, ColIsOpen, ColPretradeDate, t.Columns)
	}
	exIdx := t.Index(ColExchange)

	days := make([]TradeDay, 0, len(t.Rows))
	for i, row := range t.Rows {
		date, err := ParseDate(cell(row, dateIdx))
		if err != nil {
			return nil, fmt.Errorf("trade_cal row %d: %s: %w", i, ColCalDate, err)
		}
		open, err := parseFlag(cell(row, openIdx))
		if err != nil {
			return nil, fmt.Errorf("trade_cal row %d: %s: %w", i, ColIsOpen, err)
		}
		var prev time.Time
		if s := cell(row, prevIdx); s != "" {
			if prev, err = ParseDate(s); err != nil {
				return nil, fmt.Errorf("trade_cal row %d: %s: %w", i, ColPretradeDate, err)
			}
		}
		days = append(days, TradeDay{
			Exchange:      cell(row, exIdx),
			Date:          date,
			IsOpen:        open,
			PrevTradeDate: prev,
		})
	}
	return days, nil
}

// ParseDate parses a yyyymmdd string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders d as yyyymmdd.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DateOf truncates t to its calendar date in t's own location, returned as UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1", "1.0", "true", "True":
		return true, nil
	case "0", "0.0", "false", "False":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q", s)
	}
}
