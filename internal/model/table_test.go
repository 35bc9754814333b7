package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddRow(t *testing.T) {
	tb := NewTable("a", "b")
	require.NoError(t, tb.AddRow("1"))
	assert.Equal(t, [][]string{{"1", ""}}, tb.Rows)
	assert.Error(t, tb.AddRow("1", "2", "3"))
}

func TestTable_Append(t *testing.T) {
	dst := NewTable()
	src := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}
	dst.Append(src)
	assert.Equal(t, []string{"a", "b"}, dst.Columns)

	other := &Table{Columns: []string{"b", "c"}, Rows: [][]string{{"x", "y"}}}
	dst.Append(other)
	assert.Equal(t, [][]string{{"1", "2"}, {"", "x"}}, dst.Rows)

	dst.Append(nil)
	dst.Append(NewTable())
	assert.Equal(t, 2, dst.Len())
}

func TestTable_Dedup(t *testing.T) {
	tb := &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"1", "2"}, {"1", "3"}, {"1", "2"}},
	}
	got := tb.Dedup()
	assert.Equal(t, [][]string{{"1", "2"}, {"1", "3"}}, got.Rows)
	assert.Len(t, tb.Rows, 4, "source must be untouched")
}

func TestTable_Column(t *testing.T) {
	tb := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3"}}}
	col, err := tb.Column("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", ""}, col)

	_, err = tb.Column("zz")
	assert.Error(t, err)
}

func TestTradeDaysFromTable(t *testing.T) {
	tb := &Table{
		Columns: TradeCalColumns,
		Rows: [][]string{
			{"SSE", "20240301", "1", "20240229"},
			{"SSE", "20240302", "0.0", ""},
		},
	}
	days, err := TradeDaysFromTable(tb)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.True(t, days[0].IsOpen)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), days[0].PrevTradeDate)
	assert.False(t, days[1].IsOpen)
	assert.True(t, days[1].PrevTradeDate.IsZero())

	tb.Rows = append(tb.Rows, []string{"SSE", "2024-03-03", "1", "20240301"})
	_, err = TradeDaysFromTable(tb)
	assert.ErrorContains(t, err, "row 2")

	_, err = TradeDaysFromTable(NewTable("cal_date"))
	assert.Error(t, err)
}

func TestSecuritiesFromTable(t *testing.T) {
	tb := &Table{
		Columns: StockBasicColumns,
		Rows: [][]string{
			{"000001.SZ", "000001", "平安银行", "深圳", "银行", "19910403"},
			{"600000.SH", "600000", "浦发银行", "上海", "银行", "19991110"},
			{"000001.SZ", "000001", "平安银行", "深圳", "银行", "19910403"},
		},
	}
	secs, err := SecuritiesFromTable(tb)
	require.NoError(t, err)
	assert.Equal(t, "平安银行", secs[0].Name)
	assert.Equal(t, []string{"000001.SZ", "600000.SH"}, Codes(secs))
}

func TestClosesFromTable(t *testing.T) {
	tb := &Table{
		Columns: []string{"ts_code", "close", "vol"},
		Rows:    [][]string{{"A", "10.5", "1"}, {"B", "", "2"}, {"", "3", "3"}},
	}
	closes, skipped, err := ClosesFromTable(tb)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, closes, 1)
	assert.True(t, closes[0].Close.Equal(decimal.RequireFromString("10.5")))

	closes, skipped, err = ClosesFromTable(NewTable())
	require.NoError(t, err)
	assert.Empty(t, closes)
	assert.Zero(t, skipped)

	_, _, err = ClosesFromTable(&Table{Columns: []string{"x"}, Rows: [][]string{{"1"}}})
	assert.Error(t, err)
}

func TestDailyPricesFromTable(t *testing.T) {
	tb := NewTable(DailyColumns...)
	require.NoError(t, tb.AddRow("000001.SZ", "20240301", "10.1", "10.5", "9.9", "10.2", "10.0", "0.2", "2.0", "1234.5", ""))
	require.NoError(t, tb.AddRow("600000.SH", "2024-03-01", "", "", "", "7.1"))
	require.NoError(t, tb.AddRow("600001.SH", "20240301", "x", "", "", "7.1"))
	require.NoError(t, tb.AddRow("600002.SH", "20240301"))
	require.NoError(t, tb.AddRow("600003.SH", "", "", "", "", "3.3"))

	prices, skipped, err := DailyPricesFromTable(tb)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, prices, 2)

	p := prices[0]
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.TradeDate)
	assert.Equal(t, "10.2", p.Close.String())
	assert.True(t, p.Amount.IsZero())

	assert.Equal(t, "600003.SH", prices[1].Code)
	assert.True(t, prices[1].TradeDate.IsZero())
	assert.True(t, prices[1].Open.IsZero())
}

func TestWindowRowsTable(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	rows := []WindowRow{{
		Code:       "A",
		CloseStart: decimal.NewFromInt(100),
		CloseEnd:   decimal.NewFromInt(70),
		Rate:       decimal.RequireFromString("-0.3"),
	}}
	tb := WindowRowsToTable(rows, start, end)
	assert.Equal(t, []string{"ts_code", "close_20240228", "close_20240229", "rate"}, tb.Columns)
	assert.Equal(t, [][]string{{"A", "100", "70", "-0.3"}}, tb.Rows)

	back, err := WindowRowsFromTable(tb, start, end)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, back[0].Rate.Equal(rows[0].Rate))

	_, err = WindowRowsFromTable(tb, start.AddDate(0, 0, -1), end)
	assert.Error(t, err)
}
