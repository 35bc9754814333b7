package tushare

import (
	"context"
	"time"

	"cn-data/internal/model"
)

// Dataset names.
const (
	APITradeCal   = "trade_cal"
	APIStockBasic = "stock_basic"
	APIDaily      = "daily"
)

// TradeCal fetches the full trading calendar of the default exchange.
func (c *Client) TradeCal(ctx context.Context) (*model.Table, error) {
	return c.Query(ctx, APITradeCal, map[string]string{"exchange": ""}, model.TradeCalColumns)
}

// StockBasic fetches every currently listed security.
func (c *Client) StockBasic(ctx context.Context) (*model.Table, error) {
	return c.Query(ctx, APIStockBasic, map[string]string{"exchange": "", "list_status": "L"}, model.StockBasicColumns)
}

// Daily fetches the daily bars of all securities on date.
func (c *Client) Daily(ctx context.Context, date time.Time) (*model.Table, error) {
	return c.Query(ctx, APIDaily, map[string]string{"trade_date": model.FormatDate(date)}, model.DailyColumns)
}

// DailyByCode fetches the daily bar of one security on date.
func (c *Client) DailyByCode(ctx context.Context, code string, date time.Time) (*model.Table, error) {
	return c.Query(ctx, APIDaily, map[string]string{"ts_code": code, "trade_date": model.FormatDate(date)}, model.DailyColumns)
}
