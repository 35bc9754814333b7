package provider

import (
	"context"
	"time"

	"cn-data/internal/model"
)

// DataProvider is the abstraction used by the application when accessing market data.
// Every method returns raw provider rows; any error is a *ProviderError.
type DataProvider interface {
	GetName() string

	// TradeCalendar returns the trading calendar (exchange, cal_date, is_open, pretrade_date).
	TradeCalendar(ctx context.Context) (*model.Table, error)

	// SecurityList returns the listed securities (ts_code, symbol, name, area, industry, list_date).
	SecurityList(ctx context.Context) (*model.Table, error)

	// DailySnapshot returns the daily bars of every security on date in one call.
	DailySnapshot(ctx context.Context, date time.Time) (*model.Table, error)

	// DailyForSecurity returns the daily bar of one security on date.
	// An empty table means the security did not trade that day.
	DailyForSecurity(ctx context.Context, code string, date time.Time) (*model.Table, error)

	Close() error
}
