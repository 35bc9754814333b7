package provider

import (
	"context"
	"time"

	"cn-data/internal/model"
	"cn-data/internal/provider/tushare"
)

// TushareProvider is a DataProvider backed by the Tushare Pro API.
// It embeds *tushare.Client to expose the raw query methods as well.
type TushareProvider struct {
	*tushare.Client
}

// NewTushareProvider creates a new Tushare-backed DataProvider.
func NewTushareProvider(cfg tushare.Config) (*TushareProvider, error) {
	client, err := tushare.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &TushareProvider{Client: client}, nil
}

// GetName returns provider name
func (p *TushareProvider) GetName() string {
	return "Tushare"
}

func (p *TushareProvider) TradeCalendar(ctx context.Context) (*model.Table, error) {
	t, err := p.Client.TradeCal(ctx)
	return t, p.wrap(tushare.APITradeCal, err)
}

func (p *TushareProvider) SecurityList(ctx context.Context) (*model.Table, error) {
	t, err := p.Client.StockBasic(ctx)
	return t, p.wrap(tushare.APIStockBasic, err)
}

func (p *TushareProvider) DailySnapshot(ctx context.Context, date time.Time) (*model.Table, error) {
	t, err := p.Client.Daily(ctx, date)
	return t, p.wrap(tushare.APIDaily, err)
}

func (p *TushareProvider) DailyForSecurity(ctx context.Context, code string, date time.Time) (*model.Table, error) {
	t, err := p.Client.DailyByCode(ctx, code, date)
	return t, p.wrap(tushare.APIDaily, err)
}

func (p *TushareProvider) wrap(api string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: p.GetName(), API: api, Err: err}
}
