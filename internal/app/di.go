package app

import (
	"log/slog"

	"cn-data/internal/calendar"
	"cn-data/internal/crawl"
	"cn-data/internal/provider"
	"cn-data/internal/saver"
	"cn-data/internal/slogx"
	"cn-data/internal/window"
)

// ProvideConfig loads config from .env and environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideLogger creates the stdout logger at cfg.LogLevel and makes it the default (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	l := slogx.NewDefault(cfg.LogLevel)
	slog.SetDefault(l)
	return l
}

// ProvideTableSaver creates TableSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideTableSaver(cfg *Config) (saver.TableSaver, error) {
	return CreateTableSaver(cfg)
}

// ProvideDataStore returns the store of reference tables (trade_cal, stock_basic).
func ProvideDataStore(cfg *Config, ts saver.TableSaver) *saver.Store {
	return saver.NewStore(cfg.DataDir, ts)
}

// ProvideTushareProvider creates the Tushare provider (for Wire).
// The cleanup closes its connections.
func ProvideTushareProvider(cfg *Config, logger *slog.Logger) (*provider.TushareProvider, func(), error) {
	p, err := CreateProvider(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, func() { p.Close() }, nil
}

// ProvideResolver creates the trading-date resolver in the market time zone.
func ProvideResolver(cfg *Config) (*calendar.Resolver, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	r := calendar.NewResolver(cfg.CutoffHour, loc)
	r.CountEffectiveEnd = cfg.CountEffectiveEnd
	return r, nil
}

// ProvideAcquirer creates the snapshot acquirer with the configured retry policy.
func ProvideAcquirer(cfg *Config, dp provider.DataProvider, logger *slog.Logger) *crawl.Acquirer {
	policy := provider.RetryPolicy{MaxAttempts: cfg.MaxRetries, Backoff: cfg.RetryBackoff}
	return crawl.NewAcquirer(dp, policy, cfg.FallbackRPS, logger)
}

// ProvideEngine creates the window engine writing to cfg.ResultDir.
func ProvideEngine(cfg *Config, a *crawl.Acquirer, ts saver.TableSaver, logger *slog.Logger) (*window.Engine, error) {
	threshold, err := cfg.ThresholdValue()
	if err != nil {
		return nil, err
	}
	return window.NewEngine(a, saver.NewStore(cfg.ResultDir, ts), threshold, logger), nil
}
