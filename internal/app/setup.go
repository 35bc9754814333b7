package app

import (
	"fmt"
	"log/slog"
	"strings"

	"cn-data/internal/provider"
	"cn-data/internal/provider/tushare"
	"cn-data/internal/saver"
)

// CreateProvider creates DataProvider from config (currently Tushare only)
func CreateProvider(cfg *Config, logger *slog.Logger) (*provider.TushareProvider, error) {
	if strings.TrimSpace(cfg.TushareToken) == "" {
		return nil, fmt.Errorf("TUSHARE_TOKEN not set")
	}
	return provider.NewTushareProvider(tushare.Config{
		BaseURL: cfg.TushareURL,
		Token:   cfg.TushareToken,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
}

// CreateTableSaver returns the saver for cfg.SaveFormat.
func CreateTableSaver(cfg *Config) (saver.TableSaver, error) {
	ts := saver.NewTableSaver(cfg.SaveFormat)
	if ts == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, json, parquet, xlsx)", cfg.SaveFormat)
	}
	return ts, nil
}
