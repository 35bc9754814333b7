package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TUSHARE_TOKEN", "abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://api.tushare.pro", cfg.TushareURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "Data", cfg.DataDir)
	assert.Equal(t, "Result", cfg.ResultDir)
	assert.Equal(t, "csv", cfg.SaveFormat)
	assert.Equal(t, 20, cfg.SessionOffset)
	assert.Equal(t, 15, cfg.CutoffHour)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	assert.False(t, cfg.CountEffectiveEnd)

	th, err := cfg.ThresholdValue()
	require.NoError(t, err)
	assert.Equal(t, "-0.2", th.String())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TUSHARE_TOKEN", "abc")
	t.Setenv("PROFILE", "prod")
	t.Setenv("SESSION_OFFSET", "5")
	t.Setenv("END_DATE", "20240301")
	t.Setenv("COUNT_EFFECTIVE_END", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "parquet", cfg.SaveFormat)
	assert.Equal(t, 5, cfg.SessionOffset)
	assert.True(t, cfg.CountEffectiveEnd)

	t.Setenv("SAVE_FORMAT", "xlsx")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.SaveFormat)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{}},
		{"bad format", map[string]string{"TUSHARE_TOKEN": "x", "SAVE_FORMAT": "hdf5"}},
		{"negative offset", map[string]string{"TUSHARE_TOKEN": "x", "SESSION_OFFSET": "-1"}},
		{"bad threshold", map[string]string{"TUSHARE_TOKEN": "x", "THRESHOLD": "twenty"}},
		{"bad tz", map[string]string{"TUSHARE_TOKEN": "x", "MARKET_TZ": "Mars/Olympus"}},
		{"bad end date", map[string]string{"TUSHARE_TOKEN": "x", "END_DATE": "20241399"}},
		{"bad cutoff", map[string]string{"TUSHARE_TOKEN": "x", "CUTOFF_HOUR": "24"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestFormatForProfile(t *testing.T) {
	assert.Equal(t, "parquet", formatForProfile("prod"))
	assert.Equal(t, "parquet", formatForProfile("Production"))
	assert.Equal(t, "csv", formatForProfile("dev"))
	assert.Equal(t, "csv", formatForProfile(""))
}

func TestNominalEndDate(t *testing.T) {
	cfg := &Config{MarketTZ: "Asia/Shanghai"}
	// 2024-02-29 20:00 UTC is already 2024-03-01 in Shanghai
	got, err := cfg.NominalEndDate(time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	cfg.EndDate = "20240115"
	got, err = cfg.NominalEndDate(time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestCreateTableSaver(t *testing.T) {
	ts, err := CreateTableSaver(&Config{SaveFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", ts.Extension())

	_, err = CreateTableSaver(&Config{SaveFormat: "feather"})
	assert.Error(t, err)
}

func TestCreateProvider_EmptyToken(t *testing.T) {
	_, err := CreateProvider(&Config{TushareToken: "  "}, nil)
	assert.Error(t, err)
}
