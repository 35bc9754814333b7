package app

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // MARKET_TZ must load on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"cn-data/internal/model"
)

// Config holds application configuration from env
type Config struct {
	TushareToken string        `envconfig:"TUSHARE_TOKEN" validate:"required"`
	TushareURL   string        `envconfig:"TUSHARE_URL" default:"http://api.tushare.pro" validate:"required,url"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`

	DataDir    string `envconfig:"DATA_DIR" default:"Data" validate:"required"`
	ResultDir  string `envconfig:"RESULT_DIR" default:"Result" validate:"required"`
	SaveFormat string `envconfig:"SAVE_FORMAT" validate:"omitempty,oneof=csv json parquet xlsx"`
	Profile    string `envconfig:"PROFILE"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	EndDate           string        `envconfig:"END_DATE" validate:"omitempty,len=8,numeric"` // yyyymmdd; empty = today
	SessionOffset     int           `envconfig:"SESSION_OFFSET" default:"20" validate:"gte=0"`
	Threshold         string        `envconfig:"THRESHOLD" default:"-0.2" validate:"required"`
	CutoffHour        int           `envconfig:"CUTOFF_HOUR" default:"15" validate:"gte=0,lte=23"`
	MarketTZ          string        `envconfig:"MARKET_TZ" default:"Asia/Shanghai" validate:"required"`
	CountEffectiveEnd bool          `envconfig:"COUNT_EFFECTIVE_END" default:"false"`
	MaxRetries        int           `envconfig:"MAX_RETRIES" default:"3" validate:"gte=1"`
	RetryBackoff      time.Duration `envconfig:"RETRY_BACKOFF" default:"500ms" validate:"gte=0"`
	FallbackRPS       float64       `envconfig:"FALLBACK_RPS" default:"10" validate:"gte=0"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if cfg.SaveFormat == "" {
		cfg.SaveFormat = formatForProfile(cfg.Profile)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the values envconfig cannot parse itself.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.ThresholdValue(); err != nil {
		return fmt.Errorf("invalid THRESHOLD: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid MARKET_TZ: %w", err)
	}
	if c.EndDate != "" {
		if _, err := model.ParseDate(c.EndDate); err != nil {
			return fmt.Errorf("invalid END_DATE: %w", err)
		}
	}
	return nil
}

// formatForProfile: dev → csv, prod → parquet, anything else → csv.
func formatForProfile(profile string) string {
	switch strings.ToLower(profile) {
	case "prod", "production":
		return "parquet"
	default:
		return "csv"
	}
}

// ThresholdValue parses Threshold.
func (c *Config) ThresholdValue() (decimal.Decimal, error) {
	return decimal.NewFromString(c.Threshold)
}

// Location loads MarketTZ.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.MarketTZ)
}

// NominalEndDate returns EndDate, or today in the market time zone.
func (c *Config) NominalEndDate(now time.Time) (time.Time, error) {
	if c.EndDate != "" {
		return model.ParseDate(c.EndDate)
	}
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return model.DateOf(now.In(loc)), nil
}
