package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Dashboard struct {
		Title            string  `yaml:"title"`
		DateOrigin       string  `yaml:"date_origin"`
		PrimaryRowHeight float64 `yaml:"primary_row_height"`
	} `yaml:"dashboard"`
	OHLC struct {
		Source     string   `yaml:"source"` // synthetic, yahoo or rest
		BaseURL    string   `yaml:"base_url"`
		APIKey     string   `yaml:"api_key"`
		Symbol     string   `yaml:"symbol"`
		Points     int      `yaml:"points"`
		Bucket     string   `yaml:"bucket"`
		BandMode   string   `yaml:"band_mode"` // fixed or bollinger
		BandOffset *float64 `yaml:"band_offset"`
		BollPeriod int      `yaml:"bollinger_period"`
		BollDevs   float64  `yaml:"bollinger_deviations"`
	} `yaml:"ohlc"`
	Trace struct {
		Points int     `yaml:"points"`
		Bucket string  `yaml:"bucket"`
		Scale  float64 `yaml:"scale"`
		Offset string  `yaml:"offset"` // shift of the trace x axis from the date origin, eg. 12h
	} `yaml:"trace"`
	View struct {
		MarginFraction *float64 `yaml:"margin_fraction"`
	} `yaml:"view"`
	Generator struct {
		Seed int64 `yaml:"seed"`
	} `yaml:"generator"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Output struct {
		PNGPath string `yaml:"png_path"`
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OHLC_SOURCE"); v != "" {
		cfg.OHLC.Source = v
	}
	if v := os.Getenv("OHLC_SYMBOL"); v != "" {
		cfg.OHLC.Symbol = v
	}
	if v := os.Getenv("OHLC_BASE_URL"); v != "" {
		cfg.OHLC.BaseURL = v
	}
	if v := os.Getenv("OHLC_API_KEY"); v != "" {
		cfg.OHLC.APIKey = v
	}
	if v := os.Getenv("OHLC_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OHLC.Points = n
		}
	}
	if v := os.Getenv("TRACE_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trace.Points = n
		}
	}
	if v := os.Getenv("BAND_OFFSET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OHLC.BandOffset = &f
		}
	}
	if v := os.Getenv("MARGIN_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.View.MarginFraction = &f
		}
	}
	if v := os.Getenv("GENERATOR_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Generator.Seed = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Dashboard.Title == "" {
		cfg.Dashboard.Title = "Trading dashboard"
	}
	if cfg.Dashboard.DateOrigin == "" {
		cfg.Dashboard.DateOrigin = "2018-01-01"
	}
	if cfg.Dashboard.PrimaryRowHeight == 0 {
		cfg.Dashboard.PrimaryRowHeight = 2
	}
	if cfg.OHLC.Source == "" {
		cfg.OHLC.Source = "synthetic"
	}
	if cfg.OHLC.Symbol == "" {
		cfg.OHLC.Symbol = "SPX500"
	}
	if cfg.OHLC.Points == 0 {
		cfg.OHLC.Points = 100
	}
	if cfg.OHLC.Bucket == "" {
		cfg.OHLC.Bucket = "1d"
	}
	if cfg.OHLC.BandMode == "" {
		cfg.OHLC.BandMode = "fixed"
	}
	if cfg.OHLC.BandOffset == nil {
		f := 0.2
		cfg.OHLC.BandOffset = &f
	}
	if cfg.OHLC.BollPeriod == 0 {
		cfg.OHLC.BollPeriod = 20
	}
	if cfg.OHLC.BollDevs == 0 {
		cfg.OHLC.BollDevs = 2
	}
	if cfg.Trace.Points == 0 {
		cfg.Trace.Points = 990
	}
	if cfg.Trace.Bucket == "" {
		cfg.Trace.Bucket = "2h24m"
	}
	if cfg.Trace.Scale == 0 {
		cfg.Trace.Scale = 10
	}
	if cfg.View.MarginFraction == nil {
		f := 0.33
		cfg.View.MarginFraction = &f
	}
	if cfg.Output.Width == 0 {
		cfg.Output.Width = 1200
	}
	if cfg.Output.Height == 0 {
		cfg.Output.Height = 900
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := c.DateOrigin(); err != nil {
		return err
	}
	switch c.OHLC.Source {
	case "synthetic", "yahoo":
	case "rest":
		if c.OHLC.BaseURL == "" {
			return fmt.Errorf("ohlc.base_url is required for the rest source")
		}
	default:
		return fmt.Errorf("ohlc.source %q is not one of synthetic, yahoo, rest", c.OHLC.Source)
	}
	switch c.OHLC.BandMode {
	case "fixed", "bollinger":
	default:
		return fmt.Errorf("ohlc.band_mode %q is not one of fixed, bollinger", c.OHLC.BandMode)
	}
	if c.OHLC.Points <= 0 {
		return fmt.Errorf("ohlc.points must be positive")
	}
	if c.Trace.Points <= 0 {
		return fmt.Errorf("trace.points must be positive")
	}
	if c.Trace.Scale <= 0 {
		return fmt.Errorf("trace.scale must be positive")
	}
	if *c.OHLC.BandOffset < 0 {
		return fmt.Errorf("ohlc.band_offset must not be negative")
	}
	if c.OHLC.BollPeriod <= 1 {
		return fmt.Errorf("ohlc.bollinger_period must be greater than 1")
	}
	if *c.View.MarginFraction < 0 {
		return fmt.Errorf("view.margin_fraction must not be negative")
	}
	if c.Dashboard.PrimaryRowHeight <= 0 {
		return fmt.Errorf("dashboard.primary_row_height must be positive")
	}
	if _, err := c.OHLCBucket(); err != nil {
		return err
	}
	if _, err := c.TraceBucket(); err != nil {
		return err
	}
	if _, err := c.TraceOffset(); err != nil {
		return err
	}
	return nil
}

// DateOrigin parses dashboard.date_origin as a UTC date.
func (c *Config) DateOrigin() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Dashboard.DateOrigin)
	if err != nil {
		return time.Time{}, fmt.Errorf("dashboard.date_origin: %w", err)
	}
	return t, nil
}

// OHLCBucket parses ohlc.bucket, accepting day units such as "1d".
func (c *Config) OHLCBucket() (time.Duration, error) {
	return parseBucket("ohlc.bucket", c.OHLC.Bucket)
}

// TraceBucket parses trace.bucket.
func (c *Config) TraceBucket() (time.Duration, error) {
	return parseBucket("trace.bucket", c.Trace.Bucket)
}

// TraceOffset parses trace.offset. An empty offset keeps the trace on the date origin.
func (c *Config) TraceOffset() (time.Duration, error) {
	if c.Trace.Offset == "" {
		return 0, nil
	}
	d, err := str2duration.ParseDuration(c.Trace.Offset)
	if err != nil {
		return 0, fmt.Errorf("trace.offset: %w", err)
	}
	return d, nil
}

func parseBucket(field, v string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}
