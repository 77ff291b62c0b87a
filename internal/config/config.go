// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/ukaji3/chazara-go/pkg/chazara"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

type Config struct {
	LogMode string `env:"LOG_MODE" envDefault:"development"`
	HTTP    HTTPConfig
	Chart   ChartConfig
}

type HTTPConfig struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":3001"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	MaxRequestBytes   int64         `env:"MAX_REQUEST_BYTES" envDefault:"1048576"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
}

type ChartConfig struct {
	DefaultReviews int    `env:"CHART_DEFAULT_REVIEWS" envDefault:"3"`
	DefaultColumns int    `env:"CHART_DEFAULT_COLUMNS" envDefault:"1"`
	MaxColumns     int    `env:"CHART_MAX_COLUMNS" envDefault:"5"`
	MaxReviews     int    `env:"CHART_MAX_REVIEWS" envDefault:"10"`
	MaxRows        int    `env:"CHART_MAX_ROWS" envDefault:"2000"`
	IncludeDate    bool   `env:"CHART_INCLUDE_DATE" envDefault:"true"`
	DateLocale     string `env:"CHART_DATE_LOCALE"`
	DefaultFormat  string `env:"CHART_DEFAULT_FORMAT" envDefault:"excel"`
	FontPath       string `env:"PDF_FONT_PATH"`
	Brand          string `env:"CHART_BRAND" envDefault:"Chazara Charts"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var cfg Config
	if err := Init(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Init(cfg interface{}) error {
	return env.Parse(cfg)
}

// Validate rejects limits that would make every request fail.
func (c *Config) Validate() error {
	ch := c.Chart
	switch {
	case ch.MaxReviews < 1:
		return errors.New("CHART_MAX_REVIEWS must be at least 1")
	case ch.MaxColumns < 1:
		return errors.New("CHART_MAX_COLUMNS must be at least 1")
	case ch.MaxRows < 1:
		return errors.New("CHART_MAX_ROWS must be at least 1")
	case ch.DefaultReviews < 1 || ch.DefaultReviews > ch.MaxReviews:
		return errors.New("CHART_DEFAULT_REVIEWS must be between 1 and CHART_MAX_REVIEWS")
	case ch.DefaultColumns < 1:
		return errors.New("CHART_DEFAULT_COLUMNS must be at least 1")
	case models.Format(ch.DefaultFormat) != models.FormatTabular && models.Format(ch.DefaultFormat) != models.FormatPaginated:
		return errors.New("CHART_DEFAULT_FORMAT must be excel or pdf")
	case c.HTTP.MaxRequestBytes <= 0:
		return errors.New("MAX_REQUEST_BYTES must be positive")
	}
	return nil
}

// Settings returns the chart defaults as the generator's immutable settings record.
func (c *Config) Settings() chazara.Settings {
	return chazara.Settings{
		DefaultReviews: c.Chart.DefaultReviews,
		DefaultColumns: c.Chart.DefaultColumns,
		MaxColumns:     c.Chart.MaxColumns,
		MaxReviews:     c.Chart.MaxReviews,
		MaxRows:        c.Chart.MaxRows,
		IncludeDate:    c.Chart.IncludeDate,
		DateLocale:     c.Chart.DateLocale,
		DefaultFormat:  models.Format(c.Chart.DefaultFormat),
		Brand:          c.Chart.Brand,
		FontPath:       c.Chart.FontPath,
	}
}
