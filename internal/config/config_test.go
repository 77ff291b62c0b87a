package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/chazara-go/pkg/chazara"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
)

func TestInitDefaults(t *testing.T) {
	var cfg Config
	if err := Init(&cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if cfg.HTTP.Addr != ":3001" || cfg.HTTP.ReadHeaderTimeout != 5*time.Second || cfg.HTTP.ShutdownTimeout != 15*time.Second {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.HTTP.MaxRequestBytes != 1<<20 {
		t.Errorf("MaxRequestBytes = %d", cfg.HTTP.MaxRequestBytes)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.HTTP.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Settings(), chazara.DefaultSettings()) {
		t.Errorf("Settings() = %+v, expected %+v", cfg.Settings(), chazara.DefaultSettings())
	}
}

func TestInitFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("CORS_ORIGINS", "https://charts.example.org")
	t.Setenv("CHART_MAX_COLUMNS", "3")
	t.Setenv("CHART_INCLUDE_DATE", "false")
	t.Setenv("CHART_DATE_LOCALE", "en-GB")
	t.Setenv("CHART_DEFAULT_FORMAT", "pdf")
	t.Setenv("CHART_MAX_ROWS", "500")

	var cfg Config
	if err := Init(&cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	s := cfg.Settings()
	if cfg.HTTP.Addr != ":8080" || !reflect.DeepEqual(cfg.HTTP.CORSOrigins, []string{"https://charts.example.org"}) {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if s.MaxColumns != 3 || s.IncludeDate || s.DateLocale != "en-GB" || s.DefaultFormat != models.FormatPaginated || s.MaxRows != 500 {
		t.Errorf("Settings = %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max reviews", func(c *Config) { c.Chart.MaxReviews = 0 }},
		{"default above max", func(c *Config) { c.Chart.DefaultReviews = 11 }},
		{"zero columns", func(c *Config) { c.Chart.DefaultColumns = 0 }},
		{"zero max rows", func(c *Config) { c.Chart.MaxRows = 0 }},
		{"unknown format", func(c *Config) { c.Chart.DefaultFormat = "docx" }},
		{"no body", func(c *Config) { c.HTTP.MaxRequestBytes = 0 }},
	}

	for _, tt := range tests {
		var cfg Config
		if err := Init(&cfg); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
