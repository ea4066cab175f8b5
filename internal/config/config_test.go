package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("read config: %v", err)
	}
	return v
}

func TestDecodeDefaults(t *testing.T) {
	v := newTestViper(t, `
supabase:
  url: https://abc.supabase.co
  service_key: secret
`)
	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Server.Env != "development" {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Supabase.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Supabase.Timeout)
	}
	if cfg.Cache.TTL != 10*time.Minute || cfg.Cache.RedisURL != "" {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Stats.MinCorrelationSamples != 5 || cfg.Stats.InsightTopN != 3 || cfg.Stats.CorrelationWindowDays != 30 {
		t.Errorf("unexpected stats defaults: %+v", cfg.Stats)
	}
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
}

func TestDecodeOverrides(t *testing.T) {
	v := newTestViper(t, `
server:
  env: production
  cors_allowed_origins: "https://app.habitmood.dev, https://*.habitmood.pages.dev"
supabase:
  url: https://abc.supabase.co
  service_key: secret
  timeout: 3s
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1m
stats:
  insight_top_n: 5
`)
	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := []string{"https://app.habitmood.dev", "https://*.habitmood.pages.dev"}
	if len(cfg.Server.CORSAllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.Server.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("origin %d = %q, want %q", i, cfg.Server.CORSAllowedOrigins[i], want[i])
		}
	}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	if cfg.Supabase.Timeout != 3*time.Second || cfg.Cache.TTL != time.Minute {
		t.Errorf("durations not decoded: %v %v", cfg.Supabase.Timeout, cfg.Cache.TTL)
	}
	if cfg.Stats.InsightTopN != 5 {
		t.Errorf("InsightTopN = %d, want 5", cfg.Stats.InsightTopN)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: "8080", RateLimit: 300, StatsRateLimit: 60},
			Supabase: SupabaseConfig{URL: "https://abc.supabase.co", ServiceKey: "k", Timeout: time.Second},
			Log:      LogConfig{Level: "info", Format: "json"},
			Cache:    CacheConfig{TTL: time.Minute},
			Stats:    StatsConfig{MinCorrelationSamples: 5, InsightTopN: 3, CorrelationWindowDays: 30},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing url", mutate: func(c *Config) { c.Supabase.URL = "" }, wantErr: "SUPABASE_URL"},
		{name: "missing key", mutate: func(c *Config) { c.Supabase.ServiceKey = "" }, wantErr: "SUPABASE_SERVICE_KEY"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: "cache.ttl"},
		{name: "zero samples", mutate: func(c *Config) { c.Stats.MinCorrelationSamples = 0 }, wantErr: "min_correlation_samples"},
		{name: "huge window", mutate: func(c *Config) { c.Stats.CorrelationWindowDays = 1000 }, wantErr: "correlation_window_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
