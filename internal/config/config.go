package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Env                string   `mapstructure:"env"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimit          int      `mapstructure:"rate_limit"`
	StatsRateLimit     int      `mapstructure:"stats_rate_limit"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string        `mapstructure:"url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig selects log level, format and an optional rotating file
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// CacheConfig selects the statistics cache. An empty RedisURL keeps it in process.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// StatsConfig tunes the statistics engines
type StatsConfig struct {
	MinCorrelationSamples int `mapstructure:"min_correlation_samples"`
	InsightTopN           int `mapstructure:"insight_top_n"`
	CorrelationWindowDays int `mapstructure:"correlation_window_days"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.rate_limit", 300)
	v.SetDefault("server.stats_rate_limit", 60)

	v.SetDefault("supabase.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("stats.min_correlation_samples", 5)
	v.SetDefault("stats.insight_top_n", 3)
	v.SetDefault("stats.correlation_window_days", 30)
}

// Load reads configuration from environment variables and config files.
// A .env file in the working directory is loaded first when present; it never
// overrides variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("HABITMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables used by hosting platforms
	_ = v.BindEnv("server.port", "HABITMOOD_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "HABITMOOD_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "HABITMOOD_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")
	_ = v.BindEnv("cache.redis_url", "HABITMOOD_CACHE_REDIS_URL", "REDIS_URL")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Comma-separated env values arrive as a single element
	config.Server.CORSAllowedOrigins = splitList(config.Server.CORSAllowedOrigins)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.Supabase.ServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.Supabase.Timeout <= 0 {
		return fmt.Errorf("supabase.timeout must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Server.RateLimit <= 0 || c.Server.StatsRateLimit <= 0 {
		return fmt.Errorf("server rate limits must be positive")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if c.Stats.MinCorrelationSamples < 1 {
		return fmt.Errorf("stats.min_correlation_samples must be at least 1")
	}
	if c.Stats.InsightTopN < 1 {
		return fmt.Errorf("stats.insight_top_n must be at least 1")
	}
	if c.Stats.CorrelationWindowDays < 1 || c.Stats.CorrelationWindowDays > 366 {
		return fmt.Errorf("stats.correlation_window_days must be between 1 and 366")
	}
	return nil
}
