// Package config loads and validates moviefeed configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Headless HeadlessConfig `mapstructure:"headless"`
	OMDb     OMDbConfig     `mapstructure:"omdb"`
	DB       DBConfig       `mapstructure:"db"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	PubSub   PubSubConfig   `mapstructure:"pubsub"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig defines API authentication toggles for the refresh endpoints.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// ScrapeConfig governs the chart scrape pipeline.
type ScrapeConfig struct {
	ChartURL  string `mapstructure:"chart_url"`
	UserAgent string `mapstructure:"user_agent"`
	Limit     int    `mapstructure:"limit"`
}

// HTTPConfig bounds network strategy attempts.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// HeadlessConfig configures the browser-automation fetch strategy.
type HeadlessConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
}

// OMDbConfig configures the movie-information API client.
type OMDbConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Plot    string `mapstructure:"plot"`
}

// DBConfig controls access to Postgres.
type DBConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// ArchiveConfig selects where raw fetched payloads are archived.
// Provider is one of "local", "memory", "gcs", or "off".
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	BaseDir   string `mapstructure:"base_dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// PubSubConfig holds metadata for refresh notifications. An empty ProjectID
// selects the in-memory publisher.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// IngestConfig controls the startup ingest of the popular-movies list.
type IngestConfig struct {
	OnStart bool `mapstructure:"on_start"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MOVIEFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("scrape.chart_url", "https://www.imdb.com/chart/top/")
	v.SetDefault("scrape.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("scrape.limit", 250)
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("omdb.base_url", "https://www.omdbapi.com/")
	v.SetDefault("omdb.plot", "full")
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("archive.provider", "off")
	v.SetDefault("archive.base_dir", "archive")
	v.SetDefault("archive.prefix", "pages")
	v.SetDefault("pubsub.topic_name", "moviefeed-refresh")
	v.SetDefault("ingest.on_start", false)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Scrape.ChartURL == "" {
		return fmt.Errorf("scrape.chart_url is required")
	}
	if c.Scrape.Limit <= 0 {
		return fmt.Errorf("scrape.limit must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.OMDb.BaseURL == "" {
		return fmt.Errorf("omdb.base_url is required")
	}
	if p := c.OMDb.Plot; p != "short" && p != "full" {
		return fmt.Errorf("omdb.plot must be \"short\" or \"full\"")
	}
	switch c.Archive.Provider {
	case "off", "memory", "local", "gcs":
	default:
		return fmt.Errorf("unknown archive.provider %q", c.Archive.Provider)
	}
	if c.Archive.Provider == "gcs" && c.Archive.GCSBucket == "" {
		return fmt.Errorf("archive.gcs_bucket must be set when archive.provider is gcs")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	return nil
}

// HTTPTimeout converts the configured timeout into a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
