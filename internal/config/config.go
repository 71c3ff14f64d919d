// Package config loads newsdesk settings from defaults, an optional config
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

var (
	ErrMissingAPIKey      = errors.New("news.api_key is required")
	ErrInvalidStoreDriver = errors.New("store.driver must be one of: memory, bolt, redis, postgres")
	ErrInvalidLogLevel    = errors.New("log.level must be one of: debug, info, warn, error")
	ErrInvalidPageSize    = errors.New("feed.page_size must be at least 1")
	ErrInvalidTimezone    = errors.New("analytics.timezone is not a known location")
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	News      NewsConfig      `mapstructure:"news"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Store     StoreConfig     `mapstructure:"store"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type NewsConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Query        string        `mapstructure:"query"`
	LookbackDays int           `mapstructure:"lookback_days"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type AnalyticsConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	BoltPath    string `mapstructure:"bolt_path"`
	RedisURL    string `mapstructure:"redis_url"`
	PostgresURL string `mapstructure:"postgres_url"`
	KeyPrefix   string `mapstructure:"key_prefix"`
}

type SessionConfig struct {
	Tokens []string `mapstructure:"tokens"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("news.base_url", "https://newsapi.org")
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.query", "tesla")
	v.SetDefault("news.lookback_days", 1)
	v.SetDefault("news.timeout", 30*time.Second)
	v.SetDefault("feed.page_size", 9)
	v.SetDefault("analytics.timezone", "Local")
	v.SetDefault("store.driver", StoreBolt)
	v.SetDefault("store.bolt_path", "newsdesk.db")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.postgres_url", "")
	v.SetDefault("store.key_prefix", "newsdesk:")
	v.SetDefault("session.tokens", []string{})
	v.SetDefault("log.level", "info")
}

// Load reads configuration. An empty configPath falls back to NEWSDESK_CONFIG
// and then to ./newsdesk.{yaml,toml,json} if present.
func Load(configPath string) (*Config, error) {
	godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = os.Getenv("NEWSDESK_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("newsdesk")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("news.api_key", "NEWSDESK_NEWS_API_KEY", "NEWS_API_KEY")
	v.BindEnv("news.base_url", "NEWSDESK_NEWS_BASE_URL", "NEWS_API_BASE_URL")
	v.BindEnv("store.redis_url", "NEWSDESK_STORE_REDIS_URL", "REDIS_URL")
	v.BindEnv("store.postgres_url", "NEWSDESK_STORE_POSTGRES_URL", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, frontendURL)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreBolt, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStoreDriver, c.Store.Driver)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Feed.PageSize < 1 {
		return ErrInvalidPageSize
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// ValidateNews is required by binaries that call the upstream news API.
func (c *Config) ValidateNews() error {
	if c.News.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Location resolves analytics.timezone; "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	return ParseLocation(c.Analytics.Timezone)
}

func ParseLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}

// SetupLogging installs a JSON slog handler on stdout at the configured level.
func (c *Config) SetupLogging() {
	level, _ := ParseLevel(c.Log.Level)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
