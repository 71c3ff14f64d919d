package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NEWSDESK_CONFIG", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://newsapi.org", cfg.News.BaseURL)
	assert.Equal(t, "tesla", cfg.News.Query)
	assert.Equal(t, 1, cfg.News.LookbackDays)
	assert.Equal(t, 30*time.Second, cfg.News.Timeout)
	assert.Equal(t, 9, cfg.Feed.PageSize)
	assert.Equal(t, StoreBolt, cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
	assert.ErrorIs(t, cfg.ValidateNews(), ErrMissingAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NEWSDESK_CONFIG", "")
	t.Setenv("NEWS_API_KEY", "abc123")
	t.Setenv("NEWS_API_BASE_URL", "http://upstream.test")
	t.Setenv("NEWSDESK_STORE_DRIVER", "memory")
	t.Setenv("NEWSDESK_FEED_PAGE_SIZE", "12")
	t.Setenv("FRONTEND_URL", "https://desk.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.News.APIKey)
	assert.Equal(t, "http://upstream.test", cfg.News.BaseURL)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 12, cfg.Feed.PageSize)
	assert.Contains(t, cfg.Server.AllowedOrigins, "https://desk.example.com")
	assert.NoError(t, cfg.ValidateNews())
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("NEWSDESK_STORE_REDIS_URL", "")
	path := filepath.Join(dir, "custom.yaml")
	content := `
news:
  query: spacex
  lookback_days: 3
store:
  driver: redis
  redis_url: redis://localhost:6379/0
session:
  tokens: ["alpha", "beta"]
analytics:
  timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "spacex", cfg.News.Query)
	assert.Equal(t, 3, cfg.News.LookbackDays)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Session.Tokens)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store:     StoreConfig{Driver: StoreMemory},
			Log:       LogConfig{Level: "debug"},
			Feed:      FeedConfig{PageSize: 9},
			Analytics: AnalyticsConfig{Timezone: "Local"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, want: ErrInvalidStoreDriver},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, want: ErrInvalidLogLevel},
		{name: "bad page size", mutate: func(c *Config) { c.Feed.PageSize = 0 }, want: ErrInvalidPageSize},
		{name: "bad timezone", mutate: func(c *Config) { c.Analytics.Timezone = "Mars/Olympus" }, want: ErrInvalidTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
