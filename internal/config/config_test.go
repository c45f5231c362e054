package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsLens/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, providerEnv, newsAPIURLEnv, newsAPIKeyEnv, fixturePathEnv,
		logLevelEnv, telegramTokenEnv, telegramChatEnv,
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newslens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderHTTP, cfg.Source.Provider)
	assert.Equal(t, "/api/news/{id}", cfg.Source.DetailPath)
	assert.Equal(t, 300*time.Millisecond, cfg.Disclosure.CloseGrace)
	assert.Equal(t, domain.SentimentNeutral, cfg.Filter.Criteria().Sentiment)
	assert.False(t, cfg.Notifications.Telegram.Enabled())
}

func TestLoadPathMergesFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, `
logging:
  level: debug
  format: json
source:
  provider: fixture
  fixturePath: ./news.yaml
disclosure:
  closeGrace: 450ms
refresh:
  interval: 1m
filter:
  defaultSentiment: positive
`)

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ProviderFixture, cfg.Source.Provider)
	assert.Equal(t, "./news.yaml", cfg.Source.FixturePath)
	assert.Equal(t, "http://localhost:8000", cfg.Source.BaseURL)
	assert.Equal(t, 450*time.Millisecond, cfg.Disclosure.CloseGrace)
	assert.Equal(t, time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, domain.SentimentPositive, cfg.Filter.Criteria().Sentiment)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "source:\n  baseUrl: https://file.example\n")
	t.Setenv(newsAPIURLEnv, "https://env.example")
	t.Setenv(newsAPIKeyEnv, "secret")
	t.Setenv(telegramTokenEnv, "token")
	t.Setenv(telegramChatEnv, "42")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.Source.BaseURL)
	assert.Equal(t, "secret", cfg.Source.APIKey)
	assert.True(t, cfg.Notifications.Telegram.Enabled())
}

func TestLoadPathErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadPath(writeFile(t, "source: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown provider", func(c *Config) { c.Source.Provider = "ftp" }, ErrUnknownProvider},
		{"missing base url", func(c *Config) { c.Source.BaseURL = "" }, ErrMissingBaseURL},
		{"detail path without id", func(c *Config) { c.Source.DetailPath = "/api/news" }, ErrMissingDetailID},
		{"fixture without path", func(c *Config) { c.Source.Provider = ProviderFixture }, ErrMissingFixturePath},
		{"negative rate", func(c *Config) { c.Source.RatePerSecond = -1 }, ErrInvalidRate},
		{"negative grace", func(c *Config) { c.Disclosure.CloseGrace = -time.Second }, ErrInvalidGrace},
		{"zero interval", func(c *Config) { c.Refresh.Interval = 0 }, ErrInvalidInterval},
		{"bad sentiment", func(c *Config) { c.Filter.DefaultSentiment = "Mixed" }, ErrInvalidSentiment},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	assert.NoError(t, defaultConfig().Validate())
}

func TestLoadPathRejectsUnreadableDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
	t.Chdir(dir)

	_, err := LoadPath("")
	assert.ErrorContains(t, err, "load .env")
}

func TestLoadPathWithoutDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadPath(writeFile(t, "notifications:\n  telegram:\n    apiBase: http://127.0.0.1:9999\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Notifications.Telegram.APIBase)
}
