package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NewsLens/internal/domain"
)

const (
	configPathEnv    = "NEWSLENS_CONFIG"
	providerEnv      = "NEWS_PROVIDER"
	newsAPIURLEnv    = "NEWS_API_URL"
	newsAPIKeyEnv    = "NEWS_API_KEY"
	fixturePathEnv   = "NEWS_FIXTURE_PATH"
	logLevelEnv      = "LOG_LEVEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"

	ProviderHTTP    = "http"
	ProviderFixture = "fixture"
)

// Validation errors.
var (
	ErrUnknownProvider    = errors.New("source.provider must be 'http' or 'fixture'")
	ErrMissingBaseURL     = errors.New("source.baseUrl is required for the http provider")
	ErrMissingFixturePath = errors.New("source.fixturePath is required for the fixture provider")
	ErrMissingDetailID    = errors.New("source.detailPath must contain {id}")
	ErrInvalidRate        = errors.New("source.ratePerSecond must be non-negative")
	ErrInvalidGrace       = errors.New("disclosure.closeGrace must be non-negative")
	ErrInvalidInterval    = errors.New("refresh.interval must be positive")
	ErrInvalidSentiment   = errors.New("filter.defaultSentiment must be Positive, Neutral or Negative")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Source        SourceConfig       `yaml:"source"`
	Disclosure    DisclosureConfig   `yaml:"disclosure"`
	Refresh       RefreshConfig      `yaml:"refresh"`
	Filter        FilterConfig       `yaml:"filter"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SourceConfig describes where list and detail payloads come from.
type SourceConfig struct {
	Provider      string        `yaml:"provider"`
	BaseURL       string        `yaml:"baseUrl"`
	ListPath      string        `yaml:"listPath"`
	DetailPath    string        `yaml:"detailPath"`
	APIKey        string        `yaml:"apiKey"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"ratePerSecond"`
	Burst         int           `yaml:"burst"`
	FixturePath   string        `yaml:"fixturePath"`
}

// DisclosureConfig tunes the article panel.
type DisclosureConfig struct {
	CloseGrace time.Duration `yaml:"closeGrace"`
}

// RefreshConfig controls periodic list reloads.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// FilterConfig sets the initial filter criteria.
type FilterConfig struct {
	DefaultSentiment string `yaml:"defaultSentiment"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	APIBase  string `yaml:"apiBase"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Criteria converts the filter section into domain criteria.
func (f FilterConfig) Criteria() domain.FilterCriteria {
	criteria := domain.DefaultFilterCriteria()
	if s, ok := domain.ParseSentiment(f.DefaultSentiment); ok {
		criteria.Sentiment = s
	}
	return criteria
}

// Load reads the file named by NEWSLENS_CONFIG, if any.
func Load() (Config, error) {
	return LoadPath(os.Getenv(configPathEnv))
}

// LoadPath reads .env (if present) and the YAML file at path (if non-empty),
// applies environment overrides and validates the result.
func LoadPath(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the application cannot run without.
func (c Config) Validate() error {
	switch c.Source.Provider {
	case ProviderHTTP:
		if c.Source.BaseURL == "" {
			return ErrMissingBaseURL
		}
		if !strings.Contains(c.Source.DetailPath, "{id}") {
			return ErrMissingDetailID
		}
	case ProviderFixture:
		if c.Source.FixturePath == "" {
			return ErrMissingFixturePath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Source.Provider)
	}

	if c.Source.RatePerSecond < 0 {
		return ErrInvalidRate
	}
	if c.Disclosure.CloseGrace < 0 {
		return ErrInvalidGrace
	}
	if c.Refresh.Interval <= 0 {
		return ErrInvalidInterval
	}
	if _, ok := domain.ParseSentiment(c.Filter.DefaultSentiment); !ok {
		return ErrInvalidSentiment
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(providerEnv); v != "" {
		c.Source.Provider = v
	}
	if v := os.Getenv(newsAPIURLEnv); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Source.APIKey = v
	}
	if v := os.Getenv(fixturePathEnv); v != "" {
		c.Source.FixturePath = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Source.Provider != "" {
		base.Source.Provider = override.Source.Provider
	}
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.ListPath != "" {
		base.Source.ListPath = override.Source.ListPath
	}
	if override.Source.DetailPath != "" {
		base.Source.DetailPath = override.Source.DetailPath
	}
	if override.Source.APIKey != "" {
		base.Source.APIKey = override.Source.APIKey
	}
	if override.Source.Timeout != 0 {
		base.Source.Timeout = override.Source.Timeout
	}
	if override.Source.RatePerSecond != 0 {
		base.Source.RatePerSecond = override.Source.RatePerSecond
	}
	if override.Source.Burst != 0 {
		base.Source.Burst = override.Source.Burst
	}
	if override.Source.FixturePath != "" {
		base.Source.FixturePath = override.Source.FixturePath
	}

	if override.Disclosure.CloseGrace != 0 {
		base.Disclosure.CloseGrace = override.Disclosure.CloseGrace
	}
	if override.Refresh.Interval != 0 {
		base.Refresh.Interval = override.Refresh.Interval
	}
	if override.Filter.DefaultSentiment != "" {
		base.Filter.DefaultSentiment = override.Filter.DefaultSentiment
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Notifications.Telegram.APIBase != "" {
		base.Notifications.Telegram.APIBase = override.Notifications.Telegram.APIBase
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Source: SourceConfig{
			Provider:      ProviderHTTP,
			BaseURL:       "http://localhost:8000",
			ListPath:      "/api/news",
			DetailPath:    "/api/news/{id}",
			Timeout:       20 * time.Second,
			RatePerSecond: 5,
			Burst:         5,
		},
		Disclosure: DisclosureConfig{CloseGrace: 300 * time.Millisecond},
		Refresh:    RefreshConfig{Interval: 5 * time.Minute},
		Filter:     FilterConfig{DefaultSentiment: string(domain.SentimentNeutral)},
	}
}
