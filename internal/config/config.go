// Package config provides YAML configuration with .env loading and
// environment variable overrides for the meeting tracker.
package config

import (
	"fmt"

	"github.com/jonesrussell/meeting-tracker/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName    = "meeting-tracker"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8080
	defaultFigure         = "Trump"
	defaultDaysBack       = 7
	defaultKeywordScore   = 0.3
	defaultPoliticalLimit = 4
	defaultLowercaseRatio = 0.4
	defaultLookupRate     = 1.0
	defaultDBPath         = "meetings.db"
	defaultSenderEmail    = "alerts@trumptracker.com"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// Config holds all configuration for the meeting tracker.
type Config struct {
	Service    ServiceConfig             `yaml:"service"`
	Tracking   TrackingConfig            `yaml:"tracking"`
	Sources    SourcesConfig             `yaml:"sources"`
	Database   DatabaseConfig            `yaml:"database"`
	Email      EmailConfig               `yaml:"email"`
	Logging    LoggingConfig             `yaml:"logging"`
	Industries []domain.IndustryCategory `yaml:"industry_categories"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TRACKER_PORT"    yaml:"port"`
	Debug   bool   `env:"DEBUG_FILTERING" yaml:"debug"`
}

// TrackingConfig holds the extraction and classification settings.
type TrackingConfig struct {
	// Figure is the tracked public figure's surname as it appears in
	// coverage, e.g. "Trump".
	Figure   string `yaml:"figure"`
	DaysBack int    `yaml:"days_back"`

	EnableScraping      bool `yaml:"enable_scraping"`
	EnableDynamicLookup bool `yaml:"enable_dynamic_lookup"`

	// KeywordScoreThreshold is the minimum keyword-coverage score for a
	// taxonomy keyword match.
	KeywordScoreThreshold float64 `yaml:"keyword_score_threshold"`
	// PoliticalKeywordLimit is the number of distinct political keywords
	// above which an article is rejected as political coverage.
	PoliticalKeywordLimit int `yaml:"political_keyword_limit"`
	// LowercaseRatio is the minimum fraction of lowercase letters required
	// after each name token's first character for the token to look like a
	// real name rather than an acronym or a shed word fragment.
	LowercaseRatio float64 `yaml:"lowercase_ratio"`

	// LookupRatePerSecond bounds outbound dynamic lookup searches.
	LookupRatePerSecond float64 `yaml:"lookup_rate_per_second"`
}

// SourcesConfig holds article source configuration.
type SourcesConfig struct {
	NewsAPI  NewsAPIConfig `yaml:"newsapi"`
	RSSFeeds []string      `yaml:"rss_feeds"`
}

// NewsAPIConfig holds NewsAPI client configuration.
type NewsAPIConfig struct {
	APIKey  string `env:"NEWS_API_KEY" yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig holds the sqlite store configuration.
type DatabaseConfig struct {
	Path string `env:"TRACKER_DB_PATH" yaml:"path"`
}

// EmailConfig holds report delivery configuration.
type EmailConfig struct {
	SendGridAPIKey string   `env:"SENDGRID_API_KEY" yaml:"sendgrid_api_key"`
	Sender         string   `env:"SENDER_EMAIL"     yaml:"sender"`
	Recipients     []string `env:"EMAIL_RECIPIENTS" yaml:"recipients"`
	BaseURL        string   `yaml:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load reads the YAML config at path, applies defaults and environment
// variable overrides (env always wins), and validates the result.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings that have no sensible fallback.
func (c *Config) Validate() error {
	if c.Tracking.Figure == "" {
		return fmt.Errorf("tracking.figure must be set")
	}
	if c.Tracking.KeywordScoreThreshold < 0 || c.Tracking.KeywordScoreThreshold > 1 {
		return fmt.Errorf("tracking.keyword_score_threshold must be in [0,1], got %v",
			c.Tracking.KeywordScoreThreshold)
	}
	if c.Tracking.LowercaseRatio < 0 || c.Tracking.LowercaseRatio > 1 {
		return fmt.Errorf("tracking.lowercase_ratio must be in [0,1], got %v",
			c.Tracking.LowercaseRatio)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must be set")
	}
	return nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setTrackingDefaults(&cfg.Tracking)
	setDatabaseDefaults(&cfg.Database)
	setEmailDefaults(&cfg.Email)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setTrackingDefaults(t *TrackingConfig) {
	if t.Figure == "" {
		t.Figure = defaultFigure
	}
	if t.DaysBack == 0 {
		t.DaysBack = defaultDaysBack
	}
	if t.KeywordScoreThreshold == 0 {
		t.KeywordScoreThreshold = defaultKeywordScore
	}
	if t.PoliticalKeywordLimit == 0 {
		t.PoliticalKeywordLimit = defaultPoliticalLimit
	}
	if t.LowercaseRatio == 0 {
		t.LowercaseRatio = defaultLowercaseRatio
	}
	if t.LookupRatePerSecond == 0 {
		t.LookupRatePerSecond = defaultLookupRate
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Path == "" {
		d.Path = defaultDBPath
	}
}

func setEmailDefaults(e *EmailConfig) {
	if e.Sender == "" {
		e.Sender = defaultSenderEmail
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
