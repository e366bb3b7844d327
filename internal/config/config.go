// Package config loads service configuration from a JSON or YAML file and
// the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/queue"
	"github.com/jonathan/resume-aligner/internal/storage"
)

// Defaults
const (
	DefaultAppName   = "resume-aligner"
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultMaxUpload = 10 << 20
)

// Config is the full service configuration. Every section is optional in
// the file; Default supplies the rest.
type Config struct {
	AppName     string         `json:"app_name" yaml:"app_name"`
	Server      ServerConfig   `json:"server" yaml:"server"`
	Scoring     ScoringConfig  `json:"scoring" yaml:"scoring"`
	Storage     storage.Config `json:"storage" yaml:"storage"`
	Queue       queue.Config   `json:"queue" yaml:"queue"`
	Fetch       FetchConfig    `json:"fetch" yaml:"fetch"`
	Auth        AuthConfig     `json:"auth" yaml:"auth"`
	DatabaseURL string         `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	APIKey      string         `json:"-" yaml:"-"` // Gemini API key, env only
	GeminiModel string         `json:"gemini_model,omitempty" yaml:"gemini_model,omitempty"`
	LogLevel    string         `json:"log_level" yaml:"log_level"`
	LogFormat   string         `json:"log_format" yaml:"log_format"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port           int   `json:"port" yaml:"port"`
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	ExportPDF      bool  `json:"export_pdf" yaml:"export_pdf"`
}

// ScoringConfig holds the alignment policy
type ScoringConfig struct {
	Thresholds        alignment.Thresholds `json:"thresholds" yaml:"thresholds"`
	ResponsibilityCap int                  `json:"responsibility_cap" yaml:"responsibility_cap"`
	Strategy          string               `json:"strategy" yaml:"strategy"`
	Workers           int                  `json:"workers" yaml:"workers"`
}

// FetchConfig configures job posting retrieval
type FetchConfig struct {
	UseBrowser bool   `json:"use_browser" yaml:"use_browser"`
	CacheTTL   string `json:"cache_ttl" yaml:"cache_ttl"` // Go duration, empty disables caching
}

// AuthConfig configures bearer-token auth. Clients maps client ids to
// bcrypt hashes of their secrets.
type AuthConfig struct {
	Required bool              `json:"required" yaml:"required"`
	Clients  map[string]string `json:"clients,omitempty" yaml:"clients,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		AppName: DefaultAppName,
		Server: ServerConfig{
			Port:           DefaultPort,
			MaxUploadBytes: DefaultMaxUpload,
		},
		Scoring: ScoringConfig{
			Thresholds:        alignment.DefaultThresholds(),
			ResponsibilityCap: alignment.DefaultResponsibilityCap,
			Strategy:          alignment.StrategySubstring,
			Workers:           1,
		},
		Storage:   storage.Config{Dir: storage.DefaultDir},
		Queue:     queue.Config{}.WithDefaults(),
		Fetch:     FetchConfig{CacheTTL: "15m"},
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// LoadConfig reads path over Default. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	// A file may blank out a default explicitly ("log_level: ''", "port: 0").
	merged := cfg.MergeWithDefaults(*Default())
	return &merged, nil
}

// Load returns Default, overlaid with path when it is non-empty, then
// with the environment, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'server.max_upload_bytes' must be non-negative")
	}
	if _, err := c.Scoring.AlignmentConfig(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.Fetch.TTL(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Auth.Required && len(c.Auth.Clients) == 0 {
		return fmt.Errorf("config error: 'auth.required' needs at least one client")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// MergeWithDefaults returns a copy with empty string and zero numeric
// fields filled from defaults. Booleans cannot be told apart from unset and
// are left alone.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.AppName == "" {
		result.AppName = defaults.AppName
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Storage.Dir == "" {
		result.Storage.Dir = defaults.Storage.Dir
	}
	if result.Queue.URL == "" {
		result.Queue.URL = defaults.Queue.URL
	}
	if result.Scoring.Strategy == "" {
		result.Scoring.Strategy = defaults.Scoring.Strategy
	}

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.MaxUploadBytes == 0 {
		result.Server.MaxUploadBytes = defaults.Server.MaxUploadBytes
	}
	if result.Scoring.ResponsibilityCap == 0 {
		result.Scoring.ResponsibilityCap = defaults.Scoring.ResponsibilityCap
	}
	if result.Scoring.Workers == 0 {
		result.Scoring.Workers = defaults.Scoring.Workers
	}
	if result.Scoring.Thresholds == (alignment.Thresholds{}) {
		result.Scoring.Thresholds = defaults.Scoring.Thresholds
	}

	return result
}

// AlignmentConfig converts the scoring section into an engine configuration
func (s ScoringConfig) AlignmentConfig() (alignment.Config, error) {
	strategy, err := alignment.StrategyByName(s.Strategy)
	if err != nil {
		return alignment.Config{}, err
	}
	cfg := alignment.Config{
		Thresholds:        s.Thresholds,
		ResponsibilityCap: s.ResponsibilityCap,
		Strategy:          strategy,
		Workers:           s.Workers,
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return alignment.Config{}, err
	}
	if cfg.ResponsibilityCap < 0 {
		return alignment.Config{}, fmt.Errorf("'scoring.responsibility_cap' must be non-negative")
	}
	return cfg, nil
}

// Engine builds the alignment engine for this configuration
func (c *Config) Engine() (*alignment.Engine, error) {
	cfg, err := c.Scoring.AlignmentConfig()
	if err != nil {
		return nil, err
	}
	return alignment.NewEngine(cfg)
}

// TTL parses CacheTTL. Zero means no caching.
func (f FetchConfig) TTL() (time.Duration, error) {
	if f.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid 'fetch.cache_ttl': %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("'fetch.cache_ttl' must be non-negative")
	}
	return d, nil
}
