package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default timeouts for the enrichment calls. The upstream behavior left a
// stalled service call hanging the turn forever; these bound it instead.
const (
	DefaultAnalysisTimeout      = 60 * time.Second
	DefaultTitleTimeout         = 15 * time.Second
	DefaultTranscriptionTimeout = 30 * time.Second
)

// DefaultModel is the Gemini model used when the config does not name one.
const DefaultModel = "gemini-2.5-flash"

// Config holds the tool configuration, loaded from a YAML file with
// environment overrides.
type Config struct {
	APIKey       string `yaml:"api_key"`
	Model        string `yaml:"model"`
	DatabasePath string `yaml:"database_path"`
	UserID       string `yaml:"user_id"`

	AnalysisTimeoutSeconds      int `yaml:"analysis_timeout_seconds"`
	TitleTimeoutSeconds         int `yaml:"title_timeout_seconds"`
	TranscriptionTimeoutSeconds int `yaml:"transcription_timeout_seconds"`
}

// DefaultConfigPath returns the default config file location in the user's
// home directory.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cloudwhisper.yaml"), nil
}

// DefaultDatabasePath returns the default sqlite database location.
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cloudwhisper", "cloudwhisper.db"), nil
}

// LoadConfig loads configuration from the given path. A missing file is not
// an error; defaults and environment variables still apply. The GOOGLE_API_KEY
// environment variable always wins over the file value.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, &ConfigError{Path: path, Err: err}
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse config: %w", err)}
		}
	}

	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.UserID == "" {
		cfg.UserID = "default"
	}
	if cfg.DatabasePath == "" {
		dbPath, err := DefaultDatabasePath()
		if err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		cfg.DatabasePath = dbPath
	}

	return cfg, nil
}

// AnalysisTimeout returns the configured analysis call timeout.
func (c *Config) AnalysisTimeout() time.Duration {
	if c.AnalysisTimeoutSeconds > 0 {
		return time.Duration(c.AnalysisTimeoutSeconds) * time.Second
	}
	return DefaultAnalysisTimeout
}

// TitleTimeout returns the configured title call timeout.
func (c *Config) TitleTimeout() time.Duration {
	if c.TitleTimeoutSeconds > 0 {
		return time.Duration(c.TitleTimeoutSeconds) * time.Second
	}
	return DefaultTitleTimeout
}

// TranscriptionTimeout returns the configured transcription call timeout.
func (c *Config) TranscriptionTimeout() time.Duration {
	if c.TranscriptionTimeoutSeconds > 0 {
		return time.Duration(c.TranscriptionTimeoutSeconds) * time.Second
	}
	return DefaultTranscriptionTimeout
}
