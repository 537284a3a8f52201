package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() on missing file error = %v, want nil", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.UserID != "default" {
		t.Errorf("UserID = %q, want default", cfg.UserID)
	}
	if cfg.DatabasePath == "" {
		t.Error("DatabasePath must be defaulted")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_key: file-key
model: gemini-2.5-pro
database_path: /tmp/test.db
user_id: alice
analysis_timeout_seconds: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want gemini-2.5-pro", cfg.Model)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %q, want /tmp/test.db", cfg.DatabasePath)
	}
	if cfg.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", cfg.UserID)
	}
	if cfg.AnalysisTimeout() != 5*time.Second {
		t.Errorf("AnalysisTimeout() = %v, want 5s", cfg.AnalysisTimeout())
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: file-key\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want the environment value", cfg.APIKey)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() on malformed YAML succeeded, want error")
	}
}

func TestConfigTimeoutDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.AnalysisTimeout() != DefaultAnalysisTimeout {
		t.Errorf("AnalysisTimeout() = %v, want %v", cfg.AnalysisTimeout(), DefaultAnalysisTimeout)
	}
	if cfg.TitleTimeout() != DefaultTitleTimeout {
		t.Errorf("TitleTimeout() = %v, want %v", cfg.TitleTimeout(), DefaultTitleTimeout)
	}
	if cfg.TranscriptionTimeout() != DefaultTranscriptionTimeout {
		t.Errorf("TranscriptionTimeout() = %v, want %v", cfg.TranscriptionTimeout(), DefaultTranscriptionTimeout)
	}
}
