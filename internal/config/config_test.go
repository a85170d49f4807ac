package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonesrussell/ticket-triage/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}

	if cfg.Service.Name != "ticket-triage" {
		t.Errorf("Service.Name = %q, want ticket-triage", cfg.Service.Name)
	}
	if cfg.Service.Port != 8090 {
		t.Errorf("Service.Port = %d, want 8090", cfg.Service.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.LLM.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("LLM.Model = %q, want default model", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 20*time.Second {
		t.Errorf("LLM.Timeout = %v, want 20s", cfg.LLM.Timeout)
	}
	if cfg.LLM.RPS != 5 {
		t.Errorf("LLM.RPS = %d, want 5", cfg.LLM.RPS)
	}
	if cfg.SentimentML.URL != "http://sentiment-ml:8091" {
		t.Errorf("SentimentML.URL = %q, want default sidecar URL", cfg.SentimentML.URL)
	}
	if cfg.Classification.DefaultSentiment != string(domain.SentimentNeutral) {
		t.Errorf("Classification.DefaultSentiment = %q, want Neutral", cfg.Classification.DefaultSentiment)
	}
}

func TestLoad_FromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	configContent := `
service:
  name: "triage-test"
  port: 9000
  debug: true
database:
  host: "db.internal"
  user: "triage"
  database: "triage_test"
llm:
  model: "claude-haiku-4-5"
  timeout: 5s
sentiment_ml:
  url: "http://localhost:18091"
classification:
  default_sentiment: "Negativo"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Service.Name != "triage-test" {
		t.Errorf("Service.Name = %q, want triage-test", cfg.Service.Name)
	}
	if cfg.Service.Port != 9000 {
		t.Errorf("Service.Port = %d, want 9000", cfg.Service.Port)
	}
	if !cfg.Service.Debug {
		t.Error("Service.Debug = false, want true")
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.LLM.Model != "claude-haiku-4-5" {
		t.Errorf("LLM.Model = %q, want claude-haiku-4-5", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("LLM.Timeout = %v, want 5s", cfg.LLM.Timeout)
	}
	if cfg.SentimentML.URL != "http://localhost:18091" {
		t.Errorf("SentimentML.URL = %q, want http://localhost:18091", cfg.SentimentML.URL)
	}
	if cfg.Classification.DefaultSentiment != "Negativo" {
		t.Errorf("Classification.DefaultSentiment = %q, want Negativo", cfg.Classification.DefaultSentiment)
	}
	// Unset fields still receive defaults.
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want default 5432", cfg.Database.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIAGE_PORT", "8123")
	t.Setenv("POSTGRES_HOST", "pg.env")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MIGRATE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Service.Port != 8123 {
		t.Errorf("Service.Port = %d, want env override 8123", cfg.Service.Port)
	}
	if cfg.Database.Host != "pg.env" {
		t.Errorf("Database.Host = %q, want pg.env", cfg.Database.Host)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("Database.Password = %q, want secret", cfg.Database.Password)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q, want sk-test", cfg.LLM.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.Database.Migrate {
		t.Error("Database.Migrate = false, want true from env")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(configPath, []byte("service:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("TRIAGE_PORT", "9100")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Service.Port != 9100 {
		t.Errorf("Service.Port = %d, env must win over file, got file value instead", cfg.Service.Port)
	}
}
