package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("SIMS_CONFIG")

	cfg := Load()
	if cfg.Search.Endpoint == "" || cfg.Search.NumResults <= 0 {
		t.Fatalf("search defaults missing: %+v", cfg.Search)
	}
	if cfg.Gemini.Endpoint == "" {
		t.Fatalf("gemini defaults missing: %+v", cfg.Gemini)
	}
	if cfg.Scheduler.CronExpression == "" {
		t.Fatalf("scheduler defaults missing: %+v", cfg.Scheduler)
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatalf("timezone must always resolve")
	}
	if cfg.Validation.Timeout() <= 0 {
		t.Fatalf("validation timeout must be positive")
	}
}

func TestLoadAppliesFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
search:
  query: "border news"
  numResults: 25
scheduler:
  timezone: "UTC"
logging:
  format: "json"
sources:
  extraBangladesh:
    - domain: "newportal.com.bd"
      name: "New Portal"
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SIMS_CONFIG", path)
	t.Setenv("DATABASE_DSN", "postgres://env-user@envhost/db")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Load()
	if cfg.Search.Query != "border news" || cfg.Search.NumResults != 25 {
		t.Fatalf("file override not applied: %+v", cfg.Search)
	}
	if cfg.Scheduler.Location().String() != "UTC" {
		t.Fatalf("timezone override not applied: %s", cfg.Scheduler.Location())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging override not applied: %+v", cfg.Logging)
	}
	if len(cfg.Sources.ExtraBangladesh) != 1 || cfg.Sources.ExtraBangladesh[0].Domain != "newportal.com.bd" {
		t.Fatalf("source extension not applied: %+v", cfg.Sources)
	}

	if cfg.Database.DSN != "postgres://env-user@envhost/db" {
		t.Fatalf("env override must win for the DSN: %s", cfg.Database.DSN)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("env override must win for the API key: %s", cfg.Gemini.APIKey)
	}

	// Untouched sections keep their defaults.
	if cfg.Search.Endpoint == "" {
		t.Fatalf("default endpoint lost during merge")
	}
}

func TestLoadSurvivesUnreadableFile(t *testing.T) {
	t.Setenv("SIMS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Search.Endpoint == "" {
		t.Fatalf("missing file must fall back to defaults")
	}
}
