package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prepmate/mockview/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr == "" || cfg.DatabasePath == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.Scorer.Model == "" || cfg.Scorer.BaseURL == "" {
		t.Fatalf("missing scorer defaults: %+v", cfg.Scorer)
	}
	if cfg.Scorer.Timeout <= 0 {
		t.Fatalf("scorer timeout must be bounded, got %v", cfg.Scorer.Timeout)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("MOCKVIEW_ADDR", ":9999")
	t.Setenv("MOCKVIEW_SCORER_API_KEY", "env-key")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("env addr not applied: %s", cfg.Addr)
	}
	if cfg.Scorer.APIKey != "env-key" {
		t.Fatalf("scorer key not read from env")
	}
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":7070\"\ndatabase_path: overlay.db\nscorer:\n  model: test-model\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("yaml addr not applied: %s", cfg.Addr)
	}
	if cfg.DatabasePath != "overlay.db" {
		t.Fatalf("yaml database_path not applied: %s", cfg.DatabasePath)
	}
	if cfg.Scorer.Model != "test-model" {
		t.Fatalf("yaml scorer overlay not applied: %+v", cfg.Scorer)
	}
	// untouched keys keep their defaults
	if cfg.Scorer.BaseURL == "" {
		t.Fatalf("scorer base url default lost")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := config.LoadConfig("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
