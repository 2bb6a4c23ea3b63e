package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("apiBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.PollInterval != "1s" {
		t.Fatalf("pollInterval = %q, want 1s", cfg.PollInterval)
	}
	if cfg.MaxUploadSize != "10MiB" {
		t.Fatalf("maxUploadSize = %q, want 10MiB", cfg.MaxUploadSize)
	}
	if home, err := os.UserHomeDir(); err == nil {
		want := filepath.Join(home, ".researchai", "session.json")
		if cfg.SessionPath != want {
			t.Fatalf("sessionPath = %q, want %q", cfg.SessionPath, want)
		}
	}
	want := []string{"pdf", "docx", "doc", "txt"}
	if len(cfg.AllowedExtensions) != len(want) {
		t.Fatalf("allowedExtensions = %v, want %v", cfg.AllowedExtensions, want)
	}
	for i, ext := range want {
		if cfg.AllowedExtensions[i] != ext {
			t.Fatalf("allowedExtensions[%d] = %q, want %q", i, cfg.AllowedExtensions[i], ext)
		}
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("RESEARCHAI_API_BASE_URL", "http://api.internal:9000")
	t.Setenv("RESEARCHAI_MAX_UPLOAD_SIZE", "5MiB")
	t.Setenv("RESEARCHAI_ALLOWED_EXTENSIONS", "pdf, txt")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
apiBaseURL: "http://localhost:5000"
logLevel: "debug"
maxUploadSize: "20MiB"
pollInterval: "500ms"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://api.internal:9000" {
		t.Fatalf("apiBaseURL = %q, want env override", cfg.APIBaseURL)
	}
	if cfg.MaxUploadSize != "5MiB" {
		t.Fatalf("maxUploadSize = %q, want 5MiB", cfg.MaxUploadSize)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("logLevel = %q, want debug", cfg.LogLevel)
	}
	if len(cfg.AllowedExtensions) != 2 || cfg.AllowedExtensions[0] != "pdf" || cfg.AllowedExtensions[1] != "txt" {
		t.Fatalf("allowedExtensions = %v, want [pdf txt]", cfg.AllowedExtensions)
	}
	if cfg.PollInterval != "500ms" {
		t.Fatalf("pollInterval = %q, want 500ms", cfg.PollInterval)
	}
}

func TestParseMaxUploadSize(t *testing.T) {
	n, err := ParseMaxUploadSize("10MiB")
	if err != nil {
		t.Fatalf("parse 10MiB: %v", err)
	}
	if n != 10*1024*1024 {
		t.Fatalf("10MiB = %d bytes, want %d", n, 10*1024*1024)
	}
	if _, err := ParseMaxUploadSize("not-a-size"); err == nil {
		t.Fatal("expected error for invalid size")
	}
}

func TestParsePollInterval(t *testing.T) {
	dur, err := ParsePollInterval("1s")
	if err != nil {
		t.Fatalf("parse 1s: %v", err)
	}
	if dur != time.Second {
		t.Fatalf("interval = %v, want 1s", dur)
	}
	if _, err := ParsePollInterval("-1s"); err == nil {
		t.Fatal("expected error for negative interval")
	}
}

func TestLoadRejectsInvalidSize(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`maxUploadSize: "huge"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatal("expected error for invalid maxUploadSize")
	}
}
