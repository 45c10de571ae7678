package svcconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesAndFills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-service.yaml")
	content := "log:\n  console_level: warn\n  max_size_mb: 0\nmaafw:\n  lib_dir: ./maafw/bin\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.ConsoleLevel != "warn" {
		t.Errorf("expected console_level warn, got %q", cfg.Log.ConsoleLevel)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Dir != "debug" {
		t.Errorf("expected defaults for unset keys, got %+v", cfg.Log)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("expected non-positive size to fall back to 10, got %d", cfg.Log.MaxSizeMB)
	}
	if cfg.MaaFW.LibDir != "./maafw/bin" {
		t.Errorf("unexpected lib_dir %q", cfg.MaaFW.LibDir)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	if got := Path(); got != "/tmp/custom.yaml" {
		t.Errorf("expected env path, got %q", got)
	}
	t.Setenv(EnvPath, "")
	if got := Path(); got != DefaultPath {
		t.Errorf("expected default path, got %q", got)
	}
}
