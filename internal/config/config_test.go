package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Backend != BackendJSON {
		t.Errorf("expected default backend %q, got %q", BackendJSON, cfg.Backend)
	}
	if cfg.Analyzer != AnalyzerHeuristic {
		t.Errorf("expected default analyzer %q, got %q", AnalyzerHeuristic, cfg.Analyzer)
	}
	if cfg.DefaultTemplate != "default" {
		t.Errorf("expected default template, got %q", cfg.DefaultTemplate)
	}
	if cfg.ExportScale != 2 {
		t.Errorf("expected export scale 2, got %v", cfg.ExportScale)
	}
	if !strings.Contains(cfg.DataDir, "textcard") {
		t.Errorf("expected textcard data dir, got %q", cfg.DataDir)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend: sqlite
analyzer: anthropic
default_template: dark
export_scale: 1.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.Analyzer != AnalyzerAnthropic {
		t.Errorf("expected anthropic analyzer, got %q", cfg.Analyzer)
	}
	if cfg.DefaultTemplate != "dark" {
		t.Errorf("expected dark template, got %q", cfg.DefaultTemplate)
	}
	if cfg.ExportScale != 1.5 {
		t.Errorf("expected scale 1.5, got %v", cfg.ExportScale)
	}
	// Unset fields keep their defaults.
	if cfg.ExportDir == "" {
		t.Error("expected default export dir preserved")
	}
}

func TestLoadFileRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: redis\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
