package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "s2_api_key: file-s2\nncbi_api_key: file-ncbi\nmailto: me@example.org\n"
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("SEMANTIC_SCHOLAR_API_KEY", "")
	t.Setenv("NCBI_API_KEY", "")
	t.Setenv("REFCHECK_MAILTO", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.S2APIKey != "file-s2" || cfg.NCBIAPIKey != "file-ncbi" || cfg.Mailto != "me@example.org" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("s2_api_key: file-s2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("SEMANTIC_SCHOLAR_API_KEY", "env-s2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.S2APIKey != "env-s2" {
		t.Errorf("S2APIKey = %q, want env value to win", cfg.S2APIKey)
	}
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SEMANTIC_SCHOLAR_API_KEY", "")
	t.Setenv("NCBI_API_KEY", "")
	t.Setenv("REFCHECK_MAILTO", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero config", cfg)
	}
}
