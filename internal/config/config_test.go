package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
	if cfg.Color != "auto" {
		t.Errorf("Color = %q", cfg.Color)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "max_depth: 128\ncolor: never\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 128 || cfg.Color != "never" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "color: always\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
	if cfg.Color != "always" {
		t.Errorf("Color = %q", cfg.Color)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "max_deepth: 5\n")

	if _, err := Load(path); err == nil {
		t.Error("unknown keys must be rejected")
	}
}

func TestLoadValidates(t *testing.T) {
	dir := t.TempDir()

	path := writeConfig(t, dir, "max_depth: -1\n")
	if _, err := Load(path); err == nil {
		t.Error("non-positive max_depth must be rejected")
	}

	path = writeConfig(t, dir, "color: sometimes\n")
	if _, err := Load(path); err == nil {
		t.Error("unknown color mode must be rejected")
	}
}

func TestDiscoverPrefersScriptDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "max_depth: 77\n")
	script := filepath.Join(dir, "prog"+SourceFileExt)

	cfg, err := Discover(script)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 77 {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	script := filepath.Join(t.TempDir(), "prog"+SourceFileExt)

	cfg, err := Discover(script)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != DefaultMaxDepth || cfg.Color != "auto" {
		t.Errorf("cfg = %+v", cfg)
	}
}
