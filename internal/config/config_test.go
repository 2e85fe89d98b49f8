package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("expected no config found in an empty directory")
	}
	if cfg.TableLimits().MaxTypes != 0 {
		t.Fatalf("zero Config must produce zero (default-triggering) limits")
	}
}

func TestLoadFindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	contents := "[limits]\nmax_types = 4096\nmax_bv_width = 128\n\n[output]\ncolor = \"off\"\n"
	if err := os.WriteFile(filepath.Join(root, "vega.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, ok, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find vega.toml in an ancestor directory")
	}
	if cfg.Limits.MaxTypes != 4096 {
		t.Fatalf("MaxTypes = %d, want 4096", cfg.Limits.MaxTypes)
	}
	if cfg.Output.Color != "off" {
		t.Fatalf("Color = %q, want off", cfg.Output.Color)
	}
}

func TestLoadRejectsZeroMaxBVWidth(t *testing.T) {
	dir := t.TempDir()
	contents := "[limits]\nmax_bv_width = 0\n"
	if err := os.WriteFile(filepath.Join(dir, "vega.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for an explicit zero max_bv_width")
	}
}
