package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_ReadsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
default_seed: 42
preset_dir: /tmp/presets
trace: true
plain: true
save_dir: /tmp/saves
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultSeed != 42 {
		t.Errorf("default_seed: got %d", cfg.DefaultSeed)
	}
	if cfg.PresetDir != "/tmp/presets" || cfg.SaveDir != "/tmp/saves" {
		t.Errorf("paths: got %+v", cfg)
	}
	if !cfg.Trace || !cfg.Plain {
		t.Errorf("flags: got %+v", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_seed: [not an int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
