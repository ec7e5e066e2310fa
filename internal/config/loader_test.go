package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("engine:\n  tick_multiplier: 500\n  tick_rate: 30\nreplay:\n  max_step_ticks: 250\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Engine.TickMultiplier != 500 || cfg.Engine.TickRate != 30 {
		t.Errorf("engine config = %+v, expected 500/30", cfg.Engine)
	}
	if cfg.Replay.MaxStepTicks != 250 {
		t.Errorf("max_step_ticks = %d, expected 250", cfg.Replay.MaxStepTicks)
	}
	// Unspecified sections keep defaults.
	if cfg.Storage.Path != Default().Storage.Path {
		t.Errorf("storage path = %q, expected default", cfg.Storage.Path)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default %+v differs from Default() %+v", cfg, Default())
	}
}
