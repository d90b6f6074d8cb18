package synthesis

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synthesis.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
target_size: 200
batch_size: 10
max_rounds: 40
saturation_rounds: 4
min_viable_size: 50
initial_temperature: 0.3
max_temperature: 1.2
seed: 42
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TargetSize != 200 || cfg.BatchSize != 10 || cfg.Seed != 42 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	opts := cfg.Options()
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	if c.TargetSize() != 200 || c.BatchSize() != 10 || c.MinViableSize() != 50 {
		t.Errorf("options produced %+v", c)
	}
}

func TestLoadConfigMissingTargetSize(t *testing.T) {
	path := writeConfig(t, "batch_size: 10\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("config without target_size accepted")
	}
}

func TestLoadConfigMinViableAboveTarget(t *testing.T) {
	path := writeConfig(t, "target_size: 10\nmin_viable_size: 20\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("min_viable_size above target_size accepted")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "target_size: [not an int\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("unparseable config accepted")
	}
}
