package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Keep != DefaultKeep {
		t.Errorf("Keep = %d, want default %d", cfg.Keep, DefaultKeep)
	}
	if len(cfg.Holds) != 0 {
		t.Errorf("Holds = %v, want empty", cfg.Holds)
	}
}

func TestLoad_ParsesKeepAndHolds(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "keep: 2\nholds:\n  - \"3.13.0\"\n  - linux-image-4.4.0-21-generic\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Keep != 2 {
		t.Errorf("Keep = %d, want 2", cfg.Keep)
	}
	want := []string{"3.13.0", "linux-image-4.4.0-21-generic"}
	if !reflect.DeepEqual(cfg.Holds, want) {
		t.Errorf("Holds = %v, want %v", cfg.Holds, want)
	}
}

func TestLoad_UnsetKeepFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "holds:\n  - \"4.4.0\"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Keep != DefaultKeep {
		t.Errorf("Keep = %d, want default %d", cfg.Keep, DefaultKeep)
	}
}

func TestLoad_NegativeKeepRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "keep: -1\n")

	if _, err := Load(dir); err == nil {
		t.Error("Load() should reject negative keep")
	}
}

func TestLoad_MalformedYAMLRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "keep: [not a number\n")

	if _, err := Load(dir); err == nil {
		t.Error("Load() should reject malformed YAML")
	}
}

func TestHoldSet(t *testing.T) {
	cfg := &Config{Holds: []string{"3.13.0", "3.13.0-57"}}
	set := cfg.HoldSet()

	if _, ok := set["3.13.0"]; !ok {
		t.Error("HoldSet() missing series entry")
	}
	if _, ok := set["3.13.0-57"]; !ok {
		t.Error("HoldSet() missing series-revision entry")
	}
	if _, ok := set["4.4.0"]; ok {
		t.Error("HoldSet() contains entry that was never configured")
	}
}
