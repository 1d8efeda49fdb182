// Copyright 2025 zkLocus Contributors

package zkconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate(): %v", err)
	}
	if cfg.MaxFactor != 7 {
		t.Errorf("MaxFactor = %d, want 7", cfg.MaxFactor)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestValidateRejectsBadFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFactor = 8
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with MaxFactor 8 succeeded, want error")
	}

	cfg.MaxFactor = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with MaxFactor -1 succeeded, want error")
	}
}

func TestValidateRejectsEmptyKeyDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with empty KeyDir succeeded, want error")
	}
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
max_factor: 5
key_dir: ${ZKLOCUS_TEST_KEYDIR:-./default-keys}
logging:
  level: ${ZKLOCUS_TEST_LEVEL:-info}
  format: json
  output: stdout
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	os.Setenv("ZKLOCUS_TEST_LEVEL", "debug")
	defer os.Unsetenv("ZKLOCUS_TEST_LEVEL")
	os.Unsetenv("ZKLOCUS_TEST_KEYDIR")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxFactor != 5 {
		t.Errorf("MaxFactor = %d, want 5", cfg.MaxFactor)
	}
	if cfg.KeyDir != "./default-keys" {
		t.Errorf("KeyDir = %q, want default fallback %q", cfg.KeyDir, "./default-keys")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want env override %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("Load on a missing file succeeded, want error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("max_factor: [this is not an int"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load on malformed YAML succeeded, want error")
	}
}

func TestSubstituteEnvVarsWithoutDefault(t *testing.T) {
	os.Setenv("ZKLOCUS_TEST_PLAIN", "resolved")
	defer os.Unsetenv("ZKLOCUS_TEST_PLAIN")

	got := substituteEnvVars("value: ${ZKLOCUS_TEST_PLAIN}")
	want := "value: resolved"
	if got != want {
		t.Errorf("substituteEnvVars() = %q, want %q", got, want)
	}
}

func TestSubstituteEnvVarsUnsetWithoutDefaultIsEmpty(t *testing.T) {
	os.Unsetenv("ZKLOCUS_TEST_UNSET_NO_DEFAULT")

	got := substituteEnvVars("value: ${ZKLOCUS_TEST_UNSET_NO_DEFAULT}")
	want := "value: "
	if got != want {
		t.Errorf("substituteEnvVars() = %q, want %q", got, want)
	}
}
