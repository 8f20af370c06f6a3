package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Normalize.Tolerance != 1e-6 {
		t.Errorf("expected tolerance 1e-6, got %g", cfg.Normalize.Tolerance)
	}
	if cfg.Normalize.ActiveGroup != "" {
		t.Errorf("expected empty active group, got %s", cfg.Normalize.ActiveGroup)
	}

	if cfg.Output.Suffix != "_normalized" {
		t.Errorf("expected suffix '_normalized', got %s", cfg.Output.Suffix)
	}
	if cfg.Output.Overwrite {
		t.Error("expected overwrite to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
normalize:
  tolerance: 0.001
  active_group: "upper_arm.L"

output:
  suffix: "_out"
  overwrite: true

logging:
  level: "debug"
  log_file: "weighttool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Normalize.Tolerance != 0.001 {
		t.Errorf("expected tolerance 0.001, got %g", cfg.Normalize.Tolerance)
	}
	if cfg.Normalize.ActiveGroup != "upper_arm.L" {
		t.Errorf("expected active group 'upper_arm.L', got %s", cfg.Normalize.ActiveGroup)
	}
	if cfg.Output.Suffix != "_out" {
		t.Errorf("expected suffix '_out', got %s", cfg.Output.Suffix)
	}
	if !cfg.Output.Overwrite {
		t.Error("expected overwrite to be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "weighttool.log" {
		t.Errorf("expected log file 'weighttool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadPartialFile(t *testing.T) {
	// A partial file keeps defaults for everything it does not mention.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: "warn"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Normalize.Tolerance != 1e-6 {
		t.Errorf("expected default tolerance to survive, got %g", cfg.Normalize.Tolerance)
	}
	if cfg.Output.Suffix != "_normalized" {
		t.Errorf("expected default suffix to survive, got %s", cfg.Output.Suffix)
	}
}

func TestLoadMissingFileError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicit missing config path")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()

	cfg.Apply(Overrides{
		Debug:       true,
		LogFile:     "custom.log",
		Tolerance:   0.01,
		ActiveGroup: "spine",
		Overwrite:   true,
	})

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "custom.log" {
		t.Errorf("expected log file 'custom.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Normalize.Tolerance != 0.01 {
		t.Errorf("expected tolerance 0.01, got %g", cfg.Normalize.Tolerance)
	}
	if cfg.Normalize.ActiveGroup != "spine" {
		t.Errorf("expected active group 'spine', got %s", cfg.Normalize.ActiveGroup)
	}
	if !cfg.Output.Overwrite {
		t.Error("expected overwrite to be true")
	}

	// Zero-valued overrides leave the config untouched.
	cfg2 := Default()
	cfg2.Apply(Overrides{})
	if cfg2.Logging.Level != "info" || cfg2.Normalize.Tolerance != 1e-6 {
		t.Error("empty overrides should not change defaults")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Normalize.ActiveGroup = "hand.R"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Normalize.ActiveGroup != "hand.R" {
		t.Errorf("expected active group 'hand.R' after round trip, got %s", loaded.Normalize.ActiveGroup)
	}
}
