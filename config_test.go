package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestLoadConfigMissingFile verifies a missing config file yields defaults
// with no error.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

// TestConfigRewriteLoadRoundTrip verifies rewrite-then-load reproduces the
// configuration.
func TestConfigRewriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.toml")

	cfg := defaultConfig()
	cfg.DataDir = "/var/lib/pi"
	cfg.OutputDir = "/srv/pi-results"
	cfg.BenchDBPath = "/var/lib/pi/bench.db"
	cfg.CalibrationSizes = []int{50, 5000}
	cfg.ProgressIntervalPercent = 10
	cfg.ConfirmThresholdSeconds = 120
	cfg.CalcLogPath = "/var/log/pi/calc.log"

	if err := rewriteConfigFile(path, cfg); err != nil {
		t.Fatalf("rewriteConfigFile: %v", err)
	}
	loaded, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

// TestLoadConfigIgnoresInvalidValues verifies out-of-range tuning values
// fall back to defaults instead of propagating.
func TestLoadConfigIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "progress_interval_percent = 500\nconfirm_threshold_seconds = -3.0\ncalibration_sizes = [0, -10]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	def := defaultConfig()
	if cfg.ProgressIntervalPercent != def.ProgressIntervalPercent {
		t.Fatalf("progress interval not defaulted: %d", cfg.ProgressIntervalPercent)
	}
	if cfg.ConfirmThresholdSeconds != def.ConfirmThresholdSeconds {
		t.Fatalf("confirm threshold not defaulted: %f", cfg.ConfirmThresholdSeconds)
	}
	if !reflect.DeepEqual(cfg.CalibrationSizes, def.CalibrationSizes) {
		t.Fatalf("calibration sizes not defaulted: %v", cfg.CalibrationSizes)
	}
}

// TestBenchDBPathDefault verifies the database path defaults under the data
// directory but honors an explicit override.
func TestBenchDBPathDefault(t *testing.T) {
	cfg := defaultConfig()
	cfg.DataDir = "d"
	if got := cfg.benchDBPath(); got != filepath.Join("d", "benchmarks.db") {
		t.Fatalf("default bench db path = %q", got)
	}
	cfg.BenchDBPath = "/elsewhere/bench.db"
	if got := cfg.benchDBPath(); got != "/elsewhere/bench.db" {
		t.Fatalf("override bench db path = %q", got)
	}
}
