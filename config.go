package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

const (
	defaultDataDir = "data"

	// defaultProgressIntervalPercent matches the series evaluator default:
	// one progress line per 5% of iterations.
	defaultProgressIntervalPercent = 5

	// defaultConfirmThresholdSeconds is the estimated runtime above which a
	// calculation asks for confirmation before starting.
	defaultConfirmThresholdSeconds = 300.0
)

// defaultCalibrationSizes are the digit counts the -bench mode measures to
// seed the estimator on a new machine.
var defaultCalibrationSizes = []int{100, 500, 1000}

type Config struct {
	DataDir   string
	OutputDir string
	// BenchDBPath is the SQLite file holding (digits, seconds) samples.
	// Empty means <DataDir>/benchmarks.db.
	BenchDBPath string
	// CalibrationSizes are the digit counts measured by -bench.
	CalibrationSizes []int
	// ProgressIntervalPercent sets the cadence of progress notifications
	// during the series loop (percent of total iterations per notification).
	ProgressIntervalPercent int
	// ConfirmThresholdSeconds: estimated runtimes above this require -yes or
	// an interactive confirmation.
	ConfirmThresholdSeconds float64
	CalcLogPath             string
	ErrorLogPath            string
	DebugLogPath            string
}

type fileConfig struct {
	DataDir                 string  `toml:"data_dir"`
	OutputDir               string  `toml:"output_dir"`
	BenchDBPath             string  `toml:"bench_db_path"`
	CalibrationSizes        []int64 `toml:"calibration_sizes"`
	ProgressIntervalPercent int64   `toml:"progress_interval_percent"`
	ConfirmThresholdSeconds float64 `toml:"confirm_threshold_seconds"`
	CalcLogPath             string  `toml:"calc_log_path"`
	ErrorLogPath            string  `toml:"error_log_path"`
	DebugLogPath            string  `toml:"debug_log_path"`
}

func defaultConfig() Config {
	return Config{
		DataDir:                 defaultDataDir,
		OutputDir:               ".",
		CalibrationSizes:        append([]int(nil), defaultCalibrationSizes...),
		ProgressIntervalPercent: defaultProgressIntervalPercent,
		ConfirmThresholdSeconds: defaultConfirmThresholdSeconds,
	}
}

// loadConfig reads a TOML config and fills gaps with defaults. A missing
// file is not an error: first runs work with defaults alone.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.BenchDBPath != "" {
		cfg.BenchDBPath = fc.BenchDBPath
	}
	if len(fc.CalibrationSizes) > 0 {
		sizes := make([]int, 0, len(fc.CalibrationSizes))
		for _, v := range fc.CalibrationSizes {
			if v >= 1 {
				sizes = append(sizes, int(v))
			}
		}
		if len(sizes) > 0 {
			cfg.CalibrationSizes = sizes
		}
	}
	if fc.ProgressIntervalPercent >= 1 && fc.ProgressIntervalPercent <= 100 {
		cfg.ProgressIntervalPercent = int(fc.ProgressIntervalPercent)
	}
	if fc.ConfirmThresholdSeconds > 0 {
		cfg.ConfirmThresholdSeconds = fc.ConfirmThresholdSeconds
	}
	cfg.CalcLogPath = fc.CalcLogPath
	cfg.ErrorLogPath = fc.ErrorLogPath
	cfg.DebugLogPath = fc.DebugLogPath

	return cfg, nil
}

// benchDBPath resolves the effective benchmark database location.
func (c Config) benchDBPath() string {
	if c.BenchDBPath != "" {
		return c.BenchDBPath
	}
	return filepath.Join(c.DataDir, "benchmarks.db")
}

func buildFileConfig(cfg Config) fileConfig {
	sizes := make([]int64, 0, len(cfg.CalibrationSizes))
	for _, v := range cfg.CalibrationSizes {
		sizes = append(sizes, int64(v))
	}
	return fileConfig{
		DataDir:                 cfg.DataDir,
		OutputDir:               cfg.OutputDir,
		BenchDBPath:             cfg.BenchDBPath,
		CalibrationSizes:        sizes,
		ProgressIntervalPercent: int64(cfg.ProgressIntervalPercent),
		ConfirmThresholdSeconds: cfg.ConfirmThresholdSeconds,
		CalcLogPath:             cfg.CalcLogPath,
		ErrorLogPath:            cfg.ErrorLogPath,
		DebugLogPath:            cfg.DebugLogPath,
	}
}

// rewriteConfigFile writes cfg to path atomically (temp file then rename) so
// an interrupted rewrite can never leave a truncated config behind.
func rewriteConfigFile(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	data, err := toml.Marshal(buildFileConfig(cfg))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmpFile.Name()
	removeTemp := true
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if removeTemp {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return fmt.Errorf("close temp config: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	removeTemp = false
	return nil
}
