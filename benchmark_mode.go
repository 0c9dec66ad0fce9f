package main

import (
	"context"
	"fmt"
	"sort"
)

// runCalibration measures the configured calibration sizes and records each
// sample. Sizes already present in the store are reused rather than re-run.
// Runs are strictly sequential: overlapping computations would contend for
// cores and poison the timings the estimator fits against.
func runCalibration(ctx context.Context, cfg Config, store *benchStore) error {
	set, err := store.Load()
	if err != nil {
		return fmt.Errorf("load benchmark samples: %w", err)
	}

	for _, digits := range cfg.CalibrationSizes {
		if seconds, ok := set[digits]; ok {
			logger.Info("calibration sample cached", "digits", digits, "time", formatElapsed(secondsToDuration(seconds)))
			continue
		}

		logger.Info("calibration run starting", "digits", digits)
		res, err := computePi(ctx, digits, computeOptions{
			ProgressPercent: cfg.ProgressIntervalPercent,
			Progress:        logProgress,
		})
		if err != nil {
			return fmt.Errorf("calibration run digits=%d: %w", digits, err)
		}
		seconds := res.Elapsed.Seconds()
		if err := store.Record(digits, seconds); err != nil {
			return err
		}
		set[digits] = seconds
		logger.Info("calibration run complete", "digits", digits, "time", formatElapsed(res.Elapsed))
	}

	logCalibrationProfile(set)
	return nil
}

// logCalibrationProfile prints the system profile the way the estimator sees
// it: each sample's timing and throughput, ascending by digit count.
func logCalibrationProfile(set benchmarkSet) {
	sizes := make([]int, 0, len(set))
	for digits := range set {
		sizes = append(sizes, digits)
	}
	sort.Ints(sizes)

	for _, digits := range sizes {
		seconds := set[digits]
		rate := 0.0
		if seconds > 0 {
			rate = float64(digits) / seconds
		}
		logger.Info("system profile",
			"digits", digits,
			"time", formatElapsed(secondsToDuration(seconds)),
			"digits_per_sec", fmt.Sprintf("%.0f", rate))
	}
}
