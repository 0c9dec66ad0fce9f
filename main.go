package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	debugpkg "runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"
)

func main() {
	// Top-level panic handler: capture any unexpected panic to panic.log
	// with a stack trace so it can be inspected after the fact.
	defer func() {
		if r := recover(); r != nil {
			if f, err := os.OpenFile("panic.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				defer f.Close()
				ts := time.Now().UTC().Format(time.RFC3339)
				fmt.Fprintf(f, "[%s] panic: %v\n%s\n\n", ts, r, debugpkg.Stack())
			}
		}
	}()

	digitsFlag := flag.Int("digits", 0, "decimal places of pi to calculate")
	configFlag := flag.String("config", "", "path to config.toml (default <data-dir>/config/config.toml)")
	dataDirFlag := flag.String("data-dir", "", "override data directory")
	outDirFlag := flag.String("out-dir", "", "override result output directory")
	benchFlag := flag.Bool("bench", false, "run calibration benchmarks and exit")
	estimateOnlyFlag := flag.Bool("estimate-only", false, "print the time estimate and exit without computing")
	importFlag := flag.String("import-benchmarks", "", "import samples from a pi_benchmarks.json file")
	exportFlag := flag.String("export-benchmarks", "", "export samples to a pi_benchmarks.json file")
	yesFlag := flag.Bool("yes", false, "skip the confirmation prompt for long calculations")
	stdoutLogFlag := flag.Bool("stdout", true, "mirror logs to stdout")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	rewriteConfigFlag := flag.Bool("rewrite-config", false, "rewrite config on startup")
	flag.Parse()

	os.Exit(run(runOptions{
		digits:        *digitsFlag,
		configPath:    *configFlag,
		dataDir:       *dataDirFlag,
		outDir:        *outDirFlag,
		bench:         *benchFlag,
		estimateOnly:  *estimateOnlyFlag,
		importPath:    *importFlag,
		exportPath:    *exportFlag,
		yes:           *yesFlag,
		stdoutLog:     *stdoutLogFlag,
		debug:         *debugFlag,
		rewriteConfig: *rewriteConfigFlag,
	}))
}

type runOptions struct {
	digits        int
	configPath    string
	dataDir       string
	outDir        string
	bench         bool
	estimateOnly  bool
	importPath    string
	exportPath    string
	yes           bool
	stdoutLog     bool
	debug         bool
	rewriteConfig bool
}

func run(opts runOptions) int {
	defer logger.Stop()

	dataDir := opts.dataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	configPath := opts.configPath
	if configPath == "" {
		configPath = filepath.Join(dataDir, "config", "config.toml")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fatal("load config failed", err, "path", configPath)
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.outDir != "" {
		cfg.OutputDir = opts.outDir
	}

	if opts.debug {
		setLogLevel(logLevelDebug)
	}
	configureFileLogging(cfg.CalcLogPath, cfg.ErrorLogPath, cfg.DebugLogPath, opts.stdoutLog)
	ensureExampleFiles(cfg.DataDir)

	if opts.rewriteConfig {
		if err := rewriteConfigFile(configPath, cfg); err != nil {
			fatal("rewrite config failed", err, "path", configPath)
		}
		logger.Info("config rewritten", "path", configPath)
	}

	store, err := openBenchStore(cfg.benchDBPath())
	if err != nil {
		fatal("open benchmark store failed", err, "path", cfg.benchDBPath())
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.importPath != "" {
		imported, err := importBenchmarksJSON(opts.importPath)
		if err != nil {
			fatal("import benchmarks failed", err, "path", opts.importPath)
		}
		if err := store.Save(imported); err != nil {
			fatal("save imported benchmarks failed", err)
		}
		logger.Info("benchmarks imported", "path", opts.importPath, "samples", len(imported))
	}
	if opts.exportPath != "" {
		set, err := store.Load()
		if err != nil {
			fatal("load benchmarks failed", err)
		}
		if err := exportBenchmarksJSON(opts.exportPath, set); err != nil {
			fatal("export benchmarks failed", err, "path", opts.exportPath)
		}
		logger.Info("benchmarks exported", "path", opts.exportPath, "samples", len(set))
	}
	if opts.importPath != "" || opts.exportPath != "" {
		if opts.digits == 0 && !opts.bench {
			return 0
		}
	}

	if opts.bench {
		if err := runCalibration(ctx, cfg, store); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("calibration cancelled")
				return 1
			}
			fatal("calibration failed", err)
		}
		return 0
	}

	digits := opts.digits
	if digits == 0 {
		digits, err = promptDigits()
		if err != nil {
			fatal("read digit count failed", err)
		}
	}
	if digits < 1 {
		fatal("invalid digit count", fmt.Errorf("digits must be >= 1, got %d", digits))
	}

	set, err := store.Load()
	if err != nil {
		fatal("load benchmarks failed", err)
	}
	if age, ok := store.NewestSampleAge(); ok {
		logger.Debug("benchmark data loaded", "samples", len(set), "newest", humanShortDuration(age))
	}

	estimate, haveEstimate, rejected := estimateWithVerdicts(digits, set)
	for _, verdict := range rejected {
		logger.Warn("benchmark sample skipped",
			"digits", verdict.Digits, "seconds", verdict.Seconds, "reason", verdict.Reason)
	}
	if haveEstimate {
		logger.Info("estimated calculation time", "digits", digits, "estimate", formatElapsed(secondsToDuration(estimate)))
	} else {
		logger.Info("no benchmark data available for an estimate; run -bench to calibrate")
	}
	if opts.estimateOnly {
		return 0
	}

	if haveEstimate && estimate > cfg.ConfirmThresholdSeconds && !opts.yes {
		ok, err := promptConfirm(fmt.Sprintf(
			"This calculation may take a long time (~%s). Continue? (y/n): ",
			formatElapsed(secondsToDuration(estimate))))
		if err != nil {
			fatal("confirmation failed", err, "hint", "pass -yes to skip the prompt")
		}
		if !ok {
			logger.Info("calculation declined")
			return 0
		}
	}

	logger.Info("calculation starting", "digits", digits, "iterations", iterationsFor(digits))
	res, err := computePi(ctx, digits, computeOptions{
		ProgressPercent: cfg.ProgressIntervalPercent,
		Progress:        logProgress,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Nothing is persisted for a cancelled run: no result file, no
			// benchmark sample.
			logger.Warn("calculation cancelled", "digits", digits)
			return 1
		}
		fatal("calculation failed", err, "digits", digits)
	}
	logger.Info("calculation complete", "digits", digits, "time", formatElapsed(res.Elapsed))

	report, err := writeResultFile(cfg.OutputDir, res)
	if err != nil {
		fatal("write result failed", err, "dir", cfg.OutputDir)
	}
	logger.Info("result saved", "path", report.Path, "write_time", formatElapsed(report.WriteTime))

	// A failed sample save must not be mistaken for a failed calculation:
	// the result file above is already on disk.
	if err := store.Record(digits, res.Elapsed.Seconds()); err != nil {
		logger.Error("record benchmark sample failed", "error", err)
	}

	return 0
}

func logProgress(fraction float64, elapsed time.Duration) {
	logger.Info("progress",
		"percent", fmt.Sprintf("%.1f", fraction*100),
		"elapsed", formatElapsed(elapsed))
}

func promptDigits() (int, error) {
	fmt.Print("Enter the number of decimal places to calculate: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, err
	}
	digits, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("not a valid integer: %w", err)
	}
	return digits, nil
}

func promptConfirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
