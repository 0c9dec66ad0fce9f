package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	simdsha "github.com/minio/sha256-simd"
)

// resultReport describes a written result file and its metadata sidecar.
type resultReport struct {
	Path      string
	MetaPath  string
	WriteTime time.Duration
}

// resultMetadata is the machine-readable sidecar written next to the text
// report, so tooling can index results without parsing the report layout.
type resultMetadata struct {
	RequestedDigits int     `json:"requested_digits"`
	Iterations      int     `json:"iterations"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	CalculatedAt    string  `json:"calculated_at"`
	SHA256          string  `json:"sha256"`
}

// digitChecksum returns the hex SHA-256 of the full digit string, so a
// result file can be verified after copying it around.
func digitChecksum(digits string) string {
	sum := simdsha.Sum256([]byte(digits))
	return hex.EncodeToString(sum[:])
}

// writeResultFile stores a completed calculation as
// pi_<digits>_digits_<timestamp>.txt in outDir. The digit string it receives
// already has exactly res.Requested fractional digits.
func writeResultFile(outDir string, res *piResult) (resultReport, error) {
	started := time.Now()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return resultReport{}, fmt.Errorf("create output dir: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("pi_%d_digits_%s.txt", res.Requested, now.Format("20060102_150405"))
	path := filepath.Join(outDir, name)

	_, frac, _ := strings.Cut(res.Digits, ".")

	var b strings.Builder
	b.WriteString("Pi Calculator - Chudnovsky Algorithm Results\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Calculation Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Requested Precision: %d decimal places\n", res.Requested)
	fmt.Fprintf(&b, "Calculation Time: %s\n", formatElapsed(res.Elapsed))
	b.WriteString("Algorithm: Chudnovsky Algorithm\n\n")
	b.WriteString("Pi Value:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	b.WriteString(res.Digits)
	b.WriteString("\n\n")
	b.WriteString("Summary:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&b, "Total digits after decimal point: %d\n", len(frac))
	fmt.Fprintf(&b, "SHA-256 of value: %s\n", digitChecksum(res.Digits))
	fmt.Fprintf(&b, "Calculation completed successfully in %s!\n", formatElapsed(res.Elapsed))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return resultReport{}, fmt.Errorf("write result file: %w", err)
	}

	meta := resultMetadata{
		RequestedDigits: res.Requested,
		Iterations:      res.Iterations,
		ElapsedSeconds:  res.Elapsed.Seconds(),
		CalculatedAt:    now.UTC().Format(time.RFC3339),
		SHA256:          digitChecksum(res.Digits),
	}
	metaData, err := fastJSONMarshal(meta)
	if err != nil {
		return resultReport{}, fmt.Errorf("encode result metadata: %w", err)
	}
	metaPath := strings.TrimSuffix(path, ".txt") + ".json"
	if err := os.WriteFile(metaPath, append(metaData, '\n'), 0o644); err != nil {
		return resultReport{}, fmt.Errorf("write result metadata: %w", err)
	}

	return resultReport{Path: path, MetaPath: metaPath, WriteTime: time.Since(started)}, nil
}
