package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestWriteResultFile verifies the report lands in the output dir with the
// full digit string, the digit count, and a checksum matching the value.
func TestWriteResultFile(t *testing.T) {
	dir := t.TempDir()
	res := &piResult{
		Requested:  10,
		Digits:     "3.1415926535",
		Iterations: iterationsFor(10),
		Elapsed:    1234 * time.Millisecond,
	}

	report, err := writeResultFile(dir, res)
	if err != nil {
		t.Fatalf("writeResultFile: %v", err)
	}
	if filepath.Dir(report.Path) != dir {
		t.Fatalf("report written outside output dir: %s", report.Path)
	}
	base := filepath.Base(report.Path)
	if !strings.HasPrefix(base, "pi_10_digits_") || !strings.HasSuffix(base, ".txt") {
		t.Fatalf("unexpected report name %q", base)
	}

	data, err := os.ReadFile(report.Path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "3.1415926535") {
		t.Fatalf("report missing digit string:\n%s", content)
	}
	if !strings.Contains(content, "Total digits after decimal point: 10") {
		t.Fatalf("report missing digit count:\n%s", content)
	}
	if !strings.Contains(content, "SHA-256 of value: "+digitChecksum(res.Digits)) {
		t.Fatalf("report missing matching checksum:\n%s", content)
	}
	if !strings.Contains(content, "Requested Precision: 10 decimal places") {
		t.Fatalf("report missing precision line:\n%s", content)
	}

	metaData, err := os.ReadFile(report.MetaPath)
	if err != nil {
		t.Fatalf("read metadata sidecar: %v", err)
	}
	var meta resultMetadata
	if err := fastJSONUnmarshal(metaData, &meta); err != nil {
		t.Fatalf("decode metadata sidecar: %v", err)
	}
	if meta.RequestedDigits != 10 {
		t.Fatalf("metadata requested_digits = %d", meta.RequestedDigits)
	}
	if meta.SHA256 != digitChecksum(res.Digits) {
		t.Fatalf("metadata checksum mismatch")
	}
	if meta.ElapsedSeconds != 1.234 {
		t.Fatalf("metadata elapsed_seconds = %v", meta.ElapsedSeconds)
	}
}

// TestWriteResultFileCreatesDir verifies a missing output directory is
// created rather than reported as an error.
func TestWriteResultFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	res := &piResult{Requested: 1, Digits: "3.1", Elapsed: time.Millisecond}

	report, err := writeResultFile(dir, res)
	if err != nil {
		t.Fatalf("writeResultFile: %v", err)
	}
	if _, err := os.Stat(report.Path); err != nil {
		t.Fatalf("report not on disk: %v", err)
	}
}

// TestDigitChecksumStable verifies the checksum is a pure function of the
// digit string.
func TestDigitChecksumStable(t *testing.T) {
	a := digitChecksum("3.14159")
	b := digitChecksum("3.14159")
	if a != b {
		t.Fatalf("checksum not stable: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == digitChecksum("3.14158") {
		t.Fatalf("different digits produced the same checksum")
	}
}
