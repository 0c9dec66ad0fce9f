package main

import (
	"testing"

	apd "github.com/cockroachdb/apd/v2"
)

// TestPrecisionPolicyContexts verifies the guard-digit policy: +100
// significant digits while summing, +10 for the final division.
func TestPrecisionPolicyContexts(t *testing.T) {
	policy := newPrecisionPolicy(250)
	if got := policy.summationContext().Precision; got != 350 {
		t.Fatalf("summation precision = %d, want 350", got)
	}
	if got := policy.finalContext().Precision; got != 260 {
		t.Fatalf("final precision = %d, want 260", got)
	}
}

// TestTruncateToDigits verifies truncation keeps exactly the requested
// fractional digits and never rounds.
func TestTruncateToDigits(t *testing.T) {
	value, _, err := apd.NewFromString("3.14159")
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	got, err := truncateToDigits(value, 3)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	// 3.14159 truncated to 3 places is 3.141; rounding would give 3.142.
	if got != "3.141" {
		t.Fatalf("truncated to %q, want 3.141", got)
	}

	got, err = truncateToDigits(value, 5)
	if err != nil {
		t.Fatalf("truncate full width: %v", err)
	}
	if got != "3.14159" {
		t.Fatalf("truncated to %q, want 3.14159", got)
	}
}

// TestTruncateToDigitsTooShort verifies asking for more digits than the
// expansion carries is an error, not silent padding.
func TestTruncateToDigitsTooShort(t *testing.T) {
	value, _, err := apd.NewFromString("3.14")
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if _, err := truncateToDigits(value, 10); err == nil {
		t.Fatalf("expected error for under-precise expansion")
	}
}

// TestTruncateToDigitsInteger verifies a value with no fractional part is
// rejected rather than faked.
func TestTruncateToDigitsInteger(t *testing.T) {
	value := apd.New(3, 0)
	if _, err := truncateToDigits(value, 2); err == nil {
		t.Fatalf("expected error for integer expansion")
	}
}
