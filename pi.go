package main

import (
	"context"
	"fmt"
	"time"

	apd "github.com/cockroachdb/apd/v2"
)

// piResult is the outcome of one completed calculation. Digits holds the
// full textual value ("3." followed by exactly Requested fractional digits,
// truncated rather than rounded).
type piResult struct {
	Requested  int
	Digits     string
	Iterations int
	Elapsed    time.Duration
}

// computeOptions tunes the advisory progress side channel. The zero value
// means "default cadence, no listener".
type computeOptions struct {
	ProgressPercent int
	Progress        progressFunc
}

// computePi evaluates the Chudnovsky series for the requested number of
// decimal places. requestedDigits must already be validated (>= 1) by the
// caller; the result for a given digit count is bit-identical across runs.
// A cancelled context aborts between iterations and returns the context
// error with no partial result.
func computePi(ctx context.Context, requestedDigits int, opts computeOptions) (*piResult, error) {
	started := time.Now()

	policy := newPrecisionPolicy(requestedDigits)
	sctx := policy.summationContext()

	// C = 426880 * sqrt(10005) at full working precision.
	root := new(apd.Decimal)
	if _, err := sctx.Sqrt(root, apd.New(chudRootRadicand, 0)); err != nil {
		return nil, fmt.Errorf("sqrt(%d): %w", chudRootRadicand, err)
	}
	c := new(apd.Decimal)
	if _, err := sctx.Mul(c, apd.New(chudRootScale, 0), root); err != nil {
		return nil, fmt.Errorf("scale sqrt: %w", err)
	}

	iterations := iterationsFor(requestedDigits)
	sum, err := evaluateSeries(ctx, sctx, iterations, opts.ProgressPercent, opts.Progress, started)
	if err != nil {
		return nil, err
	}

	// The final division runs at the narrowed precision; the guard digits
	// have done their job during summation.
	fctx := policy.finalContext()
	pi := new(apd.Decimal)
	if _, err := fctx.Quo(pi, c, sum); err != nil {
		return nil, fmt.Errorf("final division: %w", err)
	}

	digits, err := truncateToDigits(pi, requestedDigits)
	if err != nil {
		return nil, fmt.Errorf("trim result: %w", err)
	}

	return &piResult{
		Requested:  requestedDigits,
		Digits:     digits,
		Iterations: iterations,
		Elapsed:    time.Since(started),
	}, nil
}
