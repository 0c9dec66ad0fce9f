package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	apd "github.com/cockroachdb/apd/v2"
)

// Chudnovsky series constants. These are exact values from the 1988
// Chudnovsky brothers formula
//
//	1/pi = 12 * sum_{i>=0} (-1)^i (6i)! (13591409 + 545140134 i)
//	       / ((3i)! (i!)^3 640320^(3i + 3/2))
//
// rearranged to pi = 426880*sqrt(10005) / sum_i M_i*L_i/X_i. None of them may
// be approximated: the integer recurrences below rely on them being exact.
const (
	// chudLinearBase and chudLinearStep generate L_i = 13591409 + 545140134*i.
	chudLinearBase = 13591409
	chudLinearStep = 545140134

	// chudGeomFactor is (-640320)^3, the per-term multiplier of X.
	chudGeomFactor = -262537412640768000

	// chudRootScale and chudRootRadicand form C = 426880 * sqrt(10005),
	// since 426880*sqrt(10005) = 640320^(3/2)/12.
	chudRootScale    = 426880
	chudRootRadicand = 10005

	// decimalDigitsPerTerm is how many decimal digits each series term
	// contributes: log10(640320^3 / (24*6)) = log10(151931373056000/6).
	decimalDigitsPerTerm = 14.181647462725477

	// guardIterations protects against truncation error at the tail of the
	// fixed-length summation. There is deliberately no convergence check:
	// the term count is derived from the requested digits alone, so the
	// result is reproducible and the loop strictly bounded.
	guardIterations = 10
)

const (
	// progressMinIterations suppresses progress output for runs short enough
	// that reporting would just be noise.
	progressMinIterations = 50

	// defaultProgressPercent emits one progress notification per 5% of the
	// iteration count when the caller does not choose a cadence.
	defaultProgressPercent = 5
)

// progressFunc receives advisory progress notifications: the fraction of
// iterations completed in [0,1] and the wall time spent so far. It must not
// influence the numeric result.
type progressFunc func(fraction float64, elapsed time.Duration)

// iterationsFor returns the number of series terms summed for the requested
// digit count, including the i=0 term folded into the initial sum.
func iterationsFor(requestedDigits int) int {
	return int(float64(requestedDigits)/decimalDigitsPerTerm) + guardIterations
}

// seriesState is the accumulator tuple for the Chudnovsky recurrences.
// M, L, X and K are exact integers; rounding any of them would break the
// series (the M update divides by i^3, which is always exact). Only the sum
// uses decimal arithmetic.
type seriesState struct {
	m *big.Int
	l *big.Int
	x *big.Int
	k *big.Int

	sum *apd.Decimal
}

func newSeriesState() *seriesState {
	return &seriesState{
		m: big.NewInt(1),
		l: big.NewInt(chudLinearBase),
		x: big.NewInt(1),
		k: big.NewInt(6),
		// The i=0 term is M*L/X = L.
		sum: apd.New(chudLinearBase, 0),
	}
}

// step advances the state from term i-1 to term i and adds M_i*L_i/X_i to the
// sum at the context's working precision.
func (s *seriesState) step(dctx *apd.Context, i int64) error {
	// M_i = M_{i-1} * 8(K-5)(K-3)(K-1) / i^3 with K = 6i. The product
	// 8(6i-5)(6i-3)(6i-1) is the exact ratio of (6i)!/((3i)!(i!)^3) to its
	// predecessor, so the division by i^3 never leaves a remainder.
	var f, t big.Int
	f.Sub(s.k, big.NewInt(5))
	t.Sub(s.k, big.NewInt(3))
	f.Mul(&f, &t)
	t.Sub(s.k, big.NewInt(1))
	f.Mul(&f, &t)
	f.Lsh(&f, 3)
	s.m.Mul(s.m, &f)

	var cube big.Int
	cube.SetInt64(i)
	cube.Mul(&cube, &cube)
	cube.Mul(&cube, big.NewInt(i))
	s.m.Quo(s.m, &cube)

	s.k.Add(s.k, big.NewInt(6))
	s.l.Add(s.l, big.NewInt(chudLinearStep))
	s.x.Mul(s.x, big.NewInt(chudGeomFactor))

	var ml big.Int
	ml.Mul(s.m, s.l)
	term := new(apd.Decimal)
	if _, err := dctx.Quo(term, apd.NewWithBigInt(&ml, 0), apd.NewWithBigInt(s.x, 0)); err != nil {
		return fmt.Errorf("series term %d: %w", i, err)
	}
	if _, err := dctx.Add(s.sum, s.sum, term); err != nil {
		return fmt.Errorf("series sum at term %d: %w", i, err)
	}
	return nil
}

// evaluateSeries sums the Chudnovsky series at the context's working
// precision. Cancellation is checked at every iteration boundary; on
// cancellation no partial sum is returned. progressPercent chooses the
// notification cadence (0 means the default of every 5%).
func evaluateSeries(ctx context.Context, dctx *apd.Context, iterations int, progressPercent int, progress progressFunc, started time.Time) (*apd.Decimal, error) {
	if progressPercent <= 0 || progressPercent > 100 {
		progressPercent = defaultProgressPercent
	}
	interval := iterations * progressPercent / 100
	if interval < 1 {
		interval = 1
	}

	state := newSeriesState()
	for i := 1; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil && iterations > progressMinIterations && i%interval == 0 {
			progress(float64(i)/float64(iterations), time.Since(started))
		}
		if err := state.step(dctx, int64(i)); err != nil {
			return nil, err
		}
	}
	return state.sum, nil
}
