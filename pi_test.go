package main

import (
	"context"
	"testing"
	"time"
)

// piReference1000 is the first 1000 decimal places of pi, used as the oracle
// for digit comparisons.
const piReference1000 = "1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679" +
	"8214808651328230664709384460955058223172535940812848111745028410270193852110555964462294895493038196" +
	"4428810975665933446128475648233786783165271201909145648566923460348610454326648213393607260249141273" +
	"7245870066063155881748815209209628292540917153643678925903600113305305488204665213841469519415116094" +
	"3305727036575959195309218611738193261179310511854807446237996274956735188575272489122793818301194912" +
	"9833673362440656643086021394946395224737190702179860943702770539217176293176752384674818467669405132" +
	"0005681271452635608277857713427577896091736371787214684409012249534301465495853710507922796892589235" +
	"4201995611212902196086403441815981362977477130996051870721134999999837297804995105973173281609631859" +
	"5024459455346908302642522308253344685035261931188171010003137838752886587533208381420617177669147303" +
	"5982534904287554687311595628638823537875937519577818577805321712268066130019278766111959092164201989"

// TestComputePiMatchesReference verifies the first p fractional digits
// against the canonical expansion for several precisions.
func TestComputePiMatchesReference(t *testing.T) {
	for _, p := range []int{1, 10, 100, 1000} {
		res, err := computePi(context.Background(), p, computeOptions{})
		if err != nil {
			t.Fatalf("computePi(%d): %v", p, err)
		}
		want := "3." + piReference1000[:p]
		if res.Digits != want {
			t.Fatalf("computePi(%d) digits mismatch:\n got %s\nwant %s", p, res.Digits, want)
		}
		if res.Requested != p {
			t.Fatalf("computePi(%d) requested=%d", p, res.Requested)
		}
	}
}

// TestComputePiDeterministic verifies repeated calls yield bit-identical
// digit strings.
func TestComputePiDeterministic(t *testing.T) {
	a, err := computePi(context.Background(), 120, computeOptions{})
	if err != nil {
		t.Fatalf("first computePi: %v", err)
	}
	b, err := computePi(context.Background(), 120, computeOptions{})
	if err != nil {
		t.Fatalf("second computePi: %v", err)
	}
	if a.Digits != b.Digits {
		t.Fatalf("digit strings differ:\n%s\n%s", a.Digits, b.Digits)
	}
}

// TestComputePiTruncatesFinalDigit pins the truncation policy: the 11th
// fractional digit of pi is 8, so rounding would produce ...36 while
// truncation must keep ...35.
func TestComputePiTruncatesFinalDigit(t *testing.T) {
	res, err := computePi(context.Background(), 10, computeOptions{})
	if err != nil {
		t.Fatalf("computePi: %v", err)
	}
	if res.Digits != "3.1415926535" {
		t.Fatalf("expected truncated 3.1415926535, got %s", res.Digits)
	}
}

// TestIterationsForKnownValue checks the documented term count for 100
// digits: floor(100/14.1816...) + 10 = 17.
func TestIterationsForKnownValue(t *testing.T) {
	if got := iterationsFor(100); got != 17 {
		t.Fatalf("iterationsFor(100) = %d, want 17", got)
	}
}

// TestIterationsForNonDecreasing verifies the term count never shrinks as
// the requested precision grows.
func TestIterationsForNonDecreasing(t *testing.T) {
	prev := iterationsFor(1)
	for p := 2; p <= 5000; p++ {
		cur := iterationsFor(p)
		if cur < prev {
			t.Fatalf("iterationsFor(%d) = %d < iterationsFor(%d) = %d", p, cur, p-1, prev)
		}
		prev = cur
	}
}

// TestComputePiCancelled verifies a cancelled context aborts the series loop
// with context.Canceled and no partial result.
func TestComputePiCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := computePi(ctx, 2000, computeOptions{})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result from a cancelled run, got %+v", res)
	}
}

// TestComputePiProgressCadence verifies progress fires for long runs, stays
// within [0,1], and is fully suppressed for short runs.
func TestComputePiProgressCadence(t *testing.T) {
	var fractions []float64
	progress := func(fraction float64, _ time.Duration) {
		fractions = append(fractions, fraction)
	}

	// 600 digits -> 52 iterations, above the 50-iteration floor.
	if _, err := computePi(context.Background(), 600, computeOptions{Progress: progress}); err != nil {
		t.Fatalf("computePi(600): %v", err)
	}
	if len(fractions) == 0 {
		t.Fatalf("expected progress notifications for a 52-iteration run")
	}
	for i, f := range fractions {
		if f <= 0 || f >= 1 {
			t.Fatalf("fraction %d out of range (0,1): %f", i, f)
		}
		if i > 0 && f <= fractions[i-1] {
			t.Fatalf("fractions not increasing: %v", fractions)
		}
	}

	fractions = nil
	// 100 digits -> 17 iterations, below the floor: no notifications.
	if _, err := computePi(context.Background(), 100, computeOptions{Progress: progress}); err != nil {
		t.Fatalf("computePi(100): %v", err)
	}
	if len(fractions) != 0 {
		t.Fatalf("expected no progress for a 17-iteration run, got %d calls", len(fractions))
	}
}
