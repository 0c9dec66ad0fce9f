package main

import (
	"math"
	"sort"
)

// benchmarkSet maps a digit count to the seconds a past calculation of that
// size took on this machine. Keys are unique by construction.
type benchmarkSet map[int]float64

// benchmarkSample is one usable (digits, seconds) pair.
type benchmarkSample struct {
	digits  int
	seconds float64
}

// sampleVerdict reports why a recorded sample was excluded from curve
// fitting. Excluded samples are diagnostics, never faults: estimation
// proceeds with whatever valid samples remain.
type sampleVerdict struct {
	Digits  int
	Seconds float64
	Reason  string
}

const (
	rejectNonPositiveDigits  = "non-positive digit count"
	rejectNonPositiveSeconds = "non-positive elapsed seconds"
)

// vetSamples splits a benchmark set into usable samples, sorted ascending by
// digit count, and verdicts for the entries that cannot participate in a
// power-law fit (both coordinates must be strictly positive for the
// logarithms to exist).
func vetSamples(set benchmarkSet) ([]benchmarkSample, []sampleVerdict) {
	valid := make([]benchmarkSample, 0, len(set))
	var rejected []sampleVerdict
	for digits, seconds := range set {
		switch {
		case digits <= 0:
			rejected = append(rejected, sampleVerdict{Digits: digits, Seconds: seconds, Reason: rejectNonPositiveDigits})
		case seconds <= 0:
			rejected = append(rejected, sampleVerdict{Digits: digits, Seconds: seconds, Reason: rejectNonPositiveSeconds})
		default:
			valid = append(valid, benchmarkSample{digits: digits, seconds: seconds})
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].digits < valid[j].digits })
	sort.Slice(rejected, func(i, j int) bool { return rejected[i].Digits < rejected[j].Digits })
	return valid, rejected
}

// powerLawExponent solves time = a*digits^b for b from two samples.
func powerLawExponent(s1, s2 benchmarkSample) float64 {
	return math.Log(s2.seconds/s1.seconds) / math.Log(float64(s2.digits)/float64(s1.digits))
}

// estimateSeconds predicts how long computing targetDigits digits will take,
// fitting a local power law through exactly two samples. Inside the sampled
// range it uses the adjacent pair bracketing the target; beyond it, the two
// largest samples. The second return is false when no estimate is possible
// (fewer than two usable samples, or the target falls below every sample).
func estimateSeconds(targetDigits int, set benchmarkSet) (float64, bool) {
	est, ok, _ := estimateWithVerdicts(targetDigits, set)
	return est, ok
}

// estimateWithVerdicts is estimateSeconds plus the per-sample rejection
// verdicts, for callers that want to log why data was ignored.
func estimateWithVerdicts(targetDigits int, set benchmarkSet) (float64, bool, []sampleVerdict) {
	valid, rejected := vetSamples(set)
	if targetDigits <= 0 || len(valid) < 2 {
		return 0, false, rejected
	}

	if targetDigits <= valid[len(valid)-1].digits {
		// Interpolation: first adjacent pair with d1 <= target <= d2.
		for i := 0; i+1 < len(valid); i++ {
			s1, s2 := valid[i], valid[i+1]
			if s1.digits <= targetDigits && targetDigits <= s2.digits {
				b := powerLawExponent(s1, s2)
				est := s1.seconds * math.Pow(float64(targetDigits)/float64(s1.digits), b)
				return est, true, rejected
			}
		}
		// Target below the smallest sample: no bracketing pair.
		return 0, false, rejected
	}

	// Extrapolation from the two largest samples.
	s1, s2 := valid[len(valid)-2], valid[len(valid)-1]
	b := powerLawExponent(s1, s2)
	est := s2.seconds * math.Pow(float64(targetDigits)/float64(s2.digits), b)
	return est, true, rejected
}
