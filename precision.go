package main

import (
	"fmt"
	"strings"

	apd "github.com/cockroachdb/apd/v2"
)

const (
	// summationGuardDigits is the extra working precision carried while the
	// series is summed. Every term division rounds at working precision, so
	// the guard absorbs the accumulated rounding error before the requested
	// digits are cut from the result.
	summationGuardDigits = 100

	// finalGuardDigits is the (narrower) extra precision used for the single
	// division that produces pi from the series sum.
	finalGuardDigits = 10
)

// precisionPolicy fixes the decimal precision for one calculation. It is a
// value created per call, never shared: two concurrent calculations each get
// their own apd contexts and cannot observe each other's rounding.
type precisionPolicy struct {
	requested int
}

func newPrecisionPolicy(requested int) precisionPolicy {
	return precisionPolicy{requested: requested}
}

// summationContext returns the decimal context for series summation,
// requested + summationGuardDigits significant digits.
func (p precisionPolicy) summationContext() *apd.Context {
	return apd.BaseContext.WithPrecision(uint32(p.requested + summationGuardDigits))
}

// finalContext returns the decimal context for the final division,
// requested + finalGuardDigits significant digits.
func (p precisionPolicy) finalContext() *apd.Context {
	return apd.BaseContext.WithPrecision(uint32(p.requested + finalGuardDigits))
}

// truncateToDigits cuts the plain-text decimal expansion of value down to
// exactly digits fractional digits. The tail is dropped, never rounded; the
// guard digits upstream guarantee the kept digits are already exact.
func truncateToDigits(value *apd.Decimal, digits int) (string, error) {
	text := value.Text('f')
	intPart, fracPart, found := strings.Cut(text, ".")
	if !found {
		return "", fmt.Errorf("expansion %q has no fractional digits", text)
	}
	if len(fracPart) < digits {
		return "", fmt.Errorf("expansion has %d fractional digits, need %d", len(fracPart), digits)
	}
	return intPart + "." + fracPart[:digits], nil
}
