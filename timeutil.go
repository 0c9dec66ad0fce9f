package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hako/durafmt"
)

// formatElapsed renders a duration the way benchmark output reads best:
// milliseconds below one second, seconds below one minute, and durafmt's
// "1 minute 30 seconds" style above that, limited to the two largest units.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := d.Seconds()
	if secs < 1 {
		return fmt.Sprintf("%.2f milliseconds", secs*1000)
	}
	if secs < 60 {
		return fmt.Sprintf("%.2f seconds", secs)
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}

// humanShortDuration produces a short, human-friendly duration string like
// "just now", "5s", "3m", "2h", "4d". Used for sample ages in log lines.
func humanShortDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return "just now"
	}
	if d < time.Minute {
		secs := int(d.Seconds())
		return formatUnit(secs, "s")
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		return formatUnit(mins, "m")
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		return formatUnit(hours, "h")
	}
	days := int(d.Hours() / 24)
	return formatUnit(days, "d")
}

func formatUnit(v int, suffix string) string {
	if v <= 0 {
		v = 1
	}
	return strconv.Itoa(v) + suffix
}

// secondsToDuration converts an estimator result (fractional seconds) into a
// time.Duration without losing sub-millisecond resolution.
func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
