package main

import (
	"fmt"
	"os"
	"strconv"
)

// The JSON interchange format keys digit counts as strings, matching the
// pi_benchmarks.json files written by earlier versions of this tool:
//
//	{"100": 0.012, "1000": 0.31}
//
// Export then import reproduces the mapping exactly; float64 seconds are
// encoded in shortest round-trip form.

func exportBenchmarksJSON(path string, set benchmarkSet) error {
	out := make(map[string]float64, len(set))
	for digits, seconds := range set {
		out[strconv.Itoa(digits)] = seconds
	}
	data, err := fastJSONMarshalIndent(out)
	if err != nil {
		return fmt.Errorf("encode benchmarks: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write benchmarks: %w", err)
	}
	return nil
}

func importBenchmarksJSON(path string) (benchmarkSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmarks: %w", err)
	}
	raw := map[string]float64{}
	if err := fastJSONUnmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode benchmarks: %w", err)
	}
	set := make(benchmarkSet, len(raw))
	for key, seconds := range raw {
		digits, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decode benchmarks: bad digit key %q", key)
		}
		set[digits] = seconds
	}
	return set, nil
}
