package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput is returned when statistics are requested for zero lengths.
var ErrEmptyInput = errors.New("no sequence lengths to summarize")

type lengthStats struct {
	Sum    int
	L50    int
	N50    int
	Count  int
	Mean   float64
	Median float64
}

// computeStats summarizes a length distribution. L50 is the length at which
// the longest-first running total first exceeds half the sum, and N50 is the
// number of lengths at least that long. lengths is not modified.
func computeStats(lengths []int) (lengthStats, error) {
	if len(lengths) == 0 {
		return lengthStats{}, ErrEmptyInput
	}

	sorted := slices.Clone(lengths)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })

	var sum int
	values := make([]float64, len(sorted))
	for i, l := range sorted {
		sum += l
		values[i] = float64(l)
	}

	half := float64(sum) / 2
	l50 := sorted[len(sorted)-1]
	running := 0
	for _, l := range sorted {
		running += l
		if float64(running) > half {
			l50 = l
			break
		}
	}

	n50 := 0
	for _, l := range sorted {
		if l < l50 {
			break
		}
		n50++
	}

	n := len(sorted)
	var median float64
	if n%2 == 0 {
		median = (values[n/2-1] + values[n/2]) / 2
	} else {
		median = values[n/2]
	}

	return lengthStats{
		Sum:    sum,
		L50:    l50,
		N50:    n50,
		Count:  n,
		Mean:   stat.Mean(values, nil),
		Median: median,
	}, nil
}

// statField is one line of a statistics report.
type statField interface {
	name() string
	value() string
}

type intField struct {
	label string
	v     int
}

func (f intField) name() string  { return f.label }
func (f intField) value() string { return fmt.Sprintf("%d", f.v) }

type realField struct {
	label string
	v     float64
}

func (f realField) name() string  { return f.label }
func (f realField) value() string { return fmt.Sprintf("%f", f.v) }

// fields returns the report lines in their fixed output order.
func (s lengthStats) fields() []statField {
	return []statField{
		intField{"sum", s.Sum},
		intField{"l50", s.L50},
		intField{"n50", s.N50},
		intField{"count", s.Count},
		realField{"mean", s.Mean},
		realField{"median", s.Median},
	}
}

func formatStats(s lengthStats) string {
	fields := s.fields()
	width := 0
	for _, f := range fields {
		width = max(width, len(f.name()))
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("  %-*s: %s", width, capitalize(f.name()), f.value()))
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
