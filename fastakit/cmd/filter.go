package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// ErrInvalidPattern is returned when --defline_grep does not compile.
var ErrInvalidPattern = errors.New("invalid definition line pattern")

type filterConfig struct {
	LengthCutoff int
	Pattern      *regexp.Regexp
	Invert       bool
}

func newFilterConfig(cutoff int, pattern string, invert bool) (filterConfig, error) {
	if cutoff < 0 {
		return filterConfig{}, argErrorf("length cutoff must be >= 0")
	}
	cfg := filterConfig{LengthCutoff: cutoff, Invert: invert}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return filterConfig{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
		cfg.Pattern = re
	}
	return cfg, nil
}

func (c filterConfig) passes(rec fastaRecord) bool {
	ok := rec.length() >= c.LengthCutoff &&
		(c.Pattern == nil || c.Pattern.MatchString(rec.definition))
	if c.Invert {
		return !ok
	}
	return ok
}

type filterOptions struct {
	input      string
	filter     filterConfig
	reportPath string
	common     *commonFlags
}

type filterStats struct {
	Total           int  `json:"total"`
	Written         int  `json:"written"`
	TooShort        int  `json:"too_short"`
	DeflineMismatch int  `json:"defline_mismatch"`
	Inverted        bool `json:"inverted"`
}

func parseFilterArgs(fs *flag.FlagSet, args []string) (filterOptions, error) {
	cutoff := fs.Int("length_cutoff", 0, "Only entries with length >= cutoff will be returned")
	fs.IntVar(cutoff, "l", 0, "Shorthand for --length_cutoff")
	invert := fs.Bool("inverse_match", false, "Return the inverse of the match after all the other filters have been applied")
	fs.BoolVar(invert, "v", false, "Shorthand for --inverse_match")
	grep := fs.String("defline_grep", "", "Regular expression searched for in each definition line")
	fs.StringVar(grep, "d", "", "Shorthand for --defline_grep")
	report := fs.String("report", "", "Optional JSON report output path")
	common := addCommonFlags(fs)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return filterOptions{}, err
	}
	if err := common.apply(); err != nil {
		return filterOptions{}, err
	}
	input, err := singleInput(positional)
	if err != nil {
		return filterOptions{}, err
	}
	cfg, err := newFilterConfig(*cutoff, *grep, *invert)
	if err != nil {
		return filterOptions{}, err
	}
	return filterOptions{input: input, filter: cfg, reportPath: *report, common: common}, nil
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "filter FILE [--length_cutoff N] [--inverse_match] [--defline_grep PATTERN]")
	opts, err := parseFilterArgs(fs, args)
	if err != nil {
		exitParse(fs, err)
	}

	checkInput(opts.input)
	var stats filterStats
	err = writeStdout(func(w io.Writer) error {
		var err error
		stats, err = filterFasta(w, opts.input, opts.filter, opts.common.progress)
		return err
	})
	if err != nil {
		fatalf("filter failed: %v", err)
	}
	if opts.reportPath != "" {
		if err := writeFilterReport(opts.reportPath, stats); err != nil {
			fatalf("filter failed: %v", err)
		}
	}
	debugf("filter: total=%d kept=%d short=%d defline=%d", stats.Total, stats.Written, stats.TooShort, stats.DeflineMismatch)
}

// filterFasta writes every record that passes cfg to w in its original form.
func filterFasta(w io.Writer, input string, cfg filterConfig, showProgress bool) (filterStats, error) {
	stats := filterStats{Inverted: cfg.Invert}
	err := readFasta(input, showProgress, func(rec fastaRecord) error {
		stats.Total++
		if rec.length() < cfg.LengthCutoff {
			stats.TooShort++
		} else if cfg.Pattern != nil && !cfg.Pattern.MatchString(rec.definition) {
			stats.DeflineMismatch++
		}
		if !cfg.passes(rec) {
			return nil
		}
		if _, err := w.Write(rawText(rec)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		stats.Written++
		return nil
	})
	return stats, err
}

func writeFilterReport(path string, stats filterStats) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
