package cmd

import (
	"flag"
	"fmt"
	"io"
)

type cleanOptions struct {
	input     string
	wrapWidth int
	common    *commonFlags
}

func parseCleanArgs(fs *flag.FlagSet, args []string) (cleanOptions, error) {
	wrap := fs.Int("wrap_width", 0, "Wrap the sequence to N columns (0 keeps one line)")
	fs.IntVar(wrap, "w", 0, "Shorthand for --wrap_width")
	common := addCommonFlags(fs)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return cleanOptions{}, err
	}
	if err := common.apply(); err != nil {
		return cleanOptions{}, err
	}
	input, err := singleInput(positional)
	if err != nil {
		return cleanOptions{}, err
	}
	if *wrap < 0 {
		return cleanOptions{}, argErrorf("wrap_width must be >= 0")
	}
	return cleanOptions{input: input, wrapWidth: *wrap, common: common}, nil
}

func runClean(args []string) {
	fs := newFlagSet("clean", "clean FILE [--wrap_width N]")
	opts, err := parseCleanArgs(fs, args)
	if err != nil {
		exitParse(fs, err)
	}

	checkInput(opts.input)
	err = writeStdout(func(w io.Writer) error {
		return cleanFasta(w, opts.input, opts.wrapWidth, opts.common.progress)
	})
	if err != nil {
		fatalf("clean failed: %v", err)
	}
}

// cleanFasta rewrites each record with a normalised header and body.
func cleanFasta(w io.Writer, input string, wrapWidth int, showProgress bool) error {
	return readFasta(input, showProgress, func(rec fastaRecord) error {
		if _, err := io.WriteString(w, formatRecord(rec, wrapWidth)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	})
}
