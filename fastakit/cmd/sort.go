package cmd

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"slices"
)

type sortOptions struct {
	input  string
	common *commonFlags
}

func parseSortArgs(fs *flag.FlagSet, args []string) (sortOptions, error) {
	common := addCommonFlags(fs)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return sortOptions{}, err
	}
	if err := common.apply(); err != nil {
		return sortOptions{}, err
	}
	input, err := singleInput(positional)
	if err != nil {
		return sortOptions{}, err
	}
	return sortOptions{input: input, common: common}, nil
}

func runSort(args []string) {
	fs := newFlagSet("sort", "sort FILE")
	opts, err := parseSortArgs(fs, args)
	if err != nil {
		exitParse(fs, err)
	}

	checkInput(opts.input)
	err = writeStdout(func(w io.Writer) error {
		return sortFasta(w, opts.input, opts.common.progress)
	})
	if err != nil {
		fatalf("sort failed: %v", err)
	}
}

// sortFasta holds every record in memory, then writes them longest first.
// Records of equal length keep their input order.
func sortFasta(w io.Writer, input string, showProgress bool) error {
	var records []fastaRecord
	err := readFasta(input, showProgress, func(rec fastaRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return err
	}

	sortByLengthDesc(records)
	debugf("sorted %d records", len(records))

	reportEvery := 0
	if showProgress {
		reportEvery = 1
	}
	progress := newProgress(len(records), reportEvery, "writing")
	for _, rec := range records {
		if _, err := w.Write(rawText(rec)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		progress.increment()
	}
	progress.finish()
	return nil
}

func sortByLengthDesc(records []fastaRecord) {
	slices.SortStableFunc(records, func(a, b fastaRecord) int {
		return cmp.Compare(b.length(), a.length())
	})
}
