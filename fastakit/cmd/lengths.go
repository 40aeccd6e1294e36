package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

type lengthsOptions struct {
	input         string
	cutoff        int
	histogramPath string
	bins          int
	tablePath     string
	common        *commonFlags
}

func parseLengthsArgs(fs *flag.FlagSet, args []string) (lengthsOptions, error) {
	cutoff := fs.Int("cutoff", 0, "Also report entries with length >= cutoff (0 disables)")
	fs.IntVar(cutoff, "c", 0, "Shorthand for --cutoff")
	histogram := fs.String("histogram", "", "Optional length histogram image (.svg, .png or .pdf)")
	bins := fs.Int("bins", 50, "Histogram bin count")
	table := fs.String("table", "", "Optional Arrow IPC file with per-record lengths")
	common := addCommonFlags(fs)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return lengthsOptions{}, err
	}
	if err := common.apply(); err != nil {
		return lengthsOptions{}, err
	}
	input, err := singleInput(positional)
	if err != nil {
		return lengthsOptions{}, err
	}
	if *cutoff < 0 {
		return lengthsOptions{}, argErrorf("cutoff must be >= 0")
	}
	if *bins <= 0 {
		return lengthsOptions{}, argErrorf("bins must be > 0")
	}
	return lengthsOptions{
		input:         input,
		cutoff:        *cutoff,
		histogramPath: *histogram,
		bins:          *bins,
		tablePath:     *table,
		common:        common,
	}, nil
}

func runLengths(args []string) {
	fs := newFlagSet("lengths", "lengths FILE [--cutoff N]")
	opts, err := parseLengthsArgs(fs, args)
	if err != nil {
		exitParse(fs, err)
	}

	checkInput(opts.input)
	header := headerStyle(os.Stdout)
	err = writeStdout(func(w io.Writer) error {
		return reportLengths(w, header, opts)
	})
	if err != nil {
		fatalf("lengths failed: %v", err)
	}
}

// reportLengths reads the input once and reports on the full distribution
// and, when a cutoff is set, on the lengths at or above it.
func reportLengths(w io.Writer, header lipgloss.Style, opts lengthsOptions) error {
	var (
		lengths []int
		ids     []string
	)
	keepIDs := opts.tablePath != ""
	err := readFasta(opts.input, opts.common.progress, func(rec fastaRecord) error {
		lengths = append(lengths, rec.length())
		if keepIDs {
			ids = append(ids, fastaID(rec.definition))
		}
		return nil
	})
	if err != nil {
		return err
	}
	debugf("read %d records from %s", len(lengths), opts.input)

	all, err := computeStats(lengths)
	if err != nil {
		return fmt.Errorf("all entries: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", header.Render("All entries"), formatStats(all)); err != nil {
		return err
	}

	// Artifacts describe the full distribution and are written before the
	// cutoff section.
	if opts.histogramPath != "" {
		logf("Length histogram -> %s", opts.histogramPath)
		if err := writeHistogram(opts.histogramPath, lengths, opts.bins); err != nil {
			return err
		}
	}
	if opts.tablePath != "" {
		logf("Length table -> %s", opts.tablePath)
		if err := writeLengthTable(opts.tablePath, ids, lengths); err != nil {
			return err
		}
	}

	if opts.cutoff > 0 {
		above := make([]int, 0, len(lengths))
		for _, l := range lengths {
			if l >= opts.cutoff {
				above = append(above, l)
			}
		}
		title := fmt.Sprintf("Entries with length >= %d", opts.cutoff)
		stats, err := computeStats(above)
		if err != nil {
			return fmt.Errorf("%s: %w", title, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header.Render(title), formatStats(stats)); err != nil {
			return err
		}
	}

	return nil
}

// headerStyle colours section titles green when w is a terminal.
func headerStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("2"))
}
