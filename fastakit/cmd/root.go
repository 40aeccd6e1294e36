package cmd

import (
	"fmt"
	"os"
)

func Execute(args []string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	ignoreSIGPIPE()

	switch args[0] {
	case "lengths":
		runLengths(args[1:])
	case "filter":
		runFilter(args[1:])
	case "clean":
		runClean(args[1:])
	case "sort":
		runSort(args[1:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "FastaKit - FASTA summary and filtering tools")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  fastakit <command> FILE [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  lengths    Summary statistics (sum, L50, N50, count, mean, median)")
	fmt.Fprintln(os.Stderr, "  filter     Print entries passing length/definition line filters")
	fmt.Fprintln(os.Stderr, "  clean      Rewrite entries, optionally wrapped to N columns")
	fmt.Fprintln(os.Stderr, "  sort       Print entries longest first")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'fastakit <command> -h' for command-specific options.")
}
