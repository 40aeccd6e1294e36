package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const writerBufferSize = 1 << 20

// checkInput warns about a missing input but never stops the run; the open
// that follows reports the real failure.
func checkInput(path string) bool {
	if path == "-" {
		return true
	}
	if _, err := os.Stat(path); err != nil {
		warnf("The file '%s' doesn't seem to exist!", path)
		return false
	}
	return true
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// readFasta opens path and streams its records to onRecord.
func readFasta(path string, showProgress bool, onRecord func(fastaRecord) error) error {
	in, counter, err := openInputWithCounter(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	var bar *byteProgress
	var lastCount int64
	if showProgress {
		bar = newByteProgress(fileSize(path), "reading")
	}

	err = parseFasta(in, func(rec fastaRecord) error {
		updateByteProgress(bar, counter, &lastCount)
		return onRecord(rec)
	})
	if err != nil {
		return err
	}
	updateByteProgress(bar, counter, &lastCount)
	if bar != nil {
		bar.Finish()
	}
	return nil
}

// ignoreSIGPIPE makes writes to a closed stdout return EPIPE instead of
// killing the process, so writeStdout can end quietly.
func ignoreSIGPIPE() {
	signal.Ignore(syscall.SIGPIPE)
}

// writeStdout runs fn against a buffered stdout. A reader that goes away
// early (e.g. `| head`) is not treated as a failure once ignoreSIGPIPE has
// run.
func writeStdout(fn func(w io.Writer) error) error {
	return writeBuffered(os.Stdout, fn)
}

func writeBuffered(dst io.Writer, fn func(w io.Writer) error) error {
	w := bufio.NewWriterSize(dst, writerBufferSize)
	err := fn(w)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if isBrokenPipe(err) {
		return nil
	}
	return err
}

func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// argError is a usage problem. printed is set when the flag package has
// already reported it.
type argError struct {
	msg     string
	printed bool
}

func (e *argError) Error() string { return e.msg }

func argErrorf(format string, args ...any) error {
	return &argError{msg: fmt.Sprintf(format, args...)}
}

type commonFlags struct {
	logLevel string
	progress bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&c.progress, "progress", false, "Show progress bar on stderr")
	return c
}

func (c *commonFlags) apply() error {
	if err := setLogLevel(c.logLevel); err != nil {
		return &argError{msg: err.Error()}
	}
	return nil
}

func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  fastakit %s\n\nOptions:\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, &argError{msg: err.Error(), printed: true}
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func singleInput(positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return "", argErrorf("a FASTA file argument is required")
	case 1:
		return positional[0], nil
	default:
		return "", argErrorf("expected one FASTA file, got %d arguments", len(positional))
	}
}

// exitParse ends the process after a failed argument parse: usage problems
// exit 2, configuration errors such as a bad pattern exit 1.
func exitParse(fs *flag.FlagSet, err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	var ae *argError
	if !errors.As(err, &ae) {
		fatalf("%v", err)
	}
	if !ae.printed {
		fmt.Fprintf(fs.Output(), "%v\n", err)
		fs.Usage()
	}
	os.Exit(2)
}

func fatalf(format string, args ...any) {
	logger.Errorf(format, args...)
	os.Exit(1)
}
