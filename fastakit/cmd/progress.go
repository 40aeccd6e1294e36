package cmd

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress wraps schollz/progressbar with an opt-out flag (reportEvery == 0).
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(total, reportEvery int, desc string) *progress {
	if reportEvery == 0 {
		return &progress{bar: nil}
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionThrottle(250 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
	}

	var bar *progressbar.ProgressBar
	if total > 0 {
		opts = append(opts,
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetPredictTime(true),
		)
		bar = progressbar.NewOptions(total, opts...)
	} else {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)
		bar = progressbar.NewOptions(-1, opts...)
	}

	return &progress{bar: bar}
}

func (p *progress) increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// byteProgress tracks how far into the input file the reader is. The count
// runs ahead of parsing by up to one scanner buffer, so it is approximate.
type byteProgress struct {
	bar *progressbar.ProgressBar
}

func newByteProgress(total int64, desc string) *byteProgress {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(250 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
	}
	if total <= 0 {
		total = -1
		opts = append(opts, progressbar.OptionSpinnerType(14))
	}
	return &byteProgress{bar: progressbar.NewOptions64(total, opts...)}
}

func (b *byteProgress) Finish() {
	_ = b.bar.Finish()
}

type byteCounter struct {
	r     io.Reader
	count int64
}

func (c *byteCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

func updateByteProgress(bar *byteProgress, counter *byteCounter, last *int64) {
	if bar == nil || counter == nil {
		return
	}
	if delta := counter.count - *last; delta > 0 {
		_ = bar.bar.Add64(delta)
		*last = counter.count
	}
}

type readCloser struct {
	reader io.Reader
	close  func() error
}

func (r readCloser) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

func (r readCloser) Close() error {
	return r.close()
}

func openInputWithCounter(path string) (io.ReadCloser, *byteCounter, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, nil, err
	}
	counter := &byteCounter{r: in}
	return readCloser{reader: counter, close: in.Close}, counter, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return -1
	}
	return info.Size()
}
