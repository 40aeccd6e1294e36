package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writeHistogram renders the length distribution; the image format follows
// the file extension.
func writeHistogram(path string, lengths []int, bins int) error {
	if len(lengths) == 0 {
		return ErrEmptyInput
	}
	values := make(plotter.Values, len(lengths))
	for i, l := range lengths {
		values[i] = float64(l)
	}

	p := plot.New()
	p.Title.Text = "Sequence Length Distribution"
	p.X.Label.Text = "Length"
	p.Y.Label.Text = "Records"

	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	p.Add(hist)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create histogram dir: %w", err)
		}
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram: %w", err)
	}
	return nil
}
