// Package pathplot renders DTW warping paths as images.
package pathplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ayusman/gesturemap/internal/dtw"
)

// Size is the width and height of rendered plots.
const Size = 5 * vg.Inch

// ErrEmptyPath is returned when there is nothing to draw.
var ErrEmptyPath = errors.New("pathplot: empty path")

// New builds a plot of path with the second sequence on the X axis and
// the first on the Y axis, so a perfectly matched pair traces the diagonal.
func New(title string, path dtw.Path) (*plot.Plot, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	pts := make(plotter.XYs, len(path))
	for i, step := range path {
		pts[i].X = float64(step.Col)
		pts[i].Y = float64(step.Row)
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("build path line: %w", err)
	}

	last := path[len(path)-1]
	diagonal, err := plotter.NewLine(plotter.XYs{{X: 1, Y: 1}, {X: float64(last.Col), Y: float64(last.Row)}})
	if err != nil {
		return nil, fmt.Errorf("build diagonal: %w", err)
	}
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "template index"
	p.Y.Label.Text = "sample index"
	p.Add(plotter.NewGrid(), diagonal, line, points)

	return p, nil
}

// Write renders the plot of path to w in the given image format ("png", "svg", ...).
func Write(w io.Writer, format, title string, path dtw.Path) error {
	p, err := New(title, path)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(Size, Size, format)
	if err != nil {
		return fmt.Errorf("create %s writer: %w", format, err)
	}

	_, err = wt.WriteTo(w)
	return err
}

// Save renders the plot of path to file; the extension selects the format.
func Save(file, title string, path dtw.Path) error {
	p, err := New(title, path)
	if err != nil {
		return err
	}

	if err := p.Save(Size, Size, file); err != nil {
		return fmt.Errorf("save plot %s: %w", file, err)
	}
	return nil
}

// SaveAll writes one PNG per alignment into dir, named by the given keys.
func SaveAll(dir string, paths map[string]dtw.Path) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}

	for name, path := range paths {
		if err := Save(filepath.Join(dir, name+".png"), name, path); err != nil {
			return err
		}
	}
	return nil
}
