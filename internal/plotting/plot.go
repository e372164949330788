package plotting

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"torquelab/internal/telemetry"
)

// Series is one named line on a chart. Time and Torque are parallel columns;
// a point is plotted only where both samples are valid.
type Series struct {
	Name   string
	Time   []telemetry.Float
	Torque []telemetry.Float
}

// points filters the series down to rows where both coordinates are defined.
func (s Series) points() plotter.XYs {
	n := len(s.Time)
	if len(s.Torque) < n {
		n = len(s.Torque)
	}
	xys := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if !s.Time[i].Valid || !s.Torque[i].Valid {
			continue
		}
		xys = append(xys, plotter.XY{X: s.Time[i].Float64, Y: s.Torque[i].Float64})
	}
	return xys
}

// SaveRunPlot renders a single run's torque trace to path.
func SaveRunPlot(path, title string, series Series) error {
	p := newTorquePlot(title)

	line, err := plotter.NewLine(series.points())
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	line.Color = SeriesColor(0)
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("Torque 4 (N·m)", line)

	return save(p, path, 10*vg.Inch, 4*vg.Inch)
}

// SaveOverlayPlot renders one line per series, colored by slice position.
// The caller owns series ordering; colors follow it.
func SaveOverlayPlot(path, title string, series []Series) error {
	p := newTorquePlot(title)

	for i, s := range series {
		line, err := plotter.NewLine(s.points())
		if err != nil {
			return fmt.Errorf("build line %q: %w", s.Name, err)
		}
		line.Color = SeriesColor(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return save(p, path, 12*vg.Inch, 6*vg.Inch)
}

func newTorquePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Torque at gear 4 (N·m)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save plot %s: %w", filepath.Base(path), err)
	}
	return nil
}
