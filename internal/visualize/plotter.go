package visualize

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kinetic-data/motion.report/internal/security"
)

var (
	angleColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	signalColor  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	anomalyColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// SeriesPlotter writes per-series PNG charts into an output directory.
type SeriesPlotter struct {
	outputDir string
}

// NewSeriesPlotter creates the output directory if needed.
func NewSeriesPlotter(outputDir string) (*SeriesPlotter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &SeriesPlotter{outputDir: outputDir}, nil
}

// OutputDir returns the directory plots are written to.
func (sp *SeriesPlotter) OutputDir() string {
	return sp.outputDir
}

// PlotJointAngles renders one PNG per joint series, named angle_<joint>.png.
// An empty joints list selects every series in name order. Returns the
// number of plots written.
func (sp *SeriesPlotter) PlotJointAngles(angles map[string][]*float64, joints []string) (int, error) {
	if len(joints) == 0 {
		for name := range angles {
			joints = append(joints, name)
		}
		sort.Strings(joints)
	}

	count := 0
	for _, name := range joints {
		series, ok := angles[name]
		if !ok {
			continue
		}
		if err := sp.plotAngleSeries(name, series); err != nil {
			return count, fmt.Errorf("joint %s: %w", name, err)
		}
		count++
	}

	return count, nil
}

func (sp *SeriesPlotter) plotAngleSeries(name string, series []*float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Joint Angle - %s", name)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Angle (deg)"

	for _, run := range splitRuns(series) {
		line, err := plotter.NewLine(run)
		if err != nil {
			return err
		}
		line.Color = angleColor
		line.Width = vg.Points(1)
		p.Add(line)
	}

	// Joint names come from report JSON, so they are sanitized before
	// naming a file.
	file := filepath.Join(sp.outputDir, fmt.Sprintf("angle_%s.png", security.SanitizeFilename(name)))
	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save angle plot: %w", err)
	}

	return nil
}

// PlotDisplacementSignal renders the per-transition displacement signal to
// displacement_signal.png, marking flagged anomaly transitions.
func (sp *SeriesPlotter) PlotDisplacementSignal(signal []float64, anomalies []int) error {
	p := plot.New()
	p.Title.Text = "Displacement per Transition"
	p.X.Label.Text = "Transition"
	p.Y.Label.Text = "Total displacement"

	pts := make(plotter.XYs, len(signal))
	for i, v := range signal {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = signalColor
	line.Width = vg.Points(1)
	p.Add(line)

	var marks plotter.XYs
	for _, idx := range anomalies {
		if idx >= 0 && idx < len(signal) {
			marks = append(marks, plotter.XY{X: float64(idx), Y: signal[idx]})
		}
	}
	if len(marks) > 0 {
		scatter, err := plotter.NewScatter(marks)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = anomalyColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("anomaly", scatter)
		p.Legend.Top = true
	}

	file := filepath.Join(sp.outputDir, "displacement_signal.png")
	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save displacement plot: %w", err)
	}

	return nil
}

// splitRuns breaks a series into contiguous non-nil runs so missing frames
// render as gaps in the polyline rather than interpolated segments.
func splitRuns(series []*float64) []plotter.XYs {
	var runs []plotter.XYs
	var curr plotter.XYs
	for i, v := range series {
		if v == nil {
			if len(curr) > 0 {
				runs = append(runs, curr)
				curr = nil
			}
			continue
		}
		curr = append(curr, plotter.XY{X: float64(i), Y: *v})
	}
	if len(curr) > 0 {
		runs = append(runs, curr)
	}
	return runs
}
