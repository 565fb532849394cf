package visualize

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kinetic-data/motion.report/internal/pose"
	"github.com/kinetic-data/motion.report/internal/report"
	"github.com/kinetic-data/motion.report/internal/risk"
)

// Dashboard renders a report as one self-contained HTML page.
type Dashboard struct {
	Title string
}

// NewDashboard returns a dashboard with the given page title. An empty
// title falls back to a generic one.
func NewDashboard(title string) *Dashboard {
	if title == "" {
		title = "Movement Analysis"
	}
	return &Dashboard{Title: title}
}

// RenderHTML writes the full dashboard page: score gauge, joint-angle
// lines, symmetry and range-of-motion bars, and the risk table.
func (d *Dashboard) RenderHTML(w io.Writer, rep *report.Report) error {
	if rep == nil {
		return fmt.Errorf("cannot render nil report")
	}

	page := components.NewPage()
	page.PageTitle = d.Title
	page.AddCharts(
		d.scoreGauge(rep),
		d.angleLines(rep),
		d.symmetryBar(rep),
		d.rangeOfMotionBar(rep),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}

	// components.Page owns the document skeleton, so the risk table is
	// spliced in just before the body closes.
	doc := strings.Replace(buf.String(), "</body>", riskSection(rep.RiskAssessment)+"\n</body>", 1)

	_, err := io.WriteString(w, doc)
	return err
}

func (d *Dashboard) scoreGauge(rep *report.Report) *charts.Gauge {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Overall Movement Score",
			Subtitle: fmt.Sprintf("grade %s over %d frames", rep.Summary.Grade, rep.Summary.TotalFrames),
		}),
	)
	gauge.AddSeries("score", []opts.GaugeData{
		{Name: "Score", Value: math.Round(rep.Summary.OverallScore*10) / 10},
	})
	return gauge
}

func (d *Dashboard) angleLines(rep *report.Report) *charts.Line {
	line := charts.NewLine()

	frames := 0
	for _, series := range rep.JointAngles {
		if len(series) > frames {
			frames = len(series)
		}
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Joint Angles", Subtitle: fmt.Sprintf("%d frames", frames)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	x := make([]int, frames)
	for i := range x {
		x[i] = i
	}
	line.SetXAxis(x)

	var names []string
	for name := range rep.JointAngles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		series := rep.JointAngles[name]
		data := make([]opts.LineData, len(series))
		for i, v := range series {
			if v == nil {
				// "-" is the echarts empty marker: the line breaks
				// instead of dropping to zero.
				data[i] = opts.LineData{Value: "-"}
				continue
			}
			data[i] = opts.LineData{Value: math.Round(*v*10) / 10}
		}
		line.AddSeries(name, data)
	}

	return line
}

func (d *Dashboard) symmetryBar(rep *report.Report) *charts.Bar {
	sym := rep.SymmetryAnalysis

	var parts []string
	for part := range sym.ByBodyPart {
		parts = append(parts, part)
	}
	sort.Strings(parts)

	y := make([]opts.BarData, len(parts))
	for i, part := range parts {
		y[i] = opts.BarData{Value: math.Round(sym.ByBodyPart[part]*10) / 10}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Bilateral Symmetry",
			Subtitle: fmt.Sprintf("overall %.1f/100", sym.OverallScore),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(parts).
		AddSeries("symmetry", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	return bar
}

func (d *Dashboard) rangeOfMotionBar(rep *report.Report) *charts.Bar {
	rom := rep.MotionMetrics.RangeOfMotion

	ids := make([]int, 0, len(rom))
	for id := range rom {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	x := make([]string, len(ids))
	y := make([]opts.BarData, len(ids))
	for i, id := range ids {
		x[i] = pose.Name(id)
		y[i] = opts.BarData{Value: math.Round(rom[id]*1000) / 1000}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Range of Motion",
			Subtitle: fmt.Sprintf("max velocity %.3f", rep.MotionMetrics.MaxVelocity),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("range", y)

	return bar
}

// severityColors maps risk banner colors to CSS values.
var severityColors = map[string]string{
	risk.ColorDanger:  "#c62828",
	risk.ColorWarning: "#ef6c00",
	risk.ColorCaution: "#f9a825",
	risk.ColorSafe:    "#2e7d32",
}

// riskSection builds the HTML fragment for the risk assessment table and
// recommendation list.
func riskSection(a risk.Assessment) string {
	headline := severityColors[a.OverallColor]
	if headline == "" {
		headline = "#333333"
	}

	var b strings.Builder
	b.WriteString(`<div style="max-width:1200px;margin:20px auto;font-family:sans-serif">`)
	fmt.Fprintf(&b, `<h2 style="color:%s">Injury Risk: %s</h2>`, headline, html.EscapeString(string(a.OverallRiskLevel)))
	fmt.Fprintf(&b, `<p>%d risk factors detected, analysis confidence %d%%</p>`, a.TotalRisksDetected, a.AIConfidence)

	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse">`)
	b.WriteString(`<tr><th>Body Part</th><th>Injury Type</th><th>Risk Score</th><th>Severity</th><th>Confidence</th><th>Warning Signs</th></tr>`)
	for _, p := range a.Predictions {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%d%%</td><td>%s</td></tr>`,
			html.EscapeString(p.BodyPart),
			html.EscapeString(p.InjuryType),
			p.RiskScore,
			html.EscapeString(string(p.Severity)),
			p.Confidence,
			html.EscapeString(strings.Join(p.WarningSigns, "; ")),
		)
	}
	b.WriteString(`</table>`)

	if len(a.Recommendations) > 0 {
		b.WriteString(`<h3>Recommendations</h3><ul>`)
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(rec))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div>`)

	return b.String()
}
