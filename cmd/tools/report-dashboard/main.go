// Command report-dashboard renders a saved analysis report as a standalone
// HTML dashboard, and optionally as a directory of PNG series plots. Input
// is either the stored envelope or a bare report payload.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kinetic-data/motion.report/internal/report"
	"github.com/kinetic-data/motion.report/internal/visualize"
)

func main() {
	input := flag.String("input", "", "report JSON path, \"-\" for stdin (required)")
	output := flag.String("o", "report.html", "output HTML path")
	title := flag.String("title", "", "dashboard title")
	plotDir := flag.String("plots", "", "also write PNG series plots to this directory")
	joints := flag.String("joints", "", "comma-separated joint names to plot (default: all)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: report JSON path is required")
		flag.Usage()
		os.Exit(1)
	}

	rep, err := readReport(*input)
	if err != nil {
		log.Fatalf("reading report failed: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	if err := visualize.NewDashboard(*title).RenderHTML(f, rep); err != nil {
		f.Close()
		log.Fatalf("rendering dashboard failed: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *output, err)
	}
	log.Printf("wrote %s", *output)

	if *plotDir != "" {
		sp, err := visualize.NewSeriesPlotter(*plotDir)
		if err != nil {
			log.Fatalf("preparing plot dir failed: %v", err)
		}
		var selected []string
		if *joints != "" {
			selected = strings.Split(*joints, ",")
		}
		n, err := sp.PlotJointAngles(rep.JointAngles, selected)
		if err != nil {
			log.Fatalf("plotting joint angles failed: %v", err)
		}
		log.Printf("wrote %d joint plots to %s", n, sp.OutputDir())
	}
}

// readReport decodes a report from either the stored envelope shape or a
// bare report payload.
func readReport(path string) (*report.Report, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open report: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var env report.Envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Report != nil {
		return env.Report, nil
	}
	rep := &report.Report{}
	if err := json.Unmarshal(data, rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}
