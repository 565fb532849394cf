// Package main provides the motion-report command line analyzer.
// It reads a pose landmark sequence, runs the full biomechanical pipeline
// (kinematics, posture, motion, symmetry, anomaly, risk, summary) and writes
// the assembled report as JSON, optionally persisting it to a SQLite store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kinetic-data/motion.report/internal/config"
	"github.com/kinetic-data/motion.report/internal/pipeline"
	"github.com/kinetic-data/motion.report/internal/pose"
	"github.com/kinetic-data/motion.report/internal/report"
	"github.com/kinetic-data/motion.report/internal/store"
	"github.com/kinetic-data/motion.report/internal/version"
)

// Config holds configuration for one analysis run.
type Config struct {
	InputPath     string
	OutputPath    string
	ConfigPath    string
	DBPath        string
	Source        string
	MinVisibility float64
	Pretty        bool
	Verbose       bool
	ShowVersion   bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Println("motion-report", version.String())
		return
	}

	if cfg.InputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: input file is required")
		flag.Usage()
		os.Exit(1)
	}
	if cfg.InputPath != "-" {
		if _, err := os.Stat(cfg.InputPath); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: input file not found: %s\n", cfg.InputPath)
			os.Exit(1)
		}
	}

	if cfg.Verbose {
		pipeline.SetLogWriters(os.Stderr, os.Stderr, nil)
	}

	seq, err := readSequence(cfg.InputPath)
	if err != nil {
		log.Fatalf("Reading sequence failed: %v", err)
	}

	tuning := config.EmptyTuningConfig()
	if cfg.ConfigPath != "" {
		tuning, err = config.LoadTuningConfig(cfg.ConfigPath)
		if err != nil {
			log.Fatalf("Loading tuning config failed: %v", err)
		}
	}

	minVis := tuning.GetMinVisibility()
	if cfg.MinVisibility >= 0 {
		minVis = cfg.MinVisibility
	}
	if minVis > 0 {
		seq = pose.FilterLowVisibility(seq, minVis)
	}

	engine := pipeline.New(tuning)
	rep, err := engine.Analyze(context.Background(), seq)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	stats := pose.DetectionStats(seq)
	env := report.Envelope{
		Meta:   report.NewMeta(cfg.Source, stats.DetectedFrames),
		Report: rep,
	}

	if err := writeReport(cfg, env); err != nil {
		log.Fatalf("Writing report failed: %v", err)
	}

	if cfg.DBPath != "" {
		if err := persistReport(cfg.DBPath, env); err != nil {
			log.Fatalf("Persisting report failed: %v", err)
		}
	}

	// The report itself owns stdout when no output file is given.
	if cfg.OutputPath != "" {
		printSummary(env)
	}
}

func parseFlags() Config {
	config := Config{}

	flag.StringVar(&config.InputPath, "input", "", "Path to landmark sequence JSON, \"-\" for stdin (required)")
	flag.StringVar(&config.OutputPath, "output", "", "Path for the report JSON (default: stdout)")
	flag.StringVar(&config.ConfigPath, "config", "", "Tuning config JSON (default: built-in defaults)")
	flag.StringVar(&config.DBPath, "db", "", "SQLite database path (optional, for persistence)")
	flag.StringVar(&config.Source, "source", "", "Source label recorded in the report metadata")
	flag.Float64Var(&config.MinVisibility, "min-visibility", -1,
		"Landmark visibility cutoff in [0,1]; overrides the tuning value, 0 disables")
	flag.BoolVar(&config.Pretty, "pretty", false, "Indent the report JSON")
	flag.BoolVar(&config.Verbose, "v", false, "Verbose stage logging to stderr")
	flag.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Movement Analysis Report Generator\n\n")
		fmt.Fprintf(os.Stderr, "This tool runs a landmark sequence through the full analysis pipeline:\n")
		fmt.Fprintf(os.Stderr, "  1. Parse per-frame pose landmarks from JSON\n")
		fmt.Fprintf(os.Stderr, "  2. Drop low-visibility landmarks\n")
		fmt.Fprintf(os.Stderr, "  3. Compute joint angles, posture, motion, symmetry and anomalies\n")
		fmt.Fprintf(os.Stderr, "  4. Assess injury risk per body region\n")
		fmt.Fprintf(os.Stderr, "  5. Emit the report as JSON and optionally persist it\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -input session.json -output report.json -pretty\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input - -source webcam-01 < session.json > report.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input session.json -output report.json -db reports.db\n", os.Args[0])
	}

	flag.Parse()
	return config
}

func readSequence(path string) (pose.Sequence, error) {
	if path == "-" {
		return pose.ParseSequence(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return pose.ParseSequence(f)
}

func writeReport(cfg Config, env report.Envelope) error {
	var data []byte
	var err error
	if cfg.Pretty {
		data, err = json.MarshalIndent(env, "", "  ")
	} else {
		data, err = json.Marshal(env)
	}
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	data = append(data, '\n')

	if cfg.OutputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}
	return nil
}

func persistReport(dbPath string, env report.Envelope) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SaveReport(env)
}

func printSummary(env report.Envelope) {
	rep := env.Report
	sum := rep.Summary

	fmt.Println("\n========== Movement Analysis Summary ==========")
	fmt.Printf("Report: %s\n", env.Meta.ID)
	if env.Meta.Source != "" {
		fmt.Printf("Source: %s\n", env.Meta.Source)
	}
	fmt.Printf("Frames: %d total, %d detected\n", sum.TotalFrames, env.Meta.DetectedFrames)
	fmt.Printf("Duration: %.1f seconds\n", sum.DurationSeconds)
	fmt.Println()
	fmt.Printf("Overall score: %.1f (grade %s)\n", sum.OverallScore, sum.Grade)
	fmt.Printf("Symmetry: %.1f/100\n", rep.SymmetryAnalysis.OverallScore)
	fmt.Printf("Anomalies: %d flagged transitions (%s)\n",
		rep.Anomalies.AnomalyCount, rep.Anomalies.Severity)
	fmt.Println()
	fmt.Printf("Injury risk: %s (%d findings)\n",
		rep.RiskAssessment.OverallRiskLevel, rep.RiskAssessment.TotalRisksDetected)
	for _, p := range rep.RiskAssessment.Predictions {
		fmt.Printf("  %s: %s (score %d, confidence %d%%)\n",
			p.BodyPart, p.InjuryType, p.RiskScore, p.Confidence)
	}
	fmt.Println("===============================================")
}
