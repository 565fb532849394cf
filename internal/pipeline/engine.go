package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/config"
	"github.com/kinetic-data/motion.report/internal/pose"
	"github.com/kinetic-data/motion.report/internal/report"
	"github.com/kinetic-data/motion.report/internal/risk"
)

// Engine runs the full analysis pass. It is stateless between calls and
// safe for concurrent use.
type Engine struct {
	analyticsCfg analytics.Config
	reportCfg    report.Config
	predictor    *risk.Predictor
}

// New builds an engine from a loaded tuning configuration.
func New(cfg *config.TuningConfig) *Engine {
	return &Engine{
		analyticsCfg: analytics.ConfigFromTuning(cfg),
		reportCfg:    report.ConfigFromTuning(cfg),
		predictor:    risk.NewPredictor(risk.ConfigFromTuning(cfg)),
	}
}

// NewDefault builds an engine from the shipped tuning defaults. Panics if
// the defaults file cannot be found.
func NewDefault() *Engine {
	return New(config.MustLoadDefaultConfig())
}

// Analyze transforms a landmark sequence into an assembled report. The five
// sequence stages run concurrently into disjoint slots; risk and summary
// run after the join. Cancellation is honored at the entry and join
// boundaries; an empty sequence produces an empty report, not an error.
func (e *Engine) Analyze(ctx context.Context, seq pose.Sequence) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	stats := pose.DetectionStats(seq)
	opsf("analyze: %d frames (%d detected)", stats.TotalFrames, stats.DetectedFrames)
	if traceLogger != nil {
		for _, f := range seq {
			tracef("frame %d: detected=%t landmarks=%d", f.Index, f.Detected, len(f.Landmarks))
		}
	}

	var (
		angles    map[string][]*float64
		posture   analytics.PostureMetrics
		motion    analytics.MotionMetrics
		symmetry  analytics.SymmetryAnalysis
		anomalies analytics.AnomalyResult
	)

	var wg sync.WaitGroup
	completed := make([]bool, 5)
	run := func(slot int, name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					opsf("stage %s panicked, degrading to empty result: %v", name, r)
				}
			}()
			t0 := time.Now()
			fn()
			completed[slot] = true
			diagf("stage %s done in %s", name, time.Since(t0))
		}()
	}

	run(0, "kinematics", func() { angles = analytics.ComputeJointAngles(seq) })
	run(1, "posture", func() { posture = analytics.ComputePostureMetrics(seq, e.analyticsCfg) })
	run(2, "motion", func() { motion = analytics.ComputeMotionMetrics(seq, e.analyticsCfg) })
	run(3, "symmetry", func() { symmetry = analytics.ComputeSymmetry(seq, e.analyticsCfg) })
	run(4, "anomaly", func() { anomalies = analytics.DetectAnomalies(seq, e.analyticsCfg) })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A degraded stage falls back to its empty result computed over no
	// frames, keeping the output shape intact.
	if !completed[0] {
		angles = emptyAngles(len(seq))
	}
	if !completed[1] {
		posture = analytics.ComputePostureMetrics(nil, e.analyticsCfg)
	}
	if !completed[2] {
		motion = analytics.ComputeMotionMetrics(nil, e.analyticsCfg)
	}
	if !completed[3] {
		symmetry = analytics.ComputeSymmetry(nil, e.analyticsCfg)
	}
	if !completed[4] {
		anomalies = analytics.DetectAnomalies(nil, e.analyticsCfg)
	}

	m := risk.Metrics{
		JointAngles: angles,
		Posture:     posture,
		Motion:      motion,
		Symmetry:    symmetry,
		Anomalies:   anomalies,
		TotalFrames: len(seq),
	}
	assessment := e.predictor.Predict(m)
	summary := report.BuildSummary(m, e.reportCfg)

	rep := &report.Report{
		JointAngles:      angles,
		PostureMetrics:   posture,
		MotionMetrics:    motion,
		SymmetryAnalysis: symmetry,
		Anomalies:        anomalies,
		RiskAssessment:   assessment,
		Summary:          summary,
	}
	opsf("analyze: report ready in %s (grade %s, risk %s)",
		time.Since(start), summary.Grade, assessment.OverallRiskLevel)
	return rep, nil
}

// emptyAngles is the kinematics fallback shape: every joint series present,
// every entry nil.
func emptyAngles(frames int) map[string][]*float64 {
	names := analytics.JointNames()
	angles := make(map[string][]*float64, len(names))
	for _, name := range names {
		angles[name] = make([]*float64, frames)
	}
	return angles
}
