package report

import (
	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/config"
)

// Config holds the summary generator's tunables.
type Config struct {
	MovementQualityScale float64              // score points lost per unit of mean velocity
	StrengthCutoff       float64              // sub-scores at or above this are strengths
	SamplingFPS          float64              // assumed input sampling rate for duration
	Grades               analytics.GradeScale // shared letter-grade breakpoints
}

// DefaultConfig returns report configuration loaded from the canonical
// tuning defaults file. Panics if the file cannot be found.
func DefaultConfig() Config {
	return ConfigFromTuning(config.MustLoadDefaultConfig())
}

// ConfigFromTuning builds a report Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		MovementQualityScale: cfg.GetMovementQualityScale(),
		StrengthCutoff:       cfg.GetStrengthCutoff(),
		SamplingFPS:          cfg.GetSamplingFPS(),
		Grades: analytics.GradeScale{
			A: cfg.GetGradeACutoff(),
			B: cfg.GetGradeBCutoff(),
			C: cfg.GetGradeCCutoff(),
			D: cfg.GetGradeDCutoff(),
		},
	}
}
