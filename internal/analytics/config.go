package analytics

import "github.com/kinetic-data/motion.report/internal/config"

// GradeScale maps a 0-100 score to a letter grade. A score at or above a
// cutoff earns that grade; below D is an F.
type GradeScale struct {
	A float64
	B float64
	C float64
	D float64
}

// Grade returns the letter grade for a score.
func (g GradeScale) Grade(score float64) string {
	switch {
	case score >= g.A:
		return "A"
	case score >= g.B:
		return "B"
	case score >= g.C:
		return "C"
	case score >= g.D:
		return "D"
	default:
		return "F"
	}
}

// Config holds the tunable parameters for the analytics stages. Scale
// factors assume the normalized [0,1] landmark coordinate contract.
type Config struct {
	SpineDeviationScale  float64    // posture: score points lost per unit of nose/shoulder-center x offset
	BalanceScale         float64    // posture: score points lost per unit of left/right y difference
	SymmetryScale        float64    // symmetry: score points lost per unit of pair y difference
	ImbalanceThreshold   float64    // symmetry: overall score below this flags an imbalance
	ZScoreThreshold      float64    // anomaly: z-scores above this are anomalous
	MinTransitions       int        // anomaly: minimum valid transitions for statistics
	HighSeverityFraction float64    // anomaly: fraction of transitions above which severity is High
	TopActiveJoints      int        // motion: size of the most-active ranking
	Grades               GradeScale // shared letter-grade breakpoints
}

// DefaultConfig returns analytics configuration loaded from the canonical
// tuning defaults file (config/tuning.defaults.json). Panics if the file
// cannot be found — intended for tests and binaries that have already
// validated config availability.
func DefaultConfig() Config {
	return ConfigFromTuning(config.MustLoadDefaultConfig())
}

// ConfigFromTuning builds an analytics Config from a loaded TuningConfig.
// Use this in production code where the TuningConfig is already loaded.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		SpineDeviationScale:  cfg.GetSpineDeviationScale(),
		BalanceScale:         cfg.GetBalanceScale(),
		SymmetryScale:        cfg.GetSymmetryScale(),
		ImbalanceThreshold:   cfg.GetImbalanceThreshold(),
		ZScoreThreshold:      cfg.GetZScoreThreshold(),
		MinTransitions:       cfg.GetAnomalyMinTransitions(),
		HighSeverityFraction: cfg.GetAnomalyHighFraction(),
		TopActiveJoints:      cfg.GetTopActiveJoints(),
		Grades: GradeScale{
			A: cfg.GetGradeACutoff(),
			B: cfg.GetGradeBCutoff(),
			C: cfg.GetGradeCCutoff(),
			D: cfg.GetGradeDCutoff(),
		},
	}
}
