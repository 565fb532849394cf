package risk

import "github.com/kinetic-data/motion.report/internal/config"

// Config holds the tunable cut points of the assessment. The biomechanical
// thresholds themselves (valgus angles, flexion limits and so on) are fixed
// constants in this package; Config only shapes how accumulated scores are
// graded and reported.
type Config struct {
	InclusionThreshold float64 // findings scoring above this enter the report
	ModerateScore      float64 // per-region severity cutoffs on the penalty total
	HighScore          float64
	OverallModerate    float64 // overall level cutoffs on the top finding's score
	OverallHigh        float64
	MaxPredictions     int // findings kept after ranking
	MaxRecommendations int // recommendation lines kept
}

// DefaultConfig returns risk configuration loaded from the canonical tuning
// defaults file. Panics if the file cannot be found.
func DefaultConfig() Config {
	return ConfigFromTuning(config.MustLoadDefaultConfig())
}

// ConfigFromTuning builds a risk Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		InclusionThreshold: cfg.GetRiskInclusionThreshold(),
		ModerateScore:      cfg.GetRiskModerateScore(),
		HighScore:          cfg.GetRiskHighScore(),
		OverallModerate:    cfg.GetOverallModerateRisk(),
		OverallHigh:        cfg.GetOverallHighRisk(),
		MaxPredictions:     cfg.GetMaxPredictions(),
		MaxRecommendations: cfg.GetMaxRecommendations(),
	}
}
