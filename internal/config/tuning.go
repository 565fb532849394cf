package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for the analytics engine.
// Every scale factor, statistical threshold and report breakpoint the engine
// uses lives here so tests can probe boundary behavior exactly.
type TuningConfig struct {
	// Score scale factors (per the normalized [0,1] coordinate contract)
	SpineDeviationScale  *float64 `json:"spine_deviation_scale,omitempty"`
	BalanceScale         *float64 `json:"balance_scale,omitempty"`
	SymmetryScale        *float64 `json:"symmetry_scale,omitempty"`
	MovementQualityScale *float64 `json:"movement_quality_scale,omitempty"`

	// Symmetry flags
	ImbalanceThreshold *float64 `json:"imbalance_threshold,omitempty"`

	// Anomaly detection params
	ZScoreThreshold       *float64 `json:"zscore_threshold,omitempty"`
	AnomalyMinTransitions *int     `json:"anomaly_min_transitions,omitempty"`
	AnomalyHighFraction   *float64 `json:"anomaly_high_fraction,omitempty"`

	// Risk assessment breakpoints
	RiskInclusionThreshold *float64 `json:"risk_inclusion_threshold,omitempty"`
	RiskModerateScore      *float64 `json:"risk_moderate_score,omitempty"`
	RiskHighScore          *float64 `json:"risk_high_score,omitempty"`
	OverallModerateRisk    *float64 `json:"overall_moderate_risk,omitempty"`
	OverallHighRisk        *float64 `json:"overall_high_risk,omitempty"`
	MaxPredictions         *int     `json:"max_predictions,omitempty"`
	MaxRecommendations     *int     `json:"max_recommendations,omitempty"`

	// Summary params
	SamplingFPS     *float64 `json:"sampling_fps,omitempty"`
	StrengthCutoff  *float64 `json:"strength_cutoff,omitempty"`
	TopActiveJoints *int     `json:"top_active_joints,omitempty"`

	// Grade breakpoints (score >= cutoff earns the grade)
	GradeACutoff *float64 `json:"grade_a_cutoff,omitempty"`
	GradeBCutoff *float64 `json:"grade_b_cutoff,omitempty"`
	GradeCCutoff *float64 `json:"grade_c_cutoff,omitempty"`
	GradeDCutoff *float64 `json:"grade_d_cutoff,omitempty"`

	// Input hygiene
	MinVisibility *float64 `json:"min_visibility,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from cmd/tools/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	positives := map[string]*float64{
		"spine_deviation_scale":  c.SpineDeviationScale,
		"balance_scale":          c.BalanceScale,
		"symmetry_scale":         c.SymmetryScale,
		"movement_quality_scale": c.MovementQualityScale,
		"zscore_threshold":       c.ZScoreThreshold,
		"sampling_fps":           c.SamplingFPS,
	}
	for name, v := range positives {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", name, *v)
		}
	}

	scores := map[string]*float64{
		"imbalance_threshold":      c.ImbalanceThreshold,
		"risk_inclusion_threshold": c.RiskInclusionThreshold,
		"risk_moderate_score":      c.RiskModerateScore,
		"risk_high_score":          c.RiskHighScore,
		"overall_moderate_risk":    c.OverallModerateRisk,
		"overall_high_risk":        c.OverallHighRisk,
		"strength_cutoff":          c.StrengthCutoff,
		"grade_a_cutoff":           c.GradeACutoff,
		"grade_b_cutoff":           c.GradeBCutoff,
		"grade_c_cutoff":           c.GradeCCutoff,
		"grade_d_cutoff":           c.GradeDCutoff,
	}
	for name, v := range scores {
		if v != nil && (*v < 0 || *v > 100) {
			return fmt.Errorf("%s must be between 0 and 100, got %f", name, *v)
		}
	}

	if c.AnomalyHighFraction != nil {
		if *c.AnomalyHighFraction < 0 || *c.AnomalyHighFraction > 1 {
			return fmt.Errorf("anomaly_high_fraction must be between 0 and 1, got %f", *c.AnomalyHighFraction)
		}
	}
	if c.MinVisibility != nil {
		if *c.MinVisibility < 0 || *c.MinVisibility > 1 {
			return fmt.Errorf("min_visibility must be between 0 and 1, got %f", *c.MinVisibility)
		}
	}
	if c.AnomalyMinTransitions != nil && *c.AnomalyMinTransitions < 2 {
		return fmt.Errorf("anomaly_min_transitions must be at least 2, got %d", *c.AnomalyMinTransitions)
	}
	if c.MaxPredictions != nil && *c.MaxPredictions < 1 {
		return fmt.Errorf("max_predictions must be at least 1, got %d", *c.MaxPredictions)
	}
	if c.MaxRecommendations != nil && *c.MaxRecommendations < 1 {
		return fmt.Errorf("max_recommendations must be at least 1, got %d", *c.MaxRecommendations)
	}
	if c.TopActiveJoints != nil && *c.TopActiveJoints < 1 {
		return fmt.Errorf("top_active_joints must be at least 1, got %d", *c.TopActiveJoints)
	}

	// Grade cutoffs must stay ordered when overridden together.
	a, b := c.GetGradeACutoff(), c.GetGradeBCutoff()
	cc, d := c.GetGradeCCutoff(), c.GetGradeDCutoff()
	if !(a > b && b > cc && cc > d) {
		return fmt.Errorf("grade cutoffs must be strictly descending, got %v/%v/%v/%v", a, b, cc, d)
	}

	return nil
}

// GetSpineDeviationScale returns the spine_deviation_scale value or the default.
func (c *TuningConfig) GetSpineDeviationScale() float64 {
	if c.SpineDeviationScale == nil {
		return 10.0
	}
	return *c.SpineDeviationScale
}

// GetBalanceScale returns the balance_scale value or the default.
func (c *TuningConfig) GetBalanceScale() float64 {
	if c.BalanceScale == nil {
		return 20.0
	}
	return *c.BalanceScale
}

// GetSymmetryScale returns the symmetry_scale value or the default.
func (c *TuningConfig) GetSymmetryScale() float64 {
	if c.SymmetryScale == nil {
		return 10.0
	}
	return *c.SymmetryScale
}

// GetMovementQualityScale returns the movement_quality_scale value or the default.
func (c *TuningConfig) GetMovementQualityScale() float64 {
	if c.MovementQualityScale == nil {
		return 500.0
	}
	return *c.MovementQualityScale
}

// GetImbalanceThreshold returns the imbalance_threshold value or the default.
func (c *TuningConfig) GetImbalanceThreshold() float64 {
	if c.ImbalanceThreshold == nil {
		return 80.0
	}
	return *c.ImbalanceThreshold
}

// GetZScoreThreshold returns the zscore_threshold value or the default.
func (c *TuningConfig) GetZScoreThreshold() float64 {
	if c.ZScoreThreshold == nil {
		return 2.5
	}
	return *c.ZScoreThreshold
}

// GetAnomalyMinTransitions returns the anomaly_min_transitions value or the default.
func (c *TuningConfig) GetAnomalyMinTransitions() int {
	if c.AnomalyMinTransitions == nil {
		return 10
	}
	return *c.AnomalyMinTransitions
}

// GetAnomalyHighFraction returns the anomaly_high_fraction value or the default.
func (c *TuningConfig) GetAnomalyHighFraction() float64 {
	if c.AnomalyHighFraction == nil {
		return 0.1
	}
	return *c.AnomalyHighFraction
}

// GetRiskInclusionThreshold returns the risk_inclusion_threshold value or the default.
func (c *TuningConfig) GetRiskInclusionThreshold() float64 {
	if c.RiskInclusionThreshold == nil {
		return 30.0
	}
	return *c.RiskInclusionThreshold
}

// GetRiskModerateScore returns the risk_moderate_score value or the default.
func (c *TuningConfig) GetRiskModerateScore() float64 {
	if c.RiskModerateScore == nil {
		return 40.0
	}
	return *c.RiskModerateScore
}

// GetRiskHighScore returns the risk_high_score value or the default.
func (c *TuningConfig) GetRiskHighScore() float64 {
	if c.RiskHighScore == nil {
		return 60.0
	}
	return *c.RiskHighScore
}

// GetOverallModerateRisk returns the overall_moderate_risk value or the default.
func (c *TuningConfig) GetOverallModerateRisk() float64 {
	if c.OverallModerateRisk == nil {
		return 50.0
	}
	return *c.OverallModerateRisk
}

// GetOverallHighRisk returns the overall_high_risk value or the default.
func (c *TuningConfig) GetOverallHighRisk() float64 {
	if c.OverallHighRisk == nil {
		return 70.0
	}
	return *c.OverallHighRisk
}

// GetMaxPredictions returns the max_predictions value or the default.
func (c *TuningConfig) GetMaxPredictions() int {
	if c.MaxPredictions == nil {
		return 5
	}
	return *c.MaxPredictions
}

// GetMaxRecommendations returns the max_recommendations value or the default.
func (c *TuningConfig) GetMaxRecommendations() int {
	if c.MaxRecommendations == nil {
		return 6
	}
	return *c.MaxRecommendations
}

// GetSamplingFPS returns the sampling_fps value or the default.
func (c *TuningConfig) GetSamplingFPS() float64 {
	if c.SamplingFPS == nil {
		return 15.0
	}
	return *c.SamplingFPS
}

// GetStrengthCutoff returns the strength_cutoff value or the default.
func (c *TuningConfig) GetStrengthCutoff() float64 {
	if c.StrengthCutoff == nil {
		return 80.0
	}
	return *c.StrengthCutoff
}

// GetTopActiveJoints returns the top_active_joints value or the default.
func (c *TuningConfig) GetTopActiveJoints() int {
	if c.TopActiveJoints == nil {
		return 5
	}
	return *c.TopActiveJoints
}

// GetGradeACutoff returns the grade_a_cutoff value or the default.
func (c *TuningConfig) GetGradeACutoff() float64 {
	if c.GradeACutoff == nil {
		return 90.0
	}
	return *c.GradeACutoff
}

// GetGradeBCutoff returns the grade_b_cutoff value or the default.
func (c *TuningConfig) GetGradeBCutoff() float64 {
	if c.GradeBCutoff == nil {
		return 80.0
	}
	return *c.GradeBCutoff
}

// GetGradeCCutoff returns the grade_c_cutoff value or the default.
func (c *TuningConfig) GetGradeCCutoff() float64 {
	if c.GradeCCutoff == nil {
		return 70.0
	}
	return *c.GradeCCutoff
}

// GetGradeDCutoff returns the grade_d_cutoff value or the default.
func (c *TuningConfig) GetGradeDCutoff() float64 {
	if c.GradeDCutoff == nil {
		return 60.0
	}
	return *c.GradeDCutoff
}

// GetMinVisibility returns the min_visibility value or the default.
func (c *TuningConfig) GetMinVisibility() float64 {
	if c.MinVisibility == nil {
		return 0.5
	}
	return *c.MinVisibility
}
