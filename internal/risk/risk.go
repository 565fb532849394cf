package risk

import "github.com/kinetic-data/motion.report/internal/analytics"

// Level grades a risk, both per finding and overall.
type Level string

const (
	// LevelHigh indicates risk factors that warrant professional review.
	LevelHigh Level = "High"
	// LevelModerate indicates risk factors worth correcting.
	LevelModerate Level = "Moderate"
	// LevelLow indicates minor observations.
	LevelLow Level = "Low"
	// LevelMinimal indicates no finding crossed the inclusion threshold.
	LevelMinimal Level = "Minimal"
)

// Presentation color codes paired with the overall level.
const (
	ColorDanger  = "danger"
	ColorWarning = "warning"
	ColorCaution = "caution"
	ColorSafe    = "safe"
)

// Metrics bundles the computed analytics a prediction runs on. TotalFrames
// is the raw sequence length, used only for confidence estimation.
type Metrics struct {
	JointAngles map[string][]*float64
	Posture     analytics.PostureMetrics
	Motion      analytics.MotionMetrics
	Symmetry    analytics.SymmetryAnalysis
	Anomalies   analytics.AnomalyResult
	TotalFrames int
}

// Prediction is one region's assessment. RiskScore is the accumulated
// penalty total clamped to 100; WarningSigns name the observations that
// contributed to it.
type Prediction struct {
	InjuryType     string   `json:"injury_type"`
	BodyPart       string   `json:"body_part"`
	RiskScore      int      `json:"risk_score"`
	Severity       Level    `json:"severity"`
	Confidence     int      `json:"confidence"`
	Description    string   `json:"description"`
	WarningSigns   []string `json:"warning_signs"`
	PreventionTips []string `json:"prevention_tips"`
}

// Assessment is the combined risk output. Predictions is sorted by score,
// highest first, and capped; TotalRisksDetected counts findings before the
// cap. AIConfidence reflects input data quality, not rule certainty.
type Assessment struct {
	OverallRiskLevel   Level        `json:"overall_risk_level"`
	OverallColor       string       `json:"overall_color"`
	Predictions        []Prediction `json:"predictions"`
	TotalRisksDetected int          `json:"total_risks_detected"`
	Recommendations    []string     `json:"recommendations"`
	AIConfidence       int          `json:"ai_confidence"`
}
