package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/risk"
)

// Report is the assembled analysis result. Its JSON shape is the stable
// output contract: every top-level key is consumed independently by
// presentation code, so field names and nesting must not drift.
type Report struct {
	JointAngles      map[string][]*float64      `json:"joint_angles"`
	PostureMetrics   analytics.PostureMetrics   `json:"posture_metrics"`
	MotionMetrics    analytics.MotionMetrics    `json:"motion_metrics"`
	SymmetryAnalysis analytics.SymmetryAnalysis `json:"symmetry_analysis"`
	Anomalies        analytics.AnomalyResult    `json:"anomalies"`
	RiskAssessment   risk.Assessment            `json:"risk_assessment"`
	Summary          Summary                    `json:"summary"`
}

// Meta records where and when a report was produced. It never appears
// inside the Report object itself.
type Meta struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Source         string    `json:"source"`
	DetectedFrames int       `json:"detected_frames"`
}

// NewMeta stamps fresh production metadata.
func NewMeta(source string, detectedFrames int) Meta {
	return Meta{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Source:         source,
		DetectedFrames: detectedFrames,
	}
}

// Envelope pairs a report with its metadata for storage and file output.
type Envelope struct {
	Meta   Meta    `json:"meta"`
	Report *Report `json:"report"`
}
