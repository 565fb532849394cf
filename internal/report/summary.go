package report

import (
	"fmt"
	"math"

	"github.com/kinetic-data/motion.report/internal/risk"
)

// Insight bands on the 0-100 sub-scores.
const (
	poorPostureBand     = 50.0
	moderatePostureBand = 75.0
	significantAsymBand = 60.0
	slightAsymBand      = 80.0
)

// Summary is the blended movement report card.
type Summary struct {
	OverallScore    float64  `json:"overall_score"`
	Grade           string   `json:"grade"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	TotalFrames     int      `json:"total_frames"`
	DurationSeconds float64  `json:"duration_seconds"`
}

// MovementQuality scores movement smoothness from mean landmark velocity:
// slow, controlled motion scores high; fast, erratic motion low.
func MovementQuality(avgVelocity, scale float64) float64 {
	return math.Max(0, 100-avgVelocity*scale)
}

// BuildSummary blends the computed metrics into the overall score and
// grade, banded insights and recommendations, and the strength/weakness
// split across the three sub-score categories.
func BuildSummary(m risk.Metrics, cfg Config) Summary {
	s := Summary{
		Insights:        []string{},
		Recommendations: []string{},
		Strengths:       []string{},
		Weaknesses:      []string{},
		TotalFrames:     m.TotalFrames,
	}
	if cfg.SamplingFPS > 0 {
		s.DurationSeconds = float64(m.TotalFrames) / cfg.SamplingFPS
	}

	posture := m.Posture.OverallPostureScore
	symmetry := m.Symmetry.OverallScore
	quality := MovementQuality(m.Motion.AvgVelocity, cfg.MovementQualityScale)

	s.OverallScore = (posture + symmetry + quality) / 3
	s.Grade = cfg.Grades.Grade(s.OverallScore)

	switch {
	case posture < poorPostureBand:
		s.Insights = append(s.Insights, "Poor posture detected")
		s.Recommendations = append(s.Recommendations, "Focus on spine alignment and shoulder balance")
	case posture < moderatePostureBand:
		s.Insights = append(s.Insights, "Moderate posture quality")
		s.Recommendations = append(s.Recommendations, "Minor posture adjustments recommended")
	default:
		s.Insights = append(s.Insights, "Excellent posture")
	}

	switch {
	case symmetry < significantAsymBand:
		s.Insights = append(s.Insights, fmt.Sprintf("Significant asymmetry detected (%.1f/100)", symmetry))
		s.Recommendations = append(s.Recommendations, "Check for left-right imbalances in movement")
	case symmetry < slightAsymBand:
		s.Insights = append(s.Insights, fmt.Sprintf("Slight asymmetry (%.1f/100)", symmetry))
	default:
		s.Insights = append(s.Insights, fmt.Sprintf("Well-balanced movement (%.1f/100)", symmetry))
	}

	if n := m.Anomalies.AnomalyCount; n > 0 {
		s.Insights = append(s.Insights, fmt.Sprintf("%d jerky movements detected", n))
		s.Recommendations = append(s.Recommendations, "Work on smoother, more controlled movements")
	}

	categories := []struct {
		label string
		score float64
	}{
		{"Posture", posture},
		{"Symmetry", symmetry},
		{"Movement Quality", quality},
	}
	for _, c := range categories {
		if c.score >= cfg.StrengthCutoff {
			s.Strengths = append(s.Strengths, c.label)
		} else {
			s.Weaknesses = append(s.Weaknesses, c.label)
		}
	}

	return s
}
