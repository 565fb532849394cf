package risk

import (
	"sort"
	"strings"
)

// noRiskType is the placeholder injury type used when nothing crossed the
// inclusion threshold. The recommendation generator keys off it.
const noRiskType = "No Significant Risks Detected"

// Predictor performs rule-based assessment of the five body regions.
// The rules can be swapped for a learned model later without changing the
// Assessment shape.
type Predictor struct {
	cfg Config
}

// NewPredictor creates a predictor with the given cut points.
func NewPredictor(cfg Config) *Predictor {
	return &Predictor{cfg: cfg}
}

// Predict runs every region assessment, keeps the findings above the
// inclusion threshold and summarizes them into an overall level, ranked
// predictions and recommendations.
func (p *Predictor) Predict(m Metrics) Assessment {
	candidates := []Prediction{
		p.analyzeKnee(m),
		p.analyzeBack(m),
		p.analyzeShoulder(m),
		p.analyzeHip(m),
		p.analyzeAnkle(m),
	}

	var predictions []Prediction
	for _, c := range candidates {
		if float64(c.RiskScore) > p.cfg.InclusionThreshold {
			predictions = append(predictions, c)
		}
	}
	// Stable: equal scores keep the knee/back/shoulder/hip/ankle order.
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].RiskScore > predictions[j].RiskScore
	})

	out := Assessment{}
	if len(predictions) > 0 {
		top := float64(predictions[0].RiskScore)
		switch {
		case top >= p.cfg.OverallHigh:
			out.OverallRiskLevel, out.OverallColor = LevelHigh, ColorDanger
		case top >= p.cfg.OverallModerate:
			out.OverallRiskLevel, out.OverallColor = LevelModerate, ColorWarning
		default:
			out.OverallRiskLevel, out.OverallColor = LevelLow, ColorCaution
		}
	} else {
		out.OverallRiskLevel, out.OverallColor = LevelMinimal, ColorSafe
		predictions = append(predictions, noRiskPrediction())
	}

	out.TotalRisksDetected = len(predictions)
	out.Recommendations = p.recommendations(predictions)
	if len(predictions) > p.cfg.MaxPredictions {
		predictions = predictions[:p.cfg.MaxPredictions]
	}
	out.Predictions = predictions
	out.AIConfidence = p.confidence(m)
	return out
}

// severity grades a penalty total on the full High/Moderate/Low ladder.
func (p *Predictor) severity(score int) Level {
	switch {
	case float64(score) >= p.cfg.HighScore:
		return LevelHigh
	case float64(score) >= p.cfg.ModerateScore:
		return LevelModerate
	default:
		return LevelLow
	}
}

// moderateSeverity grades regions whose rules cannot justify a High call
// on their own (shoulder, hip, ankle).
func (p *Predictor) moderateSeverity(score int) Level {
	if float64(score) >= p.cfg.ModerateScore {
		return LevelModerate
	}
	return LevelLow
}

// clampScore caps an accumulated penalty total at 100.
func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

// noRiskPrediction is the placeholder emitted when no region crossed the
// inclusion threshold, so the predictions list is never empty.
func noRiskPrediction() Prediction {
	return Prediction{
		InjuryType:   noRiskType,
		BodyPart:     "Overall",
		RiskScore:    10,
		Severity:     LevelLow,
		Confidence:   85,
		Description:  "Movement patterns appear biomechanically sound",
		WarningSigns: []string{},
		PreventionTips: []string{
			"Maintain current form",
			"Continue regular stretching",
		},
	}
}

// recommendations builds the prevention plan from the ranked findings:
// urgent lines first when anything scored High, then lines targeted at the
// top findings' body parts, then general guidance, capped.
func (p *Predictor) recommendations(predictions []Prediction) []string {
	if len(predictions) == 0 || predictions[0].InjuryType == noRiskType {
		return []string{
			"Continue current movement patterns",
			"Maintain regular strength and flexibility training",
			"Monitor for any changes in form or discomfort",
		}
	}

	var recs []string

	urgent := false
	for _, pr := range predictions {
		if float64(pr.RiskScore) >= p.cfg.HighScore {
			urgent = true
			break
		}
	}
	if urgent {
		recs = append(recs,
			"URGENT: Consult a healthcare professional before continuing high-intensity activities",
			"Consider temporary activity modification until risk factors are addressed")
	}

	top := predictions
	if len(top) > 3 {
		top = top[:3]
	}
	var knee, spine, shoulder bool
	for _, pr := range top {
		knee = knee || strings.Contains(pr.BodyPart, "Knee")
		spine = spine || strings.Contains(pr.BodyPart, "Spine") || strings.Contains(pr.BodyPart, "Lower Back")
		shoulder = shoulder || strings.Contains(pr.BodyPart, "Shoulder")
	}
	if knee {
		recs = append(recs, "Implement neuromuscular training for knee stability")
	}
	if spine {
		recs = append(recs, "Focus on core strengthening and spine mobility exercises")
	}
	if shoulder {
		recs = append(recs, "Address shoulder imbalances with targeted rotator cuff work")
	}

	recs = append(recs,
		"Work with a qualified movement specialist or physical therapist",
		"Gradually increase training intensity (10% rule)",
		"Ensure adequate rest and recovery between sessions",
		"Address movement compensations before they become habits")

	if len(recs) > p.cfg.MaxRecommendations {
		recs = recs[:p.cfg.MaxRecommendations]
	}
	return recs
}

// confidence estimates prediction confidence from input data quality: more
// frames and usable symmetry data raise it, capped below certainty.
func (p *Predictor) confidence(m Metrics) int {
	confidence := 75

	switch {
	case m.TotalFrames > 200:
		confidence += 15
	case m.TotalFrames > 100:
		confidence += 10
	case m.TotalFrames > 50:
		confidence += 5
	}

	if m.Symmetry.OverallScore > 0 {
		confidence += 5
	}

	if confidence > 95 {
		confidence = 95
	}
	return confidence
}
