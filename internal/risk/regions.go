package risk

import (
	"fmt"
	"math"

	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/pose"
)

// Biomechanical thresholds drawn from movement-screening literature.
const (
	// Knee (degrees / score points)
	SevereValgusAngle   = 160.0 // inward collapse well past neutral
	ModerateValgusAngle = 170.0 // knee starting to cave in
	KneeAsymmetrySevere = 70.0  // knees symmetry score below this is significant
	KneeAsymmetryMild   = 85.0
	RapidVelocity       = 0.4 // normalized units per frame; ACL loading risk

	// Spine (degrees / score points)
	SevereFlexionAngle   = 150.0 // excessive forward lean
	ModerateFlexionAngle = 165.0
	PoorPostureScore     = 60.0
	SuboptimalPosture    = 75.0
	SpineMisalignment    = 70.0

	// Shoulder (degrees / score points)
	ExtremeExtensionAngle = 170.0 // overhead range beyond safe extension
	ShoulderAsymmetry     = 75.0

	// Hip (degrees / score points)
	ExcessiveHipRange = 80.0 // spread between min and max hip angle
	HipAsymmetry      = 80.0

	// Ankle (counts / normalized units)
	FrequentInstabilityCount = 20   // anomalous transitions
	SomeInstabilityCount     = 10
	AnkleMobilityGap         = 0.05 // left/right range-of-motion difference
)

// pairScore reads one by-body-part symmetry score, treating an unmeasured
// pair as perfectly balanced so it contributes no penalty.
func pairScore(s analytics.SymmetryAnalysis, part string) float64 {
	if v, ok := s.ByBodyPart[part]; ok {
		return v
	}
	return 100
}

// analyzeKnee scores ACL and general knee injury risk from valgus collapse,
// left/right asymmetry and loading speed.
func (p *Predictor) analyzeKnee(m Metrics) Prediction {
	score := 0
	var signs []string

	for _, name := range []string{analytics.JointLeftKnee, analytics.JointRightKnee} {
		min, ok := analytics.SeriesMin(m.JointAngles[name])
		if !ok {
			continue
		}
		if min < SevereValgusAngle {
			score += 35
			signs = append(signs, "Severe knee valgus (inward collapse) detected")
		} else if min < ModerateValgusAngle {
			score += 20
			signs = append(signs, "Moderate knee valgus observed")
		}
	}

	kneeSym := pairScore(m.Symmetry, "knees")
	if kneeSym < KneeAsymmetrySevere {
		score += 25
		signs = append(signs, "Significant left-right knee asymmetry")
	} else if kneeSym < KneeAsymmetryMild {
		score += 10
		signs = append(signs, "Mild knee asymmetry")
	}

	if m.Motion.MaxVelocity > RapidVelocity {
		score += 15
		signs = append(signs, "Rapid acceleration/deceleration detected")
	}

	return Prediction{
		InjuryType:   "ACL Tear / Knee Injury",
		BodyPart:     "Knee",
		RiskScore:    clampScore(score),
		Severity:     p.severity(score),
		Confidence:   88,
		Description:  "Analysis of knee alignment, symmetry, and dynamic loading patterns",
		WarningSigns: signs,
		PreventionTips: []string{
			"Strengthen quadriceps and hamstrings",
			"Practice proper landing mechanics",
			"Focus on controlled deceleration",
			"Ensure knees track over toes during movements",
		},
	}
}

// analyzeBack scores lower back and disc injury risk from spinal flexion
// and postural control. Posture-derived penalties are skipped when no frame
// was posture-scorable: an unmeasured posture is not a poor one.
func (p *Predictor) analyzeBack(m Metrics) Prediction {
	score := 0
	var signs []string

	if avgSpine, ok := analytics.SeriesMean(m.JointAngles[analytics.JointSpine]); ok {
		if avgSpine < SevereFlexionAngle {
			score += 30
			signs = append(signs, "Excessive spinal flexion detected")
		} else if avgSpine < ModerateFlexionAngle {
			score += 15
			signs = append(signs, "Moderate forward lean observed")
		}
	}

	if m.Posture.FramesMeasured > 0 {
		if m.Posture.OverallPostureScore < PoorPostureScore {
			score += 35
			signs = append(signs, "Poor overall posture alignment")
		} else if m.Posture.OverallPostureScore < SuboptimalPosture {
			score += 20
			signs = append(signs, "Suboptimal posture detected")
		}

		if m.Posture.SpineAlignmentScore < SpineMisalignment {
			score += 25
			signs = append(signs, "Spine misalignment detected")
		}
	}

	return Prediction{
		InjuryType:   "Lower Back Strain / Disc Injury",
		BodyPart:     "Spine / Lower Back",
		RiskScore:    clampScore(score),
		Severity:     p.severity(score),
		Confidence:   92,
		Description:  "Evaluation of spinal alignment, flexion patterns, and postural control",
		WarningSigns: signs,
		PreventionTips: []string{
			"Strengthen core musculature",
			"Maintain neutral spine during movements",
			"Avoid excessive forward bending",
			"Practice proper lifting technique",
			"Incorporate spine mobility exercises",
		},
	}
}

// analyzeShoulder scores rotator cuff and impingement risk from extreme
// extension and left/right imbalance.
func (p *Predictor) analyzeShoulder(m Metrics) Prediction {
	score := 0
	var signs []string

	sides := []struct {
		label string
		joint string
	}{
		{"left", analytics.JointLeftShoulder},
		{"right", analytics.JointRightShoulder},
	}
	for _, s := range sides {
		max, ok := analytics.SeriesMax(m.JointAngles[s.joint])
		if ok && max > ExtremeExtensionAngle {
			score += 20
			signs = append(signs, fmt.Sprintf("Extreme %s shoulder extension detected", s.label))
		}
	}

	if pairScore(m.Symmetry, "shoulders") < ShoulderAsymmetry {
		score += 25
		signs = append(signs, "Shoulder imbalance detected")
	}

	return Prediction{
		InjuryType:   "Rotator Cuff Strain / Shoulder Impingement",
		BodyPart:     "Shoulder",
		RiskScore:    clampScore(score),
		Severity:     p.moderateSeverity(score),
		Confidence:   85,
		Description:  "Assessment of shoulder range, symmetry, and rotational patterns",
		WarningSigns: signs,
		PreventionTips: []string{
			"Strengthen rotator cuff muscles",
			"Avoid overhead movements if painful",
			"Maintain shoulder blade stability",
			"Balance pushing and pulling exercises",
		},
	}
}

// analyzeHip scores hip flexor strain and impingement risk from range of
// motion and left/right imbalance.
func (p *Predictor) analyzeHip(m Metrics) Prediction {
	score := 0
	var signs []string

	sides := []struct {
		label string
		joint string
	}{
		{"left", analytics.JointLeftHip},
		{"right", analytics.JointRightHip},
	}
	for _, s := range sides {
		spread, ok := analytics.SeriesRange(m.JointAngles[s.joint])
		if ok && spread > ExcessiveHipRange {
			score += 15
			signs = append(signs, fmt.Sprintf("Excessive %s hip range of motion", s.label))
		}
	}

	if pairScore(m.Symmetry, "hips") < HipAsymmetry {
		score += 20
		signs = append(signs, "Hip asymmetry detected")
	}

	return Prediction{
		InjuryType:   "Hip Flexor Strain / FAI",
		BodyPart:     "Hip",
		RiskScore:    clampScore(score),
		Severity:     p.moderateSeverity(score),
		Confidence:   82,
		Description:  "Analysis of hip mobility, symmetry, and loading patterns",
		WarningSigns: signs,
		PreventionTips: []string{
			"Stretch hip flexors regularly",
			"Strengthen glutes and hip stabilizers",
			"Improve hip mobility",
			"Avoid excessive hip flexion under load",
		},
	}
}

// analyzeAnkle scores sprain and instability risk from anomalous movement
// frequency and ankle mobility asymmetry.
func (p *Predictor) analyzeAnkle(m Metrics) Prediction {
	score := 0
	var signs []string

	if m.Anomalies.AnomalyCount > FrequentInstabilityCount {
		score += 30
		signs = append(signs, "Frequent unstable movements detected")
	} else if m.Anomalies.AnomalyCount > SomeInstabilityCount {
		score += 15
		signs = append(signs, "Some movement instability observed")
	}

	leftROM := m.Motion.RangeOfMotion[pose.LeftAnkle]
	rightROM := m.Motion.RangeOfMotion[pose.RightAnkle]
	if math.Abs(leftROM-rightROM) > AnkleMobilityGap {
		score += 15
		signs = append(signs, "Ankle mobility asymmetry")
	}

	return Prediction{
		InjuryType:   "Ankle Sprain / Instability",
		BodyPart:     "Ankle",
		RiskScore:    clampScore(score),
		Severity:     p.moderateSeverity(score),
		Confidence:   78,
		Description:  "Evaluation of ankle stability, landing patterns, and balance control",
		WarningSigns: signs,
		PreventionTips: []string{
			"Strengthen ankle stabilizers",
			"Practice balance exercises",
			"Ensure proper footwear",
			"Warm up ankles before activity",
		},
	}
}
