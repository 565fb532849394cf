package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/pose"
)

func TestAnalyzeKnee(t *testing.T) {
	t.Parallel()
	p := testPredictor()

	t.Run("clean pose scores zero", func(t *testing.T) {
		t.Parallel()
		pr := p.analyzeKnee(cleanMetrics())
		assert.Equal(t, 0, pr.RiskScore)
		assert.Equal(t, LevelLow, pr.Severity)
		assert.Empty(t, pr.WarningSigns)
		assert.Equal(t, 88, pr.Confidence)
	})

	t.Run("severe asymmetry and speed stack up", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointLeftKnee] = series(165, 178)
		m.Symmetry.ByBodyPart["knees"] = 60
		m.Motion.MaxVelocity = 0.6

		pr := p.analyzeKnee(m)
		assert.Equal(t, 60, pr.RiskScore) // 20 + 25 + 15
		assert.Equal(t, LevelHigh, pr.Severity)
		assert.Equal(t, []string{
			"Moderate knee valgus observed",
			"Significant left-right knee asymmetry",
			"Rapid acceleration/deceleration detected",
		}, pr.WarningSigns)
	})

	t.Run("score clamps at 100", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointLeftKnee] = series(140)
		m.JointAngles[analytics.JointRightKnee] = series(145)
		m.Symmetry.ByBodyPart["knees"] = 50
		m.Motion.MaxVelocity = 0.9

		pr := p.analyzeKnee(m) // 35 + 35 + 25 + 15 = 110
		assert.Equal(t, 100, pr.RiskScore)
	})

	t.Run("empty angle series contributes nothing", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointLeftKnee] = series()
		m.JointAngles[analytics.JointRightKnee] = []*float64{nil, nil}

		pr := p.analyzeKnee(m)
		assert.Equal(t, 0, pr.RiskScore)
	})

	t.Run("unmeasured symmetry pair is no penalty", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		delete(m.Symmetry.ByBodyPart, "knees")

		pr := p.analyzeKnee(m)
		assert.Equal(t, 0, pr.RiskScore)
	})
}

func TestAnalyzeBack(t *testing.T) {
	t.Parallel()
	p := testPredictor()

	t.Run("flexion and posture penalties stack", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointSpine] = series(160, 162)
		m.Posture.OverallPostureScore = 70
		m.Posture.SpineAlignmentScore = 65

		pr := p.analyzeBack(m)
		assert.Equal(t, 60, pr.RiskScore) // 15 + 20 + 25
		assert.Equal(t, LevelHigh, pr.Severity)
		assert.Equal(t, "Spine / Lower Back", pr.BodyPart)
		require.Len(t, pr.WarningSigns, 3)
	})

	t.Run("unmeasured posture is not poor posture", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Posture = analytics.PostureMetrics{PostureGrade: "F"} // zero scores, no frames

		pr := p.analyzeBack(m)
		assert.Equal(t, 0, pr.RiskScore)
		assert.Empty(t, pr.WarningSigns)
	})

	t.Run("measured zero posture is the worst case", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Posture = analytics.PostureMetrics{PostureGrade: "F", FramesMeasured: 5}

		pr := p.analyzeBack(m)
		assert.Equal(t, 60, pr.RiskScore) // 35 + 25
		assert.Equal(t, LevelHigh, pr.Severity)
	})
}

func TestAnalyzeShoulder(t *testing.T) {
	t.Parallel()
	p := testPredictor()

	t.Run("extreme extension names the side", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointRightShoulder] = series(120, 175)

		pr := p.analyzeShoulder(m)
		assert.Equal(t, 20, pr.RiskScore)
		assert.Equal(t, []string{"Extreme right shoulder extension detected"}, pr.WarningSigns)
	})

	t.Run("severity never exceeds Moderate", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointLeftShoulder] = series(176)
		m.JointAngles[analytics.JointRightShoulder] = series(178)
		m.Symmetry.ByBodyPart["shoulders"] = 70

		pr := p.analyzeShoulder(m)
		assert.Equal(t, 65, pr.RiskScore) // 20 + 20 + 25
		assert.Equal(t, LevelModerate, pr.Severity)
	})
}

func TestAnalyzeHip(t *testing.T) {
	t.Parallel()
	p := testPredictor()

	t.Run("excessive range per side plus asymmetry", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.JointAngles[analytics.JointLeftHip] = series(95, 180)  // spread 85
		m.JointAngles[analytics.JointRightHip] = series(90, 175) // spread 85
		m.Symmetry.ByBodyPart["hips"] = 75

		pr := p.analyzeHip(m)
		assert.Equal(t, 50, pr.RiskScore) // 15 + 15 + 20
		assert.Equal(t, LevelModerate, pr.Severity)
		assert.Equal(t, []string{
			"Excessive left hip range of motion",
			"Excessive right hip range of motion",
			"Hip asymmetry detected",
		}, pr.WarningSigns)
	})

	t.Run("normal range scores Low", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Symmetry.ByBodyPart["hips"] = 75

		pr := p.analyzeHip(m)
		assert.Equal(t, 20, pr.RiskScore)
		assert.Equal(t, LevelLow, pr.Severity)
	})
}

func TestAnalyzeAnkle(t *testing.T) {
	t.Parallel()
	p := testPredictor()

	t.Run("frequent instability and mobility gap", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Anomalies.AnomalyCount = 25
		m.Motion.RangeOfMotion[pose.LeftAnkle] = 0.30
		m.Motion.RangeOfMotion[pose.RightAnkle] = 0.10

		pr := p.analyzeAnkle(m)
		assert.Equal(t, 45, pr.RiskScore) // 30 + 15
		assert.Equal(t, LevelModerate, pr.Severity)
		assert.Equal(t, []string{
			"Frequent unstable movements detected",
			"Ankle mobility asymmetry",
		}, pr.WarningSigns)
	})

	t.Run("count of exactly twenty is the lighter tier", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Anomalies.AnomalyCount = 20

		pr := p.analyzeAnkle(m)
		assert.Equal(t, 15, pr.RiskScore)
		assert.Equal(t, []string{"Some movement instability observed"}, pr.WarningSigns)
	})

	t.Run("missing ankle entries read as zero range", func(t *testing.T) {
		t.Parallel()
		m := cleanMetrics()
		m.Motion.RangeOfMotion = map[int]float64{}

		pr := p.analyzeAnkle(m)
		assert.Equal(t, 0, pr.RiskScore)
	})
}
