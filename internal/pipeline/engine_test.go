package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetic-data/motion.report/internal/analytics"
	"github.com/kinetic-data/motion.report/internal/config"
	"github.com/kinetic-data/motion.report/internal/pose"
	"github.com/kinetic-data/motion.report/internal/risk"
)

func TestMain(m *testing.M) {
	// Keep test output free of pipeline lifecycle logs.
	SetLogWriters(nil, nil, nil)
	m.Run()
}

func testEngine() *Engine {
	return New(config.EmptyTuningConfig())
}

func neutralPose() map[int]pose.Landmark {
	lm := func(x, y float64) pose.Landmark {
		return pose.Landmark{X: x, Y: y, Visibility: 1}
	}
	return map[int]pose.Landmark{
		pose.Nose:          lm(0.50, 0.20),
		pose.LeftShoulder:  lm(0.42, 0.30),
		pose.RightShoulder: lm(0.58, 0.30),
		pose.LeftElbow:     lm(0.40, 0.42),
		pose.RightElbow:    lm(0.60, 0.42),
		pose.LeftWrist:     lm(0.39, 0.54),
		pose.RightWrist:    lm(0.61, 0.54),
		pose.LeftHip:       lm(0.44, 0.55),
		pose.RightHip:      lm(0.56, 0.55),
		pose.LeftKnee:      lm(0.44, 0.72),
		pose.RightKnee:     lm(0.56, 0.72),
		pose.LeftAnkle:     lm(0.44, 0.89),
		pose.RightAnkle:    lm(0.56, 0.89),
	}
}

func neutralSequence(n int) pose.Sequence {
	seq := make(pose.Sequence, n)
	for i := range seq {
		seq[i] = pose.Frame{Index: i, Detected: true, Landmarks: neutralPose()}
	}
	return seq
}

// swayingSequence adds steady nose movement so motion metrics are nonzero.
func swayingSequence(n int) pose.Sequence {
	seq := neutralSequence(n)
	for i := range seq {
		lms := seq[i].Landmarks
		nose := lms[pose.Nose]
		nose.X += 0.01 * float64(i)
		lms[pose.Nose] = nose
	}
	return seq
}

func TestAnalyze_NeutralSequence(t *testing.T) {
	t.Parallel()

	rep, err := testEngine().Analyze(context.Background(), neutralSequence(60))
	require.NoError(t, err)
	require.NotNil(t, rep)

	require.Len(t, rep.JointAngles, 10)
	for name, series := range rep.JointAngles {
		assert.Len(t, series, 60, "series %s", name)
	}
	require.NotNil(t, rep.JointAngles["left_knee"][0])
	assert.InDelta(t, 180, *rep.JointAngles["left_knee"][0], 1)

	assert.Equal(t, "A", rep.PostureMetrics.PostureGrade)
	assert.InDelta(t, 100, rep.PostureMetrics.OverallPostureScore, 1e-9)

	assert.Len(t, rep.MotionMetrics.AverageVelocities, pose.NumLandmarks)
	assert.Len(t, rep.MotionMetrics.RangeOfMotion, pose.NumLandmarks)
	assert.Zero(t, rep.MotionMetrics.MaxVelocity)
	assert.Empty(t, rep.MotionMetrics.MostActiveJoints)

	assert.Equal(t, 100.0, rep.SymmetryAnalysis.OverallScore)
	assert.False(t, rep.SymmetryAnalysis.ImbalanceDetected)

	assert.False(t, rep.Anomalies.InsufficientData)
	assert.Zero(t, rep.Anomalies.AnomalyCount)
	assert.Equal(t, analytics.SeverityNone, rep.Anomalies.Severity)

	assert.Equal(t, risk.LevelMinimal, rep.RiskAssessment.OverallRiskLevel)
	require.Len(t, rep.RiskAssessment.Predictions, 1)
	assert.Equal(t, "No Significant Risks Detected", rep.RiskAssessment.Predictions[0].InjuryType)

	assert.Equal(t, "A", rep.Summary.Grade)
	assert.Equal(t, 60, rep.Summary.TotalFrames)
	assert.Equal(t, 4.0, rep.Summary.DurationSeconds)
	assert.ElementsMatch(t, []string{"Posture", "Symmetry", "Movement Quality"}, rep.Summary.Strengths)
}

func TestAnalyze_EmptySequence(t *testing.T) {
	t.Parallel()

	rep, err := testEngine().Analyze(context.Background(), pose.Sequence{})
	require.NoError(t, err)
	require.NotNil(t, rep)

	require.Len(t, rep.JointAngles, 10)
	for name, series := range rep.JointAngles {
		assert.Empty(t, series, "series %s", name)
	}
	assert.Equal(t, "F", rep.PostureMetrics.PostureGrade)
	assert.Len(t, rep.MotionMetrics.AverageVelocities, pose.NumLandmarks)
	assert.True(t, rep.Anomalies.InsufficientData)
	assert.Equal(t, risk.LevelMinimal, rep.RiskAssessment.OverallRiskLevel)
	assert.Zero(t, rep.Summary.TotalFrames)
	assert.Zero(t, rep.Summary.DurationSeconds)
}

func TestAnalyze_AllUndetected(t *testing.T) {
	t.Parallel()

	seq := make(pose.Sequence, 40)
	for i := range seq {
		seq[i] = pose.Frame{Index: i, Detected: false, Landmarks: map[int]pose.Landmark{}}
	}

	rep, err := testEngine().Analyze(context.Background(), seq)
	require.NoError(t, err)

	// No detection is absent evidence, not detected pathology.
	assert.Equal(t, risk.LevelMinimal, rep.RiskAssessment.OverallRiskLevel)
	require.Len(t, rep.RiskAssessment.Predictions, 1)
	assert.Equal(t, "No Significant Risks Detected", rep.RiskAssessment.Predictions[0].InjuryType)

	assert.Equal(t, "F", rep.PostureMetrics.PostureGrade)
	assert.True(t, rep.Anomalies.InsufficientData)
	assert.Equal(t, 40, rep.Summary.TotalFrames)
	assert.Contains(t, rep.Summary.Weaknesses, "Posture")
	assert.Contains(t, rep.Summary.Weaknesses, "Symmetry")
	assert.Contains(t, rep.Summary.Strengths, "Movement Quality")
}

func TestAnalyze_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := testEngine().Analyze(ctx, neutralSequence(10))
	assert.Nil(t, rep)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// TestAnalyze_MalformedIDDegradesMotion feeds a frame whose landmark id is
// outside the fixed domain. The motion stage trips on it and must degrade
// to an empty result while every other stage still reports.
func TestAnalyze_MalformedIDDegradesMotion(t *testing.T) {
	t.Parallel()

	seq := swayingSequence(30)
	seq = append(seq, pose.Frame{
		Index:    30,
		Detected: true,
		Landmarks: map[int]pose.Landmark{
			40: {X: 0.5, Y: 0.5, Visibility: 1},
		},
	})

	control, err := testEngine().Analyze(context.Background(), swayingSequence(30))
	require.NoError(t, err)
	require.Greater(t, control.MotionMetrics.MaxVelocity, 0.0)

	rep, err := testEngine().Analyze(context.Background(), seq)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Zero(t, rep.MotionMetrics.MaxVelocity)
	assert.Len(t, rep.MotionMetrics.AverageVelocities, pose.NumLandmarks)
	assert.Empty(t, rep.MotionMetrics.MostActiveJoints)

	// The untouched stages still carry real results.
	assert.Equal(t, "A", rep.PostureMetrics.PostureGrade)
	assert.Equal(t, 100.0, rep.SymmetryAnalysis.OverallScore)
	require.NotNil(t, rep.JointAngles["left_knee"][0])
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()

	e := testEngine()
	seq := swayingSequence(45)

	first, err := e.Analyze(context.Background(), seq)
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), seq)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated analysis differs (-first +second):\n%s", diff)
	}
}
