package analytics

import (
	"math"
	"testing"

	"github.com/kinetic-data/motion.report/internal/pose"
)

func TestComputePostureMetrics_NeutralPose(t *testing.T) {
	m := ComputePostureMetrics(standingSequence(5), testConfig())

	if m.FramesMeasured != 5 {
		t.Fatalf("FramesMeasured = %d, want 5", m.FramesMeasured)
	}
	if m.SpineAlignmentScore != 100 {
		t.Errorf("SpineAlignmentScore = %v, want 100 for a centered nose", m.SpineAlignmentScore)
	}
	if m.ShoulderBalanceScore != 100 || m.HipBalanceScore != 100 {
		t.Errorf("balance scores = %v/%v, want 100/100 for level shoulders and hips",
			m.ShoulderBalanceScore, m.HipBalanceScore)
	}
	if m.OverallPostureScore != 100 {
		t.Errorf("OverallPostureScore = %v, want 100", m.OverallPostureScore)
	}
	if m.PostureGrade != "A" {
		t.Errorf("PostureGrade = %q, want A", m.PostureGrade)
	}
	// Nose directly above the shoulder center: straight up is -90 degrees
	// with y growing downward.
	if math.Abs(m.AverageHeadTilt-(-90)) > 0.5 {
		t.Errorf("AverageHeadTilt = %v, want ~-90", m.AverageHeadTilt)
	}
}

func TestComputePostureMetrics_LeaningPose(t *testing.T) {
	lms := standingLandmarks()
	lms[pose.Nose] = at(0.60, 0.20, 0) // nose drifts right of the shoulder center

	cfg := testConfig()
	cfg.SpineDeviationScale = 200 // 0.1 offset costs 20 points

	m := ComputePostureMetrics(pose.Sequence{detectedFrame(0, lms)}, cfg)
	if math.Abs(m.SpineAlignmentScore-80) > 1e-9 {
		t.Errorf("SpineAlignmentScore = %v, want 80", m.SpineAlignmentScore)
	}
	if m.SpineAlignmentScore >= 100 {
		t.Error("leaning pose should score below a centered one")
	}
}

func TestComputePostureMetrics_UnevenShoulders(t *testing.T) {
	lms := standingLandmarks()
	lms[pose.LeftShoulder] = at(0.42, 0.35, 0) // left shoulder drops

	cfg := testConfig()
	cfg.BalanceScale = 400 // 0.05 difference costs 20 points

	m := ComputePostureMetrics(pose.Sequence{detectedFrame(0, lms)}, cfg)
	if math.Abs(m.ShoulderBalanceScore-80) > 1e-9 {
		t.Errorf("ShoulderBalanceScore = %v, want 80", m.ShoulderBalanceScore)
	}
	if m.HipBalanceScore != 100 {
		t.Errorf("HipBalanceScore = %v, want 100 (hips untouched)", m.HipBalanceScore)
	}
}

func TestComputePostureMetrics_ClampsAtZero(t *testing.T) {
	lms := standingLandmarks()
	lms[pose.Nose] = at(0.9, 0.20, 0)

	cfg := testConfig()
	cfg.SpineDeviationScale = 1000 // far past the clamp

	m := ComputePostureMetrics(pose.Sequence{detectedFrame(0, lms)}, cfg)
	if m.SpineAlignmentScore != 0 {
		t.Errorf("SpineAlignmentScore = %v, want clamp at 0", m.SpineAlignmentScore)
	}
}

func TestComputePostureMetrics_SkipsUnscorableFrames(t *testing.T) {
	lms := standingLandmarks()
	delete(lms, pose.Nose)

	seq := pose.Sequence{
		detectedFrame(0, standingLandmarks()),
		detectedFrame(1, lms), // no nose: excluded, not zero
		undetectedFrame(2),
	}

	m := ComputePostureMetrics(seq, testConfig())
	if m.FramesMeasured != 1 {
		t.Fatalf("FramesMeasured = %d, want 1", m.FramesMeasured)
	}
	if m.SpineAlignmentScore != 100 {
		t.Errorf("excluded frames must not drag the mean: got %v", m.SpineAlignmentScore)
	}
}

func TestComputePostureMetrics_NoEvidence(t *testing.T) {
	seq := pose.Sequence{undetectedFrame(0), undetectedFrame(1)}

	m := ComputePostureMetrics(seq, testConfig())
	if m.FramesMeasured != 0 {
		t.Fatalf("FramesMeasured = %d, want 0", m.FramesMeasured)
	}
	if m.OverallPostureScore != 0 || m.SpineAlignmentScore != 0 {
		t.Errorf("no-evidence metrics should be zero, got %+v", m)
	}
	if m.PostureGrade != "F" {
		t.Errorf("PostureGrade = %q, want F", m.PostureGrade)
	}
}

func TestGradeScale(t *testing.T) {
	g := GradeScale{A: 90, B: 80, C: 70, D: 60}
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {90, "A"}, {89.9, "B"}, {80, "B"},
		{75, "C"}, {65, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		if got := g.Grade(c.score); got != c.want {
			t.Errorf("Grade(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
