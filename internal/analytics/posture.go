package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kinetic-data/motion.report/internal/geom"
	"github.com/kinetic-data/motion.report/internal/pose"
)

// PostureMetrics is the aggregated posture report. Score fields are in
// [0,100]; AverageHeadTilt is in degrees. FramesMeasured counts the frames
// that contributed — zero means the scores carry no evidence, which the risk
// layer must not mistake for genuinely poor posture.
type PostureMetrics struct {
	SpineAlignmentScore  float64 `json:"spine_alignment_score"`
	AverageHeadTilt      float64 `json:"average_head_tilt"`
	ShoulderBalanceScore float64 `json:"shoulder_balance_score"`
	HipBalanceScore      float64 `json:"hip_balance_score"`
	OverallPostureScore  float64 `json:"overall_posture_score"`
	PostureGrade         string  `json:"posture_grade"`
	FramesMeasured       int     `json:"-"`
}

// postureIDs are the landmarks a frame must carry to be posture-scorable.
var postureIDs = []int{pose.Nose, pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip}

// ComputePostureMetrics scores spine alignment, head tilt and shoulder/hip
// balance per frame, then averages across the frames where they were
// computable. Frames without the required landmarks are excluded from the
// means, never counted as zero.
func ComputePostureMetrics(seq pose.Sequence, cfg Config) PostureMetrics {
	var spineScores, headTilts, shoulderBalances, hipBalances []float64

	for _, f := range seq {
		if !f.Detected || !f.Has(postureIDs...) {
			continue
		}

		nose := f.Landmarks[pose.Nose]
		midShoulder := geom.Midpoint(f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.RightShoulder])

		// Upright posture keeps the nose over the shoulder center.
		deviation := math.Abs(nose.X - midShoulder.X)
		spineScores = append(spineScores, math.Max(0, 100-deviation*cfg.SpineDeviationScale))

		tilt := math.Atan2(nose.Y-midShoulder.Y, nose.X-midShoulder.X) * 180 / math.Pi
		headTilts = append(headTilts, tilt)

		shoulderDiff := math.Abs(f.Landmarks[pose.LeftShoulder].Y - f.Landmarks[pose.RightShoulder].Y)
		shoulderBalances = append(shoulderBalances, math.Max(0, 100-shoulderDiff*cfg.BalanceScale))

		hipDiff := math.Abs(f.Landmarks[pose.LeftHip].Y - f.Landmarks[pose.RightHip].Y)
		hipBalances = append(hipBalances, math.Max(0, 100-hipDiff*cfg.BalanceScale))
	}

	m := PostureMetrics{FramesMeasured: len(spineScores)}
	if m.FramesMeasured == 0 {
		m.PostureGrade = cfg.Grades.Grade(0)
		return m
	}

	m.SpineAlignmentScore = stat.Mean(spineScores, nil)
	m.AverageHeadTilt = stat.Mean(headTilts, nil)
	m.ShoulderBalanceScore = stat.Mean(shoulderBalances, nil)
	m.HipBalanceScore = stat.Mean(hipBalances, nil)
	m.OverallPostureScore = (m.SpineAlignmentScore + m.ShoulderBalanceScore + m.HipBalanceScore) / 3
	m.PostureGrade = cfg.Grades.Grade(m.OverallPostureScore)
	return m
}
