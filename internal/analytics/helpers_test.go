package analytics

import (
	"github.com/kinetic-data/motion.report/internal/pose"
)

// testConfig returns a fixed analytics configuration so tests stay hermetic
// regardless of the tuning defaults file.
func testConfig() Config {
	return Config{
		SpineDeviationScale:  10,
		BalanceScale:         20,
		SymmetryScale:        10,
		ImbalanceThreshold:   80,
		ZScoreThreshold:      2.5,
		MinTransitions:       10,
		HighSeverityFraction: 0.1,
		TopActiveJoints:      5,
		Grades:               GradeScale{A: 90, B: 80, C: 70, D: 60},
	}
}

func at(x, y, z float64) pose.Landmark {
	return pose.Landmark{X: x, Y: y, Z: z, Visibility: 1}
}

// standingLandmarks returns a neutral upright pose: straight legs, arms
// hanging, nose over the shoulder center. Coordinates are normalized with
// y increasing downward, matching the estimator contract.
func standingLandmarks() map[int]pose.Landmark {
	return map[int]pose.Landmark{
		pose.Nose:          at(0.50, 0.20, 0),
		pose.LeftShoulder:  at(0.42, 0.30, 0),
		pose.RightShoulder: at(0.58, 0.30, 0),
		pose.LeftElbow:     at(0.40, 0.42, 0),
		pose.RightElbow:    at(0.60, 0.42, 0),
		pose.LeftWrist:     at(0.39, 0.54, 0),
		pose.RightWrist:    at(0.61, 0.54, 0),
		pose.LeftHip:       at(0.44, 0.55, 0),
		pose.RightHip:      at(0.56, 0.55, 0),
		pose.LeftKnee:      at(0.44, 0.72, 0),
		pose.RightKnee:     at(0.56, 0.72, 0),
		pose.LeftAnkle:     at(0.44, 0.89, 0),
		pose.RightAnkle:    at(0.56, 0.89, 0),
	}
}

func detectedFrame(idx int, lms map[int]pose.Landmark) pose.Frame {
	return pose.Frame{Index: idx, Detected: true, Landmarks: lms}
}

func undetectedFrame(idx int) pose.Frame {
	return pose.Frame{Index: idx, Detected: false, Landmarks: map[int]pose.Landmark{}}
}

// standingSequence builds n identical neutral frames.
func standingSequence(n int) pose.Sequence {
	seq := make(pose.Sequence, n)
	for i := range seq {
		seq[i] = detectedFrame(i, standingLandmarks())
	}
	return seq
}
