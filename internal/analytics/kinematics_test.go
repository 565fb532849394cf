package analytics

import (
	"math"
	"testing"

	"github.com/kinetic-data/motion.report/internal/pose"
)

func TestComputeJointAngles_SeriesShape(t *testing.T) {
	seq := standingSequence(4)
	angles := ComputeJointAngles(seq)

	names := JointNames()
	if len(angles) != len(names) {
		t.Fatalf("expected %d joint series, got %d", len(names), len(angles))
	}
	for _, name := range names {
		series, ok := angles[name]
		if !ok {
			t.Fatalf("missing series for %q", name)
		}
		if len(series) != len(seq) {
			t.Errorf("series %q has length %d, want %d", name, len(series), len(seq))
		}
	}
}

func TestComputeJointAngles_NeutralPose(t *testing.T) {
	angles := ComputeJointAngles(standingSequence(1))

	// Straight legs: hip-knee-ankle collinear.
	for _, name := range []string{JointLeftKnee, JointRightKnee} {
		v := angles[name][0]
		if v == nil {
			t.Fatalf("%s should be computable", name)
		}
		if math.Abs(*v-180) > 0.5 {
			t.Errorf("%s = %v, want ~180 for a straight leg", name, *v)
		}
	}

	// Upright torso: shoulder center, hip center and knee center collinear.
	if v := angles[JointSpine][0]; v == nil || math.Abs(*v-180) > 0.5 {
		t.Errorf("spine = %v, want ~180 for an upright torso", v)
	}

	// Hanging arms: small angle between upper arm and torso.
	if v := angles[JointLeftShoulder][0]; v == nil || *v > 30 {
		t.Errorf("left_shoulder = %v, want a small hanging-arm angle", v)
	}
}

func TestComputeJointAngles_TPoseShoulder(t *testing.T) {
	lms := standingLandmarks()
	// Raise the left arm to horizontal.
	lms[pose.LeftElbow] = at(0.30, 0.30, 0)
	lms[pose.LeftWrist] = at(0.18, 0.30, 0)

	angles := ComputeJointAngles(pose.Sequence{detectedFrame(0, lms)})

	v := angles[JointLeftShoulder][0]
	if v == nil {
		t.Fatal("left_shoulder should be computable")
	}
	if math.Abs(*v-90) > 10 {
		t.Errorf("left_shoulder = %v, want ~90 for a horizontal arm", *v)
	}
}

func TestComputeJointAngles_MissingLandmarksAreIndependent(t *testing.T) {
	lms := standingLandmarks()
	delete(lms, pose.LeftAnkle)

	angles := ComputeJointAngles(pose.Sequence{detectedFrame(0, lms)})

	if angles[JointLeftKnee][0] != nil {
		t.Error("left_knee should be nil without the left ankle")
	}
	if angles[JointRightKnee][0] == nil {
		t.Error("right_knee should still be computable")
	}
	if angles[JointLeftElbow][0] == nil {
		t.Error("left_elbow should still be computable")
	}
}

func TestComputeJointAngles_UndetectedFrame(t *testing.T) {
	seq := pose.Sequence{
		undetectedFrame(0),
		detectedFrame(1, standingLandmarks()),
		undetectedFrame(2),
	}
	angles := ComputeJointAngles(seq)

	for name, series := range angles {
		if series[0] != nil || series[2] != nil {
			t.Errorf("series %q should be nil on undetected frames", name)
		}
		if series[1] == nil {
			t.Errorf("series %q should be computable on the detected frame", name)
		}
	}
}

func TestComputeJointAngles_EmptySequence(t *testing.T) {
	angles := ComputeJointAngles(pose.Sequence{})
	for name, series := range angles {
		if len(series) != 0 {
			t.Errorf("series %q should be empty, got %d entries", name, len(series))
		}
	}
}
