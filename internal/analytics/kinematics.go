package analytics

import (
	"github.com/kinetic-data/motion.report/internal/geom"
	"github.com/kinetic-data/motion.report/internal/pose"
)

// Joint series names. These are the keys of the joint_angles output object
// and the names the risk assessors look up.
const (
	JointLeftShoulder  = "left_shoulder"
	JointRightShoulder = "right_shoulder"
	JointLeftElbow     = "left_elbow"
	JointRightElbow    = "right_elbow"
	JointLeftHip       = "left_hip"
	JointRightHip      = "right_hip"
	JointLeftKnee      = "left_knee"
	JointRightKnee     = "right_knee"
	JointNeck          = "neck"
	JointSpine         = "spine"
)

// jointTriple defines a named joint angle measured at landmark B between the
// rays to A and C.
type jointTriple struct {
	name    string
	a, b, c int
}

// jointTriples covers the directly landmark-addressed joints. Neck and spine
// are midpoint-based and handled separately.
var jointTriples = []jointTriple{
	{JointLeftShoulder, pose.LeftElbow, pose.LeftShoulder, pose.LeftHip},
	{JointRightShoulder, pose.RightElbow, pose.RightShoulder, pose.RightHip},
	{JointLeftElbow, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
	{JointRightElbow, pose.RightShoulder, pose.RightElbow, pose.RightWrist},
	{JointLeftHip, pose.LeftShoulder, pose.LeftHip, pose.LeftKnee},
	{JointRightHip, pose.RightShoulder, pose.RightHip, pose.RightKnee},
	{JointLeftKnee, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
	{JointRightKnee, pose.RightHip, pose.RightKnee, pose.RightAnkle},
}

// JointNames returns every joint series name in canonical order.
func JointNames() []string {
	names := make([]string, 0, len(jointTriples)+2)
	for _, jt := range jointTriples {
		names = append(names, jt.name)
	}
	return append(names, JointNeck, JointSpine)
}

// ComputeJointAngles computes every named joint-angle series over the
// sequence. Each series has one entry per input frame; a nil entry marks a
// frame where the joint's landmarks were unavailable. Joints are computed
// independently, so one missing landmark never blanks a whole frame.
func ComputeJointAngles(seq pose.Sequence) map[string][]*float64 {
	angles := make(map[string][]*float64, len(jointTriples)+2)
	for _, name := range JointNames() {
		angles[name] = make([]*float64, len(seq))
	}

	for i, f := range seq {
		if !f.Detected {
			continue
		}

		for _, jt := range jointTriples {
			if f.Has(jt.a, jt.b, jt.c) {
				v := geom.Angle(f.Landmarks[jt.a], f.Landmarks[jt.b], f.Landmarks[jt.c])
				angles[jt.name][i] = &v
			}
		}

		// Neck: nose - shoulder center - hip center.
		if f.Has(pose.Nose, pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip) {
			midShoulder := geom.Midpoint(f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.RightShoulder])
			midHip := geom.Midpoint(f.Landmarks[pose.LeftHip], f.Landmarks[pose.RightHip])
			v := geom.Angle(f.Landmarks[pose.Nose], midShoulder, midHip)
			angles[JointNeck][i] = &v
		}

		// Spine: shoulder center - hip center - knee center.
		if f.Has(pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip, pose.LeftKnee, pose.RightKnee) {
			midShoulder := geom.Midpoint(f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.RightShoulder])
			midHip := geom.Midpoint(f.Landmarks[pose.LeftHip], f.Landmarks[pose.RightHip])
			midKnee := geom.Midpoint(f.Landmarks[pose.LeftKnee], f.Landmarks[pose.RightKnee])
			v := geom.Angle(midShoulder, midHip, midKnee)
			angles[JointSpine][i] = &v
		}
	}

	return angles
}
