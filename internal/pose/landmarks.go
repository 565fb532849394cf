package pose

// Body landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// landmarkNames holds the canonical display names, indexed by landmark id.
// The upper-case form matches what the upstream estimator reports and what
// the presentation layer expects in most-active rankings.
var landmarkNames = [NumLandmarks]string{
	"NOSE", "LEFT_EYE_INNER", "LEFT_EYE", "LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER", "RIGHT_EYE", "RIGHT_EYE_OUTER",
	"LEFT_EAR", "RIGHT_EAR", "MOUTH_LEFT", "MOUTH_RIGHT",
	"LEFT_SHOULDER", "RIGHT_SHOULDER",
	"LEFT_ELBOW", "RIGHT_ELBOW",
	"LEFT_WRIST", "RIGHT_WRIST",
	"LEFT_PINKY", "RIGHT_PINKY",
	"LEFT_INDEX", "RIGHT_INDEX",
	"LEFT_THUMB", "RIGHT_THUMB",
	"LEFT_HIP", "RIGHT_HIP",
	"LEFT_KNEE", "RIGHT_KNEE",
	"LEFT_ANKLE", "RIGHT_ANKLE",
	"LEFT_HEEL", "RIGHT_HEEL",
	"LEFT_FOOT_INDEX", "RIGHT_FOOT_INDEX",
}

// Name returns the display name for a landmark id, or "UNKNOWN" for ids
// outside the fixed domain.
func Name(id int) string {
	if id < 0 || id >= NumLandmarks {
		return "UNKNOWN"
	}
	return landmarkNames[id]
}

// ValidID reports whether id falls inside the fixed 0..32 domain.
func ValidID(id int) bool {
	return id >= 0 && id < NumLandmarks
}

// SymmetricPair is one left/right landmark pairing compared for bilateral
// balance scoring.
type SymmetricPair struct {
	Left  int
	Right int
	Label string
}

// symmetricPairs is the fixed comparison set. Order matters: by-body-part
// results and tie-breaking follow this order.
var symmetricPairs = []SymmetricPair{
	{LeftShoulder, RightShoulder, "shoulders"},
	{LeftElbow, RightElbow, "elbows"},
	{LeftWrist, RightWrist, "wrists"},
	{LeftHip, RightHip, "hips"},
	{LeftKnee, RightKnee, "knees"},
	{LeftAnkle, RightAnkle, "ankles"},
}

// SymmetricPairs returns the fixed left/right pair set in canonical order.
// The returned slice is a copy.
func SymmetricPairs() []SymmetricPair {
	out := make([]SymmetricPair, len(symmetricPairs))
	copy(out, symmetricPairs)
	return out
}

// Connection is one skeleton edge between two landmark ids, used by chart
// and plot rendering.
type Connection struct {
	A, B int
}

// connections lists the torso, arm and leg edges of the standard pose
// skeleton.
var connections = []Connection{
	// Torso
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftHip},
	{RightShoulder, RightHip},
	{LeftHip, RightHip},
	// Arms
	{LeftShoulder, LeftElbow},
	{LeftElbow, LeftWrist},
	{RightShoulder, RightElbow},
	{RightElbow, RightWrist},
	// Legs
	{LeftHip, LeftKnee},
	{LeftKnee, LeftAnkle},
	{LeftAnkle, LeftHeel},
	{LeftHeel, LeftFootIndex},
	{RightHip, RightKnee},
	{RightKnee, RightAnkle},
	{RightAnkle, RightHeel},
	{RightHeel, RightFootIndex},
}

// Connections returns the skeleton edge list. The returned slice is a copy.
func Connections() []Connection {
	out := make([]Connection, len(connections))
	copy(out, connections)
	return out
}
