package pose

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrLandmarkRange is returned by the codec when a frame carries a landmark
// id outside the fixed 0..32 domain.
var ErrLandmarkRange = errors.New("landmark id out of range")

// Landmark is a single tracked anatomical point. X and Y are image-normalized
// [0,1]; Z is depth relative to the hip midpoint on the same scale.
// Visibility is the estimator's confidence in [0,1]; a wire frame that omits
// it decodes as 1.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame is one sampled instant: its position in the sequence, whether the
// estimator detected a body at all, and whichever landmarks it reported.
// Ids absent from Landmarks are missing, never zero-valued.
type Frame struct {
	Index     int
	Detected  bool
	Landmarks map[int]Landmark
}

// Sequence is the complete, time-ordered frame set for one analyzed clip.
// Stages treat it as read-only; every output series is index-aligned with it.
type Sequence []Frame

// wireLandmark is the estimator's on-the-wire landmark shape.
type wireLandmark struct {
	ID         int      `json:"id"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// wireFrame is the estimator's on-the-wire frame shape.
type wireFrame struct {
	Frame     int            `json:"frame"`
	Detected  bool           `json:"pose_detected"`
	Landmarks []wireLandmark `json:"landmarks"`
}

// wireEnvelope matches the upstream job-result payload, which nests the frame
// list under a pose_data key.
type wireEnvelope struct {
	PoseData []wireFrame `json:"pose_data"`
}

// UnmarshalJSON decodes the wire frame shape, converting the landmark list to
// the id-keyed map and validating the id domain.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var wf wireFrame
	if err := json.Unmarshal(data, &wf); err != nil {
		return err
	}
	frame, err := frameFromWire(wf)
	if err != nil {
		return err
	}
	*f = frame
	return nil
}

// MarshalJSON encodes the wire frame shape with landmarks sorted by id so
// output is deterministic.
func (f Frame) MarshalJSON() ([]byte, error) {
	wf := wireFrame{
		Frame:     f.Index,
		Detected:  f.Detected,
		Landmarks: make([]wireLandmark, 0, len(f.Landmarks)),
	}
	ids := make([]int, 0, len(f.Landmarks))
	for id := range f.Landmarks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		lm := f.Landmarks[id]
		vis := lm.Visibility
		wf.Landmarks = append(wf.Landmarks, wireLandmark{
			ID: id, X: lm.X, Y: lm.Y, Z: lm.Z, Visibility: &vis,
		})
	}
	return json.Marshal(wf)
}

func frameFromWire(wf wireFrame) (Frame, error) {
	frame := Frame{
		Index:     wf.Frame,
		Detected:  wf.Detected,
		Landmarks: make(map[int]Landmark, len(wf.Landmarks)),
	}
	for _, wl := range wf.Landmarks {
		if !ValidID(wl.ID) {
			return Frame{}, fmt.Errorf("frame %d: %w: %d", wf.Frame, ErrLandmarkRange, wl.ID)
		}
		vis := 1.0
		if wl.Visibility != nil {
			vis = *wl.Visibility
		}
		frame.Landmarks[wl.ID] = Landmark{X: wl.X, Y: wl.Y, Z: wl.Z, Visibility: vis}
	}
	return frame, nil
}

// ParseSequence reads a landmark sequence from JSON. Both the bare frame
// array and the upstream job-result envelope ({"pose_data": [...]}) are
// accepted.
func ParseSequence(r io.Reader) (Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	var frames []wireFrame
	if err := json.Unmarshal(data, &frames); err != nil {
		var env wireEnvelope
		if envErr := json.Unmarshal(data, &env); envErr != nil || env.PoseData == nil {
			return nil, fmt.Errorf("decode sequence: %w", err)
		}
		frames = env.PoseData
	}

	seq := make(Sequence, 0, len(frames))
	for _, wf := range frames {
		frame, err := frameFromWire(wf)
		if err != nil {
			return nil, err
		}
		seq = append(seq, frame)
	}
	return seq, nil
}

// Landmark looks up one landmark in a frame.
func (f Frame) Landmark(id int) (Landmark, bool) {
	lm, ok := f.Landmarks[id]
	return lm, ok
}

// Has reports whether every given landmark id is present in the frame.
func (f Frame) Has(ids ...int) bool {
	for _, id := range ids {
		if _, ok := f.Landmarks[id]; !ok {
			return false
		}
	}
	return true
}

// FilterLowVisibility returns a new sequence with landmarks whose visibility
// falls below min removed. Frames themselves are preserved (the result has
// the same length); a frame left with no landmarks keeps its Detected flag so
// index alignment and detection statistics stay truthful.
func FilterLowVisibility(seq Sequence, min float64) Sequence {
	out := make(Sequence, len(seq))
	for i, f := range seq {
		nf := Frame{Index: f.Index, Detected: f.Detected, Landmarks: make(map[int]Landmark, len(f.Landmarks))}
		for id, lm := range f.Landmarks {
			if lm.Visibility >= min {
				nf.Landmarks[id] = lm
			}
		}
		out[i] = nf
	}
	return out
}

// SequenceStats summarizes detection coverage for report metadata.
type SequenceStats struct {
	TotalFrames    int
	DetectedFrames int
	// PresenceCounts holds how many frames carried each landmark id.
	PresenceCounts [NumLandmarks]int
}

// DetectionStats walks the sequence once and reports coverage counts.
func DetectionStats(seq Sequence) SequenceStats {
	stats := SequenceStats{TotalFrames: len(seq)}
	for _, f := range seq {
		if f.Detected {
			stats.DetectedFrames++
		}
		for id := range f.Landmarks {
			if ValidID(id) {
				stats.PresenceCounts[id]++
			}
		}
	}
	return stats
}
