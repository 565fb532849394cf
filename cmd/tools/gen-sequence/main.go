// Command gen-sequence synthesizes pose landmark sequences for testing,
// demos and dashboard development. The subject performs repeated squats in
// image-normalized coordinates (y grows downward), with configurable noise,
// detection dropout and left/right asymmetry.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/kinetic-data/motion.report/internal/pose"
)

func main() {
	output := flag.String("o", "sequence.json", "output path")
	frames := flag.Int("n", 120, "number of frames")
	cycles := flag.Float64("cycles", 4, "squat repetitions across the sequence")
	noise := flag.Float64("noise", 0.004, "gaussian positional noise stddev")
	dropout := flag.Float64("dropout", 0.02, "probability a frame has no detection")
	asymmetry := flag.Float64("asymmetry", 0, "vertical offset added to left-side landmarks")
	occlusion := flag.Float64("occlusion", 0.03, "probability a landmark reports low visibility")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	gen := &squatGenerator{
		rng:       rand.New(rand.NewSource(*seed)),
		noise:     *noise,
		dropout:   *dropout,
		asymmetry: *asymmetry,
		occlusion: *occlusion,
	}

	seq := make(pose.Sequence, 0, *frames)
	for i := 0; i < *frames; i++ {
		seq = append(seq, gen.frame(i, squatPhase(i, *frames, *cycles)))
	}

	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		log.Fatalf("marshal sequence: %v", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}

	stats := pose.DetectionStats(seq)
	log.Printf("wrote %s: %d frames (%d detected)", *output, stats.TotalFrames, stats.DetectedFrames)
}

// squatPhase maps a frame index to squat depth in [0,1]: 0 standing, 1 at
// the bottom of the rep.
func squatPhase(i, n int, cycles float64) float64 {
	if n <= 1 {
		return 0
	}
	t := float64(i) / float64(n-1)
	return (1 - math.Cos(2*math.Pi*cycles*t)) / 2
}

type squatGenerator struct {
	rng       *rand.Rand
	noise     float64
	dropout   float64
	asymmetry float64
	occlusion float64
}

type point struct{ x, y, z float64 }

// standingPose is the neutral upright skeleton the squat deforms. Left side
// of the body sits at smaller x, matching a subject facing the camera.
var standingPose = map[int]point{
	pose.Nose:           {0.50, 0.20, 0},
	pose.LeftEyeInner:   {0.48, 0.185, 0},
	pose.LeftEye:        {0.47, 0.185, 0},
	pose.LeftEyeOuter:   {0.46, 0.185, 0},
	pose.RightEyeInner:  {0.52, 0.185, 0},
	pose.RightEye:       {0.53, 0.185, 0},
	pose.RightEyeOuter:  {0.54, 0.185, 0},
	pose.LeftEar:        {0.45, 0.195, 0},
	pose.RightEar:       {0.55, 0.195, 0},
	pose.MouthLeft:      {0.48, 0.215, 0},
	pose.MouthRight:     {0.52, 0.215, 0},
	pose.LeftShoulder:   {0.42, 0.30, 0},
	pose.RightShoulder:  {0.58, 0.30, 0},
	pose.LeftElbow:      {0.40, 0.42, 0},
	pose.RightElbow:     {0.60, 0.42, 0},
	pose.LeftWrist:      {0.39, 0.54, 0},
	pose.RightWrist:     {0.61, 0.54, 0},
	pose.LeftPinky:      {0.385, 0.565, 0},
	pose.RightPinky:     {0.615, 0.565, 0},
	pose.LeftIndex:      {0.38, 0.565, 0},
	pose.RightIndex:     {0.62, 0.565, 0},
	pose.LeftThumb:      {0.39, 0.56, 0},
	pose.RightThumb:     {0.61, 0.56, 0},
	pose.LeftHip:        {0.44, 0.55, 0},
	pose.RightHip:       {0.56, 0.55, 0},
	pose.LeftKnee:       {0.44, 0.72, 0},
	pose.RightKnee:      {0.56, 0.72, 0},
	pose.LeftAnkle:      {0.44, 0.89, 0},
	pose.RightAnkle:     {0.56, 0.89, 0},
	pose.LeftHeel:       {0.435, 0.91, 0},
	pose.RightHeel:      {0.565, 0.91, 0},
	pose.LeftFootIndex:  {0.45, 0.93, 0},
	pose.RightFootIndex: {0.55, 0.93, 0},
}

// leftSide marks the ids the asymmetry offset shifts.
var leftSide = map[int]bool{
	pose.LeftShoulder: true, pose.LeftElbow: true, pose.LeftWrist: true,
	pose.LeftHip: true, pose.LeftKnee: true, pose.LeftAnkle: true,
	pose.LeftHeel: true, pose.LeftFootIndex: true,
}

func (g *squatGenerator) frame(idx int, phase float64) pose.Frame {
	if g.rng.Float64() < g.dropout {
		return pose.Frame{Index: idx, Detected: false, Landmarks: map[int]pose.Landmark{}}
	}

	lms := make(map[int]pose.Landmark, len(standingPose))
	for id, p := range standingPose {
		p = squatAt(id, p, phase)
		if leftSide[id] {
			p.y += g.asymmetry
		}
		vis := 0.9 + 0.1*g.rng.Float64()
		if g.rng.Float64() < g.occlusion {
			vis = 0.4 * g.rng.Float64()
		}
		lms[id] = pose.Landmark{
			X:          p.x + g.rng.NormFloat64()*g.noise,
			Y:          p.y + g.rng.NormFloat64()*g.noise,
			Z:          p.z + g.rng.NormFloat64()*g.noise,
			Visibility: vis,
		}
	}
	return pose.Frame{Index: idx, Detected: true, Landmarks: lms}
}

// squatAt deforms one standing landmark for squat depth in [0,1]. The torso
// and everything above the hips drops, knees flare outward and forward,
// arms raise toward the camera as counterbalance, feet stay planted.
func squatAt(id int, p point, depth float64) point {
	drop := 0.15 * depth
	switch id {
	case pose.LeftKnee:
		p.x -= 0.03 * depth
		p.z -= 0.05 * depth
	case pose.RightKnee:
		p.x += 0.03 * depth
		p.z -= 0.05 * depth
	case pose.LeftAnkle, pose.RightAnkle,
		pose.LeftHeel, pose.RightHeel,
		pose.LeftFootIndex, pose.RightFootIndex:
		// planted
	case pose.LeftElbow, pose.RightElbow:
		p.y += drop * 0.8
		p.z -= 0.08 * depth
	case pose.LeftWrist, pose.RightWrist,
		pose.LeftPinky, pose.RightPinky,
		pose.LeftIndex, pose.RightIndex,
		pose.LeftThumb, pose.RightThumb:
		p.y += drop * 0.5
		p.z -= 0.15 * depth
	default:
		p.y += drop
	}
	return p
}
