package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kinetic-data/motion.report/internal/geom"
	"github.com/kinetic-data/motion.report/internal/pose"
)

// ActiveJoint is one entry of the most-active ranking.
type ActiveJoint struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MotionMetrics aggregates per-landmark velocity and range-of-motion
// statistics. Velocities are displacement per sampling interval in the
// input coordinate units. Both maps carry all 33 landmark ids; a landmark
// that was never observed reports zero.
type MotionMetrics struct {
	AverageVelocities map[int]float64 `json:"average_velocities"`
	MaxVelocity       float64         `json:"max_velocity"`
	AvgVelocity       float64         `json:"avg_velocity"`
	RangeOfMotion     map[int]float64 `json:"range_of_motion"`
	MostActiveJoints  []ActiveJoint   `json:"most_active_joints"`
}

// axisExtent tracks per-axis min/max for one landmark across the sequence.
type axisExtent struct {
	minX, maxX float64
	minY, maxY float64
	minZ, maxZ float64
	seen       bool
}

func (e *axisExtent) observe(lm pose.Landmark) {
	if !e.seen {
		e.minX, e.maxX = lm.X, lm.X
		e.minY, e.maxY = lm.Y, lm.Y
		e.minZ, e.maxZ = lm.Z, lm.Z
		e.seen = true
		return
	}
	e.minX, e.maxX = math.Min(e.minX, lm.X), math.Max(e.maxX, lm.X)
	e.minY, e.maxY = math.Min(e.minY, lm.Y), math.Max(e.maxY, lm.Y)
	e.minZ, e.maxZ = math.Min(e.minZ, lm.Z), math.Max(e.maxZ, lm.Z)
}

func (e *axisExtent) rangeOfMotion() float64 {
	if !e.seen {
		return 0
	}
	rx := e.maxX - e.minX
	ry := e.maxY - e.minY
	rz := e.maxZ - e.minZ
	return math.Sqrt(rx*rx + ry*ry + rz*rz)
}

// ComputeMotionMetrics accumulates per-landmark displacement between each
// consecutive pair of detected frames and per-landmark positional extents
// across the whole sequence. A frame missing a given landmark simply
// contributes no sample for it.
func ComputeMotionMetrics(seq pose.Sequence, cfg Config) MotionMetrics {
	samples := make(map[int][]float64, pose.NumLandmarks)
	var extents [pose.NumLandmarks]axisExtent

	for i := 0; i < len(seq); i++ {
		if seq[i].Detected {
			for id, lm := range seq[i].Landmarks {
				extents[id].observe(lm)
			}
		}

		if i+1 >= len(seq) || !seq[i].Detected || !seq[i+1].Detected {
			continue
		}
		for id, curr := range seq[i].Landmarks {
			next, ok := seq[i+1].Landmarks[id]
			if !ok {
				continue
			}
			samples[id] = append(samples[id], geom.Distance(curr, next))
		}
	}

	m := MotionMetrics{
		AverageVelocities: make(map[int]float64, pose.NumLandmarks),
		RangeOfMotion:     make(map[int]float64, pose.NumLandmarks),
		MostActiveJoints:  []ActiveJoint{},
	}

	var observedMeans []float64
	for id := 0; id < pose.NumLandmarks; id++ {
		avg := 0.0
		if vels := samples[id]; len(vels) > 0 {
			avg = stat.Mean(vels, nil)
			observedMeans = append(observedMeans, avg)
		}
		m.AverageVelocities[id] = avg
		if avg > m.MaxVelocity {
			m.MaxVelocity = avg
		}
		m.RangeOfMotion[id] = extents[id].rangeOfMotion()
	}
	// Mean over landmarks that actually produced samples, so sparse
	// detections do not dilute the overall figure.
	if len(observedMeans) > 0 {
		m.AvgVelocity = stat.Mean(observedMeans, nil)
	}

	m.MostActiveJoints = rankMostActive(m.RangeOfMotion, cfg.TopActiveJoints)
	return m
}

// rankMostActive returns the top-n landmarks by range of motion, descending.
// Landmarks that never moved (or were never seen) are not ranked.
func rankMostActive(rom map[int]float64, n int) []ActiveJoint {
	ranked := make([]ActiveJoint, 0, len(rom))
	for id, value := range rom {
		if value > 0 {
			ranked = append(ranked, ActiveJoint{ID: id, Name: pose.Name(id), Value: value})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
