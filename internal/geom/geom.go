// Package geom provides the angle and distance primitives shared by every
// metric computation. All angles are in degrees.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinetic-data/motion.report/internal/pose"
)

// Epsilon guards the angle denominator against coincident points. It is the
// single degenerate-geometry guard for the engine.
const Epsilon = 1e-6

func vec(l pose.Landmark) r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// Angle returns the angle at vertex b between the rays to a and c, in
// degrees. Symmetric in a and c; approximately 180 for collinear opposite
// rays and 0 for coincident rays. Defined for any input: when a or c sits on
// b the epsilon keeps the division finite and the result is 90.
func Angle(a, b, c pose.Landmark) float64 {
	v1 := r3.Sub(vec(a), vec(b))
	v2 := r3.Sub(vec(c), vec(b))

	cos := r3.Dot(v1, v2) / (r3.Norm(v1)*r3.Norm(v2) + Epsilon)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// Distance returns the Euclidean distance between two landmarks.
func Distance(p, q pose.Landmark) float64 {
	return r3.Norm(r3.Sub(vec(q), vec(p)))
}

// Midpoint returns the componentwise mean of two landmarks. Visibility is
// averaged as well so derived points keep a meaningful confidence.
func Midpoint(p, q pose.Landmark) pose.Landmark {
	return pose.Landmark{
		X:          (p.X + q.X) / 2,
		Y:          (p.Y + q.Y) / 2,
		Z:          (p.Z + q.Z) / 2,
		Visibility: (p.Visibility + q.Visibility) / 2,
	}
}
