package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kinetic-data/motion.report/internal/pose"
)

// SymmetryAnalysis reports bilateral balance. ByBodyPart holds one averaged
// score per symmetric pair that was observed at least once; pairs never seen
// are absent rather than zero. PairsMeasured counts the observed pairs so
// downstream consumers can tell "perfectly balanced" from "no evidence".
type SymmetryAnalysis struct {
	OverallScore      float64            `json:"overall_score"`
	ByBodyPart        map[string]float64 `json:"by_body_part"`
	ImbalanceDetected bool               `json:"imbalance_detected"`
	MostAsymmetric    *string            `json:"most_asymmetric"`
	PairsMeasured     int                `json:"-"`
}

// ComputeSymmetry scores each fixed left/right pair per frame on vertical
// (y) difference, averages per pair across the frames where both sides were
// present, and summarizes into an overall score with the weakest pair
// called out.
func ComputeSymmetry(seq pose.Sequence, cfg Config) SymmetryAnalysis {
	pairs := pose.SymmetricPairs()
	scores := make(map[string][]float64, len(pairs))

	for _, f := range seq {
		if !f.Detected {
			continue
		}
		for _, p := range pairs {
			left, lok := f.Landmark(p.Left)
			right, rok := f.Landmark(p.Right)
			if !lok || !rok {
				continue
			}
			diff := math.Abs(left.Y - right.Y)
			scores[p.Label] = append(scores[p.Label], math.Max(0, 100-diff*cfg.SymmetryScale))
		}
	}

	out := SymmetryAnalysis{ByBodyPart: make(map[string]float64, len(scores))}

	var overall []float64
	for _, p := range pairs {
		vals, ok := scores[p.Label]
		if !ok {
			continue
		}
		mean := stat.Mean(vals, nil)
		out.ByBodyPart[p.Label] = mean
		overall = append(overall, mean)

		if out.MostAsymmetric == nil || mean < out.ByBodyPart[*out.MostAsymmetric] {
			label := p.Label
			out.MostAsymmetric = &label
		}
	}

	out.PairsMeasured = len(out.ByBodyPart)
	if out.PairsMeasured == 0 {
		return out
	}

	out.OverallScore = stat.Mean(overall, nil)
	out.ImbalanceDetected = out.OverallScore < cfg.ImbalanceThreshold
	return out
}
