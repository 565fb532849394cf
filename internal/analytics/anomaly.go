package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kinetic-data/motion.report/internal/geom"
	"github.com/kinetic-data/motion.report/internal/pose"
)

// Anomaly severity tiers.
const (
	SeverityNone = "None"
	SeverityLow  = "Low"
	SeverityHigh = "High"
)

// AnomalyResult reports statistically outlying movement transitions.
// AnomalyFrames indexes into the valid-transition signal (consecutive
// detected frame pairs), matching how charts plot the signal. When the
// sequence offers too few transitions for meaningful statistics the result
// is empty with InsufficientData set, never a fabricated score.
type AnomalyResult struct {
	AnomalyFrames    []int  `json:"anomaly_frames"`
	AnomalyCount     int    `json:"anomaly_count"`
	Severity         string `json:"severity"`
	InsufficientData bool   `json:"insufficient_data"`
}

// DisplacementSignal builds the aggregate motion signal: total landmark
// displacement summed over each consecutive pair of detected frames.
// Transitions touching an undetected frame are skipped, not zeroed.
func DisplacementSignal(seq pose.Sequence) []float64 {
	var signal []float64
	for i := 0; i+1 < len(seq); i++ {
		if !seq[i].Detected || !seq[i+1].Detected {
			continue
		}
		// Fixed id order keeps the float sum deterministic across runs.
		total := 0.0
		for id := 0; id < pose.NumLandmarks; id++ {
			curr, ok := seq[i].Landmarks[id]
			if !ok {
				continue
			}
			if next, ok := seq[i+1].Landmarks[id]; ok {
				total += geom.Distance(curr, next)
			}
		}
		signal = append(signal, total)
	}
	return signal
}

// DetectAnomalies flags transitions in the displacement signal whose
// z-score exceeds the configured threshold.
func DetectAnomalies(seq pose.Sequence, cfg Config) AnomalyResult {
	signal := DisplacementSignal(seq)

	result := AnomalyResult{AnomalyFrames: []int{}, Severity: SeverityNone}
	if len(signal) < cfg.MinTransitions {
		result.InsufficientData = true
		return result
	}

	mean := stat.Mean(signal, nil)
	std := stat.PopStdDev(signal, nil)

	for i, v := range signal {
		z := math.Abs(v-mean) / (std + geom.Epsilon)
		if z > cfg.ZScoreThreshold {
			result.AnomalyFrames = append(result.AnomalyFrames, i)
		}
	}
	result.AnomalyCount = len(result.AnomalyFrames)

	switch {
	case float64(result.AnomalyCount) > cfg.HighSeverityFraction*float64(len(signal)):
		result.Severity = SeverityHigh
	case result.AnomalyCount > 0:
		result.Severity = SeverityLow
	}
	return result
}
