// Package analytics owns the per-sequence metric stages: joint kinematics,
// posture scoring, motion statistics, bilateral symmetry, and anomalous-
// movement detection.
//
// Every stage is a pure function over a read-only pose.Sequence. Per-frame
// series are emitted as []*float64 with one entry per input frame; a nil
// entry marks a frame where the required landmarks were unavailable, so
// "not computable" stays distinguishable from an exact zero. Aggregate
// scores are clamped to [0,100].
//
// Dependency rule: analytics may depend on pose and geom, never on risk,
// report or pipeline. No I/O and no mutation of the input anywhere in this
// package.
package analytics
