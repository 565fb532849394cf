// Package risk owns rule-based injury risk assessment over computed
// movement metrics. Five body regions (knee, spine, shoulder, hip, ankle)
// are scored independently against biomechanical thresholds; findings above
// the inclusion threshold are ranked and summarized into an overall risk
// level with prevention recommendations.
//
// The rules are deliberately transparent: each region accumulates penalty
// points from named warning signs, so every reported score can be traced
// back to the exact observations that produced it.
//
// Dependency rule: risk may depend on analytics, pose and config, never on
// report or pipeline.
package risk
