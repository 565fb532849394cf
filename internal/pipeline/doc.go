// Package pipeline is the composition root: it runs the analytics stages
// over a landmark sequence, joins their results, and feeds them through
// risk assessment and summary generation into an assembled report.
//
// The five sequence stages are independent of each other and run
// concurrently, each writing a disjoint result slot. A stage that panics
// (degenerate input a guard missed) is recovered at the stage boundary and
// degraded to its empty result; the report is still produced. Risk and
// summary run after the join since they consume every stage output.
//
// The engine itself performs no I/O; persistence and rendering live in
// store and visualize.
package pipeline
