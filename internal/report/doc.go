// Package report owns the assembled analysis output: the summary generator
// that blends posture, symmetry and movement quality into an overall score,
// and the Report structure whose JSON shape is the stable contract consumed
// by presentation layers. An Envelope pairs a Report with production
// metadata (id, timestamp, source) for storage and file output; the
// analytics object itself never carries metadata.
package report
