// Package visualize renders analysis output for human review: joint-angle
// and displacement series as PNG plots, and a self-contained HTML dashboard
// with score gauge, angle charts, symmetry and range-of-motion bars, and
// the risk assessment table.
//
// Everything renders to an io.Writer or an output directory; there is no
// server here.
package visualize
