// Package pose owns the landmark-sequence data model consumed by every
// analytics stage.
//
// Responsibilities: the fixed 33-landmark anatomical id domain, display
// names, left/right symmetric pairs, skeleton connections, the frame/
// sequence wire codec, and input hygiene helpers (visibility filtering,
// detection stats).
// Key types: Landmark, Frame, Sequence.
//
// Dependency rule: pose depends on nothing else in this module. Sequences
// are read-only once built; helpers that change content return copies.
package pose
