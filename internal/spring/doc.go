// Package spring models ideal springs obeying Hooke's law and the robotic arm
// that pulls on them.
//
// A [Spring] owns four primary properties (applied force, spring constant,
// displacement, left end) and keeps F = kx after every write. Which of F and x
// is held fixed when k changes is decided once, by the range the spring was
// built from:
//
//   - [ForceDriven]: built from an applied-force range; F is held, x follows
//   - [DisplacementDriven]: built from a displacement range; x is held, F follows
//
// Writing the displacement of a force-driven spring quantizes the resulting
// force to the spring's applied-force delta, then snaps the displacement to
// match it.
package spring
