// Package system couples springs and a robotic arm into the assemblies shown
// by the lab: a single spring, two springs in series and two in parallel.
//
// Every composite owns an equivalent spring whose left end and equilibrium
// position are locked for its lifetime. Writes enter through the equivalent
// spring's applied force or displacement, the robotic arm, or the component
// spring constants; the system drives everything else.
//
// Each system has one [reactive.Guard] for its arm feedback loop. Moving the
// arm writes the equivalent displacement inside a guarded pass, and the pass
// that moves the arm back to the settled spring end is ignored by the arm
// handler.
package system
