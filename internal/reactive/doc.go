// Package reactive provides observable values with synchronous change
// propagation.
//
// The package defines four building blocks:
//
//   - [Property]: a mutable value that notifies its subscribers on change
//   - [Derive1], [Derive2], [Derive3]: read-only properties recomputed from sources
//   - [DeriveAfter]: a derived property that waits for a [Guard] pass to settle
//   - [Multilink2], [MultilinkAll]: a callback observing several properties at once
//
// [Property.Lock] and [Property.Own] turn a property into a guarded cell that
// rejects outside writes.
//
// A [Guard] marks an in-flight propagation pass so handlers that sit on a
// feedback loop can tell their own writes apart from outside writes.
//
// # Example
//
//	k := reactive.NewProperty("k", 200.0)
//	x := reactive.NewProperty("x", 0.05)
//	f := reactive.Derive2("F", k, x, func(k, x float64) float64 { return k * x })
//	x.Set(0.1) // f.Get() == 20
//
// # Errors
//
// Writes that break an invariant are programmer errors. Set panics with a
// [*PropertyError] wrapping one of the package sentinels. Use [Catch] at an
// application boundary to turn such a panic into an error.
//
// # Thread Safety
//
// Properties are NOT thread-safe. Every Set completes its whole propagation on
// the calling goroutine before it returns.
package reactive
