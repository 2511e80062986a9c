package reactive

// newDerived wires a read-only property to its sources. compute is called once
// now and again after every change notification from any source. With a
// non-nil guard, recomputation waits for the guard's pass to end.
func newDerived[T comparable](name string, g *Guard, compute func() T, sources []Notifier, opts []Option[T]) *Property[T] {
	p := &Property[T]{name: name, kind: kindDerived}
	for _, opt := range opts {
		opt(p)
	}
	p.value = compute()
	p.initial = p.value
	p.check(p.value)

	recompute := func() { p.set(compute()) }
	if g != nil {
		// queued holds the epoch of the pass a recompute is waiting on, so a
		// pass that panicked before flushing does not leave it stuck.
		var queued uint64
		recompute = func() {
			if !g.Active() {
				p.set(compute())
				return
			}
			if queued == g.Epoch() {
				return
			}
			queued = g.Epoch()
			g.AfterPass(func() {
				queued = 0
				p.set(compute())
			})
		}
	}

	ids := make([]ListenerID, len(sources))
	for i, src := range sources {
		ids[i] = src.notify(recompute)
	}
	p.dispose = func() {
		for i, src := range sources {
			src.Unsubscribe(ids[i])
		}
	}
	return p
}

// Derive1 returns a read-only property equal to fn(a).
func Derive1[A, T comparable](name string, a *Property[A], fn func(A) T, opts ...Option[T]) *Property[T] {
	return newDerived(name, nil, func() T { return fn(a.Get()) }, []Notifier{a}, opts)
}

// Derive2 returns a read-only property equal to fn(a, b).
func Derive2[A, B, T comparable](name string, a *Property[A], b *Property[B], fn func(A, B) T, opts ...Option[T]) *Property[T] {
	return newDerived(name, nil, func() T { return fn(a.Get(), b.Get()) }, []Notifier{a, b}, opts)
}

// Derive3 returns a read-only property equal to fn(a, b, c).
func Derive3[A, B, C, T comparable](name string, a *Property[A], b *Property[B], c *Property[C], fn func(A, B, C) T, opts ...Option[T]) *Property[T] {
	return newDerived(name, nil, func() T { return fn(a.Get(), b.Get(), c.Get()) }, []Notifier{a, b, c}, opts)
}

// DeriveAfter returns a read-only property equal to compute(). While g has a
// pass in flight, changes of the sources are coalesced and the property is
// recomputed once at the end of the pass, so it never observes a half-applied
// update. A nil guard recomputes immediately, like Derive1.
func DeriveAfter[T comparable](name string, g *Guard, sources []Notifier, compute func() T, opts ...Option[T]) *Property[T] {
	return newDerived(name, g, compute, sources, opts)
}
