package reactive

// Multilink calls a function whenever any of its sources changes.
type Multilink struct {
	sources []Notifier
	ids     []ListenerID
	fn      func()

	running  bool
	pending  bool
	disposed bool
}

func newMultilink(sources []Notifier, fn func()) *Multilink {
	m := &Multilink{sources: sources, fn: fn, ids: make([]ListenerID, len(sources))}
	for i, src := range sources {
		m.ids[i] = src.notify(m.fire)
	}
	m.fire()
	return m
}

// fire runs fn, deferring changes that arrive while fn is executing until it
// has returned.
func (m *Multilink) fire() {
	if m.disposed {
		return
	}
	if m.running {
		m.pending = true
		return
	}
	m.running = true
	defer func() { m.running = false }()
	for {
		m.pending = false
		m.fn()
		if !m.pending || m.disposed {
			return
		}
	}
}

// Unlink removes the subscriptions on every source. It is safe to call more
// than once.
func (m *Multilink) Unlink() {
	if m.disposed {
		return
	}
	m.disposed = true
	for i, src := range m.sources {
		src.Unsubscribe(m.ids[i])
	}
}

// Multilink2 calls fn(a, b) now and after every change of a or b.
func Multilink2[A, B comparable](a *Property[A], b *Property[B], fn func(A, B)) *Multilink {
	return newMultilink([]Notifier{a, b}, func() { fn(a.Get(), b.Get()) })
}

// MultilinkAll calls fn now and after every change of any source. Use it when
// the sources have different value types and fn reads them itself.
func MultilinkAll(sources []Notifier, fn func()) *Multilink {
	return newMultilink(sources, fn)
}
