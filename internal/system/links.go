package system

import "github.com/san-kum/springlab/internal/reactive"

// links records subscriptions a system installs on properties it does not
// own, so Dispose can remove them.
type links struct {
	unlink []func()
}

func (l *links) subscribe(p *reactive.Property[float64], fn reactive.Listener[float64]) {
	id := p.Subscribe(fn)
	l.unlink = append(l.unlink, func() { p.Unsubscribe(id) })
}

func (l *links) dispose(p interface{ Dispose() }) {
	l.unlink = append(l.unlink, p.Dispose)
}

func (l *links) add(fn func()) {
	l.unlink = append(l.unlink, fn)
}

func (l *links) release() {
	for i := len(l.unlink) - 1; i >= 0; i-- {
		l.unlink[i]()
	}
	l.unlink = nil
}
