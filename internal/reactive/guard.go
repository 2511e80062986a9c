package reactive

// Token names the write that opened a guarded pass.
type Token string

// Guard marks the propagation passes running through one feedback loop.
// A handler on the loop checks the guard before reacting, so writes made by
// the pass itself do not re-enter it.
type Guard struct {
	name  string
	stack []Token
	epoch uint64
	after []func()
}

func NewGuard(name string) *Guard {
	return &Guard{name: name}
}

// Run executes fn with t pushed on the guard. The outermost Run of a pass
// starts a new epoch and, after fn returns, runs the callbacks queued with
// AfterPass while the pass is still active. If the pass panics, its queued
// callbacks are dropped.
func (g *Guard) Run(t Token, fn func()) {
	outermost := len(g.stack) == 0
	if outermost {
		g.epoch++
	}
	g.stack = append(g.stack, t)
	defer func() {
		g.stack = g.stack[:len(g.stack)-1]
		if outermost {
			g.after = nil
		}
	}()
	fn()
	if outermost {
		g.flush()
	}
}

// AfterPass queues fn to run at the end of the current pass. Outside a pass
// fn runs immediately.
func (g *Guard) AfterPass(fn func()) {
	if len(g.stack) == 0 {
		fn()
		return
	}
	g.after = append(g.after, fn)
}

// flush drains the queue, including callbacks queued by earlier callbacks.
func (g *Guard) flush() {
	for len(g.after) > 0 {
		fn := g.after[0]
		g.after = g.after[1:]
		fn()
	}
}

// Active reports whether a pass is in flight.
func (g *Guard) Active() bool {
	return len(g.stack) > 0
}

// Origin returns the innermost token, or "" when no pass is in flight.
func (g *Guard) Origin() Token {
	if len(g.stack) == 0 {
		return ""
	}
	return g.stack[len(g.stack)-1]
}

// Epoch returns the number of passes started so far.
func (g *Guard) Epoch() uint64 {
	return g.epoch
}

func (g *Guard) Name() string {
	return g.name
}
